package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"financehouse/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an active user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a custom category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("CATEGORIA %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates an active transaction of the given type and
// amount (in cents) dated now, in the OUTROS category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, amountCents int64) *models.Transaction {
	t.Helper()

	kind, err := models.CategoryKindFor(txType)
	if err != nil {
		t.Fatalf("invalid transaction type %q: %v", txType, err)
	}

	tx := &models.Transaction{
		UserID:       userID,
		Type:         txType,
		AmountCents:  amountCents,
		Currency:     "BRL",
		Description:  fmt.Sprintf("Test transaction %d", nextID()),
		CategoryName: "OUTROS",
		CategoryType: kind,
		Date:         time.Now(),
		IsActive:     true,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates an active monthly budget covering the current
// calendar month with the given limit (in cents).
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryName string, limitCents int64) *models.Budget {
	t.Helper()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	budget := &models.Budget{
		UserID:       userID,
		CategoryName: categoryName,
		LimitCents:   limitCents,
		Currency:     "BRL",
		Period:       models.BudgetPeriodMonthly,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
		Status:       models.BudgetStatusActive,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestGoal creates an active savings goal with the given target (in
// cents) and a deadline one year out.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, targetCents int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Goal %d", nextID()),
		Type:        models.GoalTypeSavings,
		TargetCents: targetCents,
		Currency:    "BRL",
		Deadline:    time.Now().AddDate(1, 0, 0),
		Status:      models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}
