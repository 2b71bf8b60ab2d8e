package models

import (
	"time"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/money"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry. The category is
// carried by name and kind rather than a foreign key; the budget and goal a
// transaction affected are persisted as resolved links once computed, so
// edits and deletes can revert the exact impact without re-running any
// matching heuristic.
type Transaction struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         TransactionType `gorm:"not null" json:"type"`
	AmountCents  int64           `gorm:"not null" json:"amount_cents"`
	Currency     string          `gorm:"not null" json:"currency"`
	Description  string          `json:"description"`
	CategoryName string          `gorm:"not null;index" json:"category_name"`
	CategoryType CategoryType    `gorm:"not null" json:"category_type"`
	Date         time.Time       `gorm:"not null;index" json:"date"`
	IsActive     bool            `gorm:"default:true;index" json:"is_active"`
	Imported     bool            `gorm:"default:false" json:"imported"`

	// Resolved impact links, set when the impact is applied.
	BudgetID *string `gorm:"type:uuid" json:"budget_id,omitempty"`
	GoalID   *string `gorm:"type:uuid" json:"goal_id,omitempty"`
}

// Amount returns the transaction amount as a Money value.
func (t *Transaction) Amount() money.Money {
	return money.FromCents(t.AmountCents, t.Currency)
}

// Validate checks the transaction invariants: positive amount, a currency, a
// known type, and agreement between type and category kind.
func (t *Transaction) Validate() error {
	if t.AmountCents <= 0 {
		return apperrors.ErrInvalidAmount
	}
	if t.Currency == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction currency is required")
	}
	kind, err := CategoryKindFor(t.Type)
	if err != nil {
		return err
	}
	if t.CategoryType != kind {
		return apperrors.ErrCategoryTypeMismatch
	}
	if t.CategoryName == "" {
		return apperrors.ErrInvalidCategory
	}
	if t.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction date is required")
	}
	return nil
}

// Deactivate soft-deletes the transaction. Fails if already deleted so the
// caller cannot revert the same impact twice.
func (t *Transaction) Deactivate() error {
	if !t.IsActive {
		return apperrors.ErrTransactionInactive
	}
	t.IsActive = false
	return nil
}

// Reactivate restores a soft-deleted transaction. Fails if it is not deleted
// so the caller cannot apply the same impact twice.
func (t *Transaction) Reactivate() error {
	if t.IsActive {
		return apperrors.ErrTransactionActive
	}
	t.IsActive = true
	return nil
}

// ClearImpactLinks drops the resolved budget/goal links after a revert.
func (t *Transaction) ClearImpactLinks() {
	t.BudgetID = nil
	t.GoalID = nil
}
