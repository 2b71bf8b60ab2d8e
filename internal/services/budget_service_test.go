package services

import (
	"testing"
	"time"

	"financehouse/internal/models"
	"financehouse/internal/pagination"
	"financehouse/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates a monthly budget", func(t *testing.T) {
		budget, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "Alimentação",
			LimitCents:   50000,
			Period:       models.BudgetPeriodMonthly,
			StartDate:    start,
		})
		testutil.AssertNoError(t, err)

		if budget.CategoryName != "ALIMENTACAO" {
			t.Errorf("expected normalized category, got %q", budget.CategoryName)
		}
		if budget.Currency != "BRL" {
			t.Errorf("expected default currency BRL, got %q", budget.Currency)
		}
		wantEnd := time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC)
		if !budget.EndDate.Equal(wantEnd) {
			t.Errorf("expected end date %v, got %v", wantEnd, budget.EndDate)
		}
		if budget.Status != models.BudgetStatusActive {
			t.Errorf("expected active status, got %q", budget.Status)
		}
	})

	t.Run("rejects an overlapping budget for the same category", func(t *testing.T) {
		_, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "ALIMENTACAO",
			LimitCents:   30000,
			Period:       models.BudgetPeriodMonthly,
			StartDate:    start.AddDate(0, 0, 15),
		})
		testutil.AssertAppError(t, err, "BUDGET_OVERLAP")
	})

	t.Run("allows the same category in a disjoint period", func(t *testing.T) {
		_, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "ALIMENTACAO",
			LimitCents:   30000,
			Period:       models.BudgetPeriodMonthly,
			StartDate:    start.AddDate(0, 1, 0),
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("allows another category in the same period", func(t *testing.T) {
		_, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "TRANSPORTE",
			LimitCents:   20000,
			Period:       models.BudgetPeriodMonthly,
			StartDate:    start,
		})
		testutil.AssertNoError(t, err)
	})

	t.Run("rejects a non-positive limit", func(t *testing.T) {
		_, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "LAZER",
			LimitCents:   0,
			Period:       models.BudgetPeriodMonthly,
			StartDate:    start,
		})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("rejects a zero start date", func(t *testing.T) {
		_, err := svc.budgets.CreateBudget(user.ID, CreateBudgetInput{
			CategoryName: "LAZER",
			LimitCents:   10000,
			Period:       models.BudgetPeriodMonthly,
		})
		testutil.AssertAppError(t, err, "INVALID_PERIOD")
	})
}

func TestUpdateBudgetLimit(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	budget := testutil.CreateTestBudget(t, svc.db, user.ID, "ALIMENTACAO", 50000)

	_, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
		AmountCents:  45000,
		Description:  "Mercado",
		CategoryName: "ALIMENTACAO",
		Type:         models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)

	// 45000/50000 is 90%: status stays active.
	reloaded := svc.reloadBudget(t, budget.ID)
	if reloaded.Status != models.BudgetStatusActive {
		t.Fatalf("expected active status at 90%%, got %q", reloaded.Status)
	}

	// Lowering the limit below the spend flips the budget to exceeded.
	updated, err := svc.budgets.UpdateBudgetLimit(user.ID, budget.ID, 40000)
	testutil.AssertNoError(t, err)
	if updated.Status != models.BudgetStatusExceeded {
		t.Errorf("expected exceeded status after lowering the limit, got %q", updated.Status)
	}

	// Raising it back clears the exceeded status.
	updated, err = svc.budgets.UpdateBudgetLimit(user.ID, budget.ID, 90000)
	testutil.AssertNoError(t, err)
	if updated.Status != models.BudgetStatusActive {
		t.Errorf("expected active status after raising the limit, got %q", updated.Status)
	}
	if updated.SpentCents != 45000 {
		t.Errorf("expected spend untouched by limit edits, got %d", updated.SpentCents)
	}

	_, err = svc.budgets.UpdateBudgetLimit(user.ID, budget.ID, 0)
	testutil.AssertAppError(t, err, "INVALID_AMOUNT")
}

func TestArchiveBudget(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	budget := testutil.CreateTestBudget(t, svc.db, user.ID, "ALIMENTACAO", 50000)

	testutil.AssertNoError(t, svc.budgets.ArchiveBudget(user.ID, budget.ID))

	reloaded := svc.reloadBudget(t, budget.ID)
	if reloaded.Status != models.BudgetStatusArchived {
		t.Fatalf("expected archived status, got %q", reloaded.Status)
	}

	// Archived budgets no longer match new expenses.
	tx, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
		AmountCents:  10000,
		Description:  "Mercado",
		CategoryName: "ALIMENTACAO",
		Type:         models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)
	if tx.BudgetID != nil {
		t.Errorf("expected no budget link after archive, got %v", *tx.BudgetID)
	}
	if spent := svc.reloadBudget(t, budget.ID).SpentCents; spent != 0 {
		t.Errorf("expected archived budget spend untouched, got %d", spent)
	}
}

func TestGetBudgetProgress(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	budget := testutil.CreateTestBudget(t, svc.db, user.ID, "ALIMENTACAO", 50000)

	_, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
		AmountCents:  12500,
		Description:  "Feira",
		CategoryName: "ALIMENTACAO",
		Type:         models.TransactionTypeExpense,
	})
	testutil.AssertNoError(t, err)

	progress, err := svc.budgets.GetBudgetProgress(user.ID, budget.ID)
	testutil.AssertNoError(t, err)

	if progress.SpentCents != 12500 {
		t.Errorf("expected spent 12500, got %d", progress.SpentCents)
	}
	if progress.RemainingCents != 37500 {
		t.Errorf("expected remaining 37500, got %d", progress.RemainingCents)
	}
	if progress.Percentage != 25 {
		t.Errorf("expected 25%%, got %v", progress.Percentage)
	}
}

func TestGetUserBudgets(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	first := testutil.CreateTestBudget(t, svc.db, user.ID, "ALIMENTACAO", 50000)
	testutil.CreateTestBudget(t, svc.db, user.ID, "TRANSPORTE", 20000)
	testutil.AssertNoError(t, svc.budgets.ArchiveBudget(user.ID, first.ID))

	page, err := svc.budgets.GetUserBudgets(user.ID, pagination.PageRequest{}, nil)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 budgets without a filter, got %d", page.TotalItems)
	}

	archived := models.BudgetStatusArchived
	page, err = svc.budgets.GetUserBudgets(user.ID, pagination.PageRequest{}, &archived)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 1 || page.Data[0].ID != first.ID {
		t.Errorf("expected only the archived budget, got %d items", page.TotalItems)
	}

	other := testutil.CreateTestUser(t, svc.db)
	_, err = svc.budgets.GetBudgetByID(other.ID, first.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}
