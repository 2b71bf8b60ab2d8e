package models

import (
	"testing"
	"time"
)

func validTransaction() *Transaction {
	return &Transaction{
		Type:         TransactionTypeExpense,
		AmountCents:  15000,
		Currency:     "BRL",
		Description:  "Mercado",
		CategoryName: "ALIMENTACAO",
		CategoryType: CategoryTypeExpense,
		Date:         time.Now(),
		IsActive:     true,
	}
}

func TestTransactionValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validTransaction().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		tx := validTransaction()
		tx.AmountCents = 0
		if err := tx.Validate(); err == nil {
			t.Error("expected error for zero amount")
		}
	})

	t.Run("rejects_missing_currency", func(t *testing.T) {
		tx := validTransaction()
		tx.Currency = ""
		if err := tx.Validate(); err == nil {
			t.Error("expected error for missing currency")
		}
	})

	t.Run("rejects_kind_mismatch", func(t *testing.T) {
		tx := validTransaction()
		tx.CategoryType = CategoryTypeIncome
		if err := tx.Validate(); err == nil {
			t.Error("expected error for category kind mismatch")
		}
	})

	t.Run("rejects_missing_category", func(t *testing.T) {
		tx := validTransaction()
		tx.CategoryName = ""
		if err := tx.Validate(); err == nil {
			t.Error("expected error for missing category")
		}
	})

	t.Run("rejects_zero_date", func(t *testing.T) {
		tx := validTransaction()
		tx.Date = time.Time{}
		if err := tx.Validate(); err == nil {
			t.Error("expected error for zero date")
		}
	})
}

func TestTransactionLifecycleGuards(t *testing.T) {
	tx := validTransaction()

	if err := tx.Deactivate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Deactivate(); err == nil {
		t.Error("double deactivate must fail")
	}

	if err := tx.Reactivate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Reactivate(); err == nil {
		t.Error("reactivating an active transaction must fail")
	}
}

func TestClearImpactLinks(t *testing.T) {
	tx := validTransaction()
	budgetID := "b-1"
	tx.BudgetID = &budgetID
	tx.ClearImpactLinks()
	if tx.BudgetID != nil || tx.GoalID != nil {
		t.Error("expected impact links cleared")
	}
}
