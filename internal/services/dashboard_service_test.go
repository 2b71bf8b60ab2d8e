package services

import (
	"testing"
	"time"

	"financehouse/internal/models"
	"financehouse/internal/testutil"
)

func TestGetSummary(t *testing.T) {
	t.Run("empty owner gets zeros, never an error", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		dashboard := NewDashboardService(svc.db, svc.transactions)

		summary, err := dashboard.GetSummary(user.ID)
		testutil.AssertNoError(t, err)

		if summary.BalanceCents != 0 {
			t.Errorf("expected zero balance, got %d", summary.BalanceCents)
		}
		if summary.Budgets == nil || len(summary.Budgets) != 0 {
			t.Errorf("expected empty budget list, got %v", summary.Budgets)
		}
		if summary.Goals == nil || len(summary.Goals) != 0 {
			t.Errorf("expected empty goal list, got %v", summary.Goals)
		}
		if summary.RecentTransactions == nil || len(summary.RecentTransactions) != 0 {
			t.Errorf("expected empty recent list, got %v", summary.RecentTransactions)
		}
	})

	t.Run("composes balance, month totals, budgets and goals", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		budget := testutil.CreateTestBudget(t, svc.db, user.ID, "ALIMENTACAO", 50000)
		goal := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)
		dashboard := NewDashboardService(svc.db, svc.transactions)

		_, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
			AmountCents:  300000,
			Description:  "Pagamento",
			CategoryName: "SALARIO",
			Type:         models.TransactionTypeIncome,
		})
		testutil.AssertNoError(t, err)
		_, err = svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
			AmountCents:  20000,
			Description:  "Mercado",
			CategoryName: "ALIMENTACAO",
			Type:         models.TransactionTypeExpense,
		})
		testutil.AssertNoError(t, err)
		// An income from a previous month counts in the balance but not the
		// month totals.
		_, err = svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
			AmountCents:  50000,
			Description:  "Freelance antigo",
			CategoryName: "FREELANCE",
			Type:         models.TransactionTypeIncome,
			Date:         time.Now().AddDate(0, -2, 0),
		})
		testutil.AssertNoError(t, err)

		summary, err := dashboard.GetSummary(user.ID)
		testutil.AssertNoError(t, err)

		if summary.BalanceCents != 330000 {
			t.Errorf("expected balance 330000, got %d", summary.BalanceCents)
		}
		if summary.MonthIncomeCents != 300000 {
			t.Errorf("expected month income 300000, got %d", summary.MonthIncomeCents)
		}
		if summary.MonthExpenseCents != 20000 {
			t.Errorf("expected month expense 20000, got %d", summary.MonthExpenseCents)
		}
		if len(summary.Budgets) != 1 || summary.Budgets[0].BudgetID != budget.ID {
			t.Fatalf("expected the single budget in the summary, got %v", summary.Budgets)
		}
		if summary.Budgets[0].SpentCents != 20000 {
			t.Errorf("expected budget spend 20000, got %d", summary.Budgets[0].SpentCents)
		}
		if len(summary.Goals) != 1 || summary.Goals[0].GoalID != goal.ID {
			t.Fatalf("expected the single goal in the summary, got %v", summary.Goals)
		}
		if len(summary.RecentTransactions) != 3 {
			t.Errorf("expected 3 recent transactions, got %d", len(summary.RecentTransactions))
		}
	})

	t.Run("excludes soft-deleted transactions from the balance", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		dashboard := NewDashboardService(svc.db, svc.transactions)

		tx, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
			AmountCents:  10000,
			Description:  "Pagamento",
			CategoryName: "SALARIO",
			Type:         models.TransactionTypeIncome,
		})
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.transactions.SoftDeleteTransaction(user.ID, tx.ID))

		summary, err := dashboard.GetSummary(user.ID)
		testutil.AssertNoError(t, err)
		if summary.BalanceCents != 0 {
			t.Errorf("expected zero balance after delete, got %d", summary.BalanceCents)
		}
		if len(summary.RecentTransactions) != 0 {
			t.Errorf("expected no recent transactions, got %d", len(summary.RecentTransactions))
		}
	})
}
