package services

import (
	"testing"
	"time"

	"financehouse/internal/models"
	"financehouse/internal/pagination"
	"financehouse/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)

	t.Run("creates an active goal", func(t *testing.T) {
		goal, err := svc.goals.CreateGoal(user.ID, CreateGoalInput{
			Name:        "Viagem Europa",
			Type:        models.GoalTypeTravel,
			TargetCents: 1500000,
			Deadline:    time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC),
		})
		testutil.AssertNoError(t, err)

		if goal.Status != models.GoalStatusActive {
			t.Errorf("expected active status, got %q", goal.Status)
		}
		if goal.Currency != "BRL" {
			t.Errorf("expected default currency BRL, got %q", goal.Currency)
		}
		if goal.CurrentCents != 0 {
			t.Errorf("expected zero progress, got %d", goal.CurrentCents)
		}
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		_, err := svc.goals.CreateGoal(user.ID, CreateGoalInput{
			Name:        "   ",
			Type:        models.GoalTypeSavings,
			TargetCents: 10000,
			Deadline:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects a non-positive target", func(t *testing.T) {
		_, err := svc.goals.CreateGoal(user.ID, CreateGoalInput{
			Name:        "Reserva",
			Type:        models.GoalTypeEmergency,
			TargetCents: 0,
			Deadline:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		})
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("rejects a missing deadline", func(t *testing.T) {
		_, err := svc.goals.CreateGoal(user.ID, CreateGoalInput{
			Name:        "Reserva",
			Type:        models.GoalTypeEmergency,
			TargetCents: 10000,
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAddGoalProgress(t *testing.T) {
	t.Run("concludes and notifies exactly once on the first crossing", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		goal := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)

		updated, err := svc.goals.AddGoalProgress(user.ID, goal.ID, 95000)
		testutil.AssertNoError(t, err)
		if updated.Status != models.GoalStatusActive {
			t.Errorf("expected active status at 95%%, got %q", updated.Status)
		}
		if len(svc.notifier.goalCalls()) != 0 {
			t.Fatalf("expected no achievement notification below target")
		}

		updated, err = svc.goals.AddGoalProgress(user.ID, goal.ID, 10000)
		testutil.AssertNoError(t, err)
		if updated.Status != models.GoalStatusConcluded {
			t.Errorf("expected concluded status, got %q", updated.Status)
		}
		if updated.CurrentCents != 105000 {
			t.Errorf("expected progress 105000, got %d", updated.CurrentCents)
		}
		if updated.AchievedAt == nil {
			t.Error("expected AchievedAt set on conclusion")
		}
		calls := svc.notifier.goalCalls()
		if len(calls) != 1 || calls[0] != goal.ID {
			t.Fatalf("expected a single achievement notification for %s, got %v", goal.ID, calls)
		}

		// Piling on after conclusion never notifies again.
		_, err = svc.goals.AddGoalProgress(user.ID, goal.ID, 5000)
		testutil.AssertNoError(t, err)
		if len(svc.notifier.goalCalls()) != 1 {
			t.Error("expected no further notifications after conclusion")
		}
	})

	t.Run("rejects a cancelled goal", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		goal := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)
		testutil.AssertNoError(t, svc.goals.CancelGoal(user.ID, goal.ID))

		_, err := svc.goals.AddGoalProgress(user.ID, goal.ID, 1000)
		testutil.AssertAppError(t, err, "GOAL_NOT_ACTIVE")
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		svc := newTestServices(t)
		user := testutil.CreateTestUser(t, svc.db)
		goal := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)

		_, err := svc.goals.AddGoalProgress(user.ID, goal.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("another user cannot contribute", func(t *testing.T) {
		svc := newTestServices(t)
		owner := testutil.CreateTestUser(t, svc.db)
		other := testutil.CreateTestUser(t, svc.db)
		goal := testutil.CreateTestGoal(t, svc.db, owner.ID, 100000)

		_, err := svc.goals.AddGoalProgress(other.ID, goal.ID, 1000)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestGoalReopenNeverRenotifies(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	goal := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)

	// An income matched to the goal concludes it.
	tx, err := svc.transactions.CreateTransaction(user.ID, CreateTransactionInput{
		AmountCents:  100000,
		Description:  "Aporte " + goal.Name,
		CategoryName: "SALARIO",
		Type:         models.TransactionTypeIncome,
	})
	testutil.AssertNoError(t, err)
	if len(svc.notifier.goalCalls()) != 1 {
		t.Fatalf("expected one achievement notification, got %v", svc.notifier.goalCalls())
	}

	// Deleting the contribution reopens the goal.
	testutil.AssertNoError(t, svc.transactions.SoftDeleteTransaction(user.ID, tx.ID))
	reopened := svc.reloadGoal(t, goal.ID)
	if reopened.Status != models.GoalStatusActive {
		t.Fatalf("expected goal reopened, got %q", reopened.Status)
	}
	if reopened.CurrentCents != 0 {
		t.Errorf("expected progress reverted to 0, got %d", reopened.CurrentCents)
	}
	if reopened.AchievedAt == nil {
		t.Error("expected AchievedAt to survive the revert")
	}

	// Crossing the target again concludes silently.
	_, err = svc.goals.AddGoalProgress(user.ID, goal.ID, 100000)
	testutil.AssertNoError(t, err)
	concluded := svc.reloadGoal(t, goal.ID)
	if concluded.Status != models.GoalStatusConcluded {
		t.Errorf("expected goal concluded again, got %q", concluded.Status)
	}
	if len(svc.notifier.goalCalls()) != 1 {
		t.Errorf("expected no second notification, got %v", svc.notifier.goalCalls())
	}
}

func TestGetGoalProgress(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	goal := testutil.CreateTestGoal(t, svc.db, user.ID, 200000)

	_, err := svc.goals.AddGoalProgress(user.ID, goal.ID, 50000)
	testutil.AssertNoError(t, err)

	progress, err := svc.goals.GetGoalProgress(user.ID, goal.ID)
	testutil.AssertNoError(t, err)

	if progress.CurrentCents != 50000 {
		t.Errorf("expected progress 50000, got %d", progress.CurrentCents)
	}
	if progress.Percentage != 25 {
		t.Errorf("expected 25%%, got %v", progress.Percentage)
	}
	if progress.Status != models.GoalStatusActive {
		t.Errorf("expected active status, got %q", progress.Status)
	}
}

func TestGetUserGoals(t *testing.T) {
	svc := newTestServices(t)
	user := testutil.CreateTestUser(t, svc.db)
	first := testutil.CreateTestGoal(t, svc.db, user.ID, 100000)
	testutil.CreateTestGoal(t, svc.db, user.ID, 200000)
	testutil.AssertNoError(t, svc.goals.CancelGoal(user.ID, first.ID))

	page, err := svc.goals.GetUserGoals(user.ID, pagination.PageRequest{}, nil)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 2 {
		t.Errorf("expected 2 goals without a filter, got %d", page.TotalItems)
	}

	cancelled := models.GoalStatusCancelled
	page, err = svc.goals.GetUserGoals(user.ID, pagination.PageRequest{}, &cancelled)
	testutil.AssertNoError(t, err)
	if page.TotalItems != 1 || page.Data[0].ID != first.ID {
		t.Errorf("expected only the cancelled goal, got %d items", page.TotalItems)
	}
}
