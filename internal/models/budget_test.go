package models

import (
	"testing"
	"time"

	"financehouse/internal/money"
)

func monthlyBudget(limitCents int64) *Budget {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end, _ := PeriodEnd(BudgetPeriodMonthly, start)
	return &Budget{
		CategoryName: "ALIMENTACAO",
		LimitCents:   limitCents,
		Currency:     "BRL",
		Period:       BudgetPeriodMonthly,
		StartDate:    start,
		EndDate:      end,
		Status:       BudgetStatusActive,
	}
}

func TestPeriodEnd(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	monthly, err := PeriodEnd(BudgetPeriodMonthly, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if monthly.Day() != 31 || monthly.Month() != time.March {
		t.Errorf("expected March 31, got %s", monthly.Format("2006-01-02"))
	}

	annual, err := PeriodEnd(BudgetPeriodAnnual, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if annual.Year() != 2027 || annual.Month() != time.February {
		t.Errorf("expected 2027-02-28, got %s", annual.Format("2006-01-02"))
	}

	if _, err := PeriodEnd(BudgetPeriod("weekly"), start); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestBudgetContains(t *testing.T) {
	b := monthlyBudget(50000)

	if !b.Contains(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)) {
		t.Error("expected date inside the window to match")
	}
	if b.Contains(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected date after the window not to match")
	}
	if b.Contains(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected date before the window not to match")
	}
}

func TestBudgetApplyThresholds(t *testing.T) {
	t.Run("warn_band_fires_once", func(t *testing.T) {
		b := monthlyBudget(50000)

		crossed, err := b.Apply(money.FromCents(35000, "BRL"), 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossed != 0 {
			t.Errorf("expected no band at 70%%, got %d", crossed)
		}

		crossed, err = b.Apply(money.FromCents(5000, "BRL"), 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossed != 80 {
			t.Errorf("expected 80 band at 80%%, got %d", crossed)
		}

		// Still inside the warn band: no second notification.
		crossed, err = b.Apply(money.FromCents(1000, "BRL"), 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossed != 0 {
			t.Errorf("expected no new band at 82%%, got %d", crossed)
		}
	})

	t.Run("limit_band_and_exceeded_status", func(t *testing.T) {
		b := monthlyBudget(50000)

		if _, err := b.Apply(money.FromCents(35000, "BRL"), 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		crossed, err := b.Apply(money.FromCents(15000, "BRL"), 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossed != 100 {
			t.Errorf("expected 100 band, got %d", crossed)
		}
		if b.Status != BudgetStatusExceeded {
			t.Errorf("expected exceeded status, got %s", b.Status)
		}
		if b.Percentage() != 100 {
			t.Errorf("expected 100%%, got %.2f", b.Percentage())
		}
	})

	t.Run("currency_mismatch", func(t *testing.T) {
		b := monthlyBudget(50000)
		if _, err := b.Apply(money.FromCents(100, "USD"), 80); err == nil {
			t.Error("expected currency mismatch error")
		}
	})
}

func TestBudgetRevert(t *testing.T) {
	t.Run("rearms_alert_band", func(t *testing.T) {
		b := monthlyBudget(50000)
		if _, err := b.Apply(money.FromCents(50000, "BRL"), 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.AlertLevel != 100 {
			t.Fatalf("expected alert level 100, got %d", b.AlertLevel)
		}

		if err := b.Revert(money.FromCents(10000, "BRL"), 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.SpentCents != 40000 {
			t.Errorf("expected spend 40000, got %d", b.SpentCents)
		}
		if b.AlertLevel != 80 {
			t.Errorf("expected alert level re-armed to 80, got %d", b.AlertLevel)
		}
		if b.Status != BudgetStatusActive {
			t.Errorf("expected active status, got %s", b.Status)
		}

		// Re-crossing the limit notifies again.
		crossed, err := b.Apply(money.FromCents(10000, "BRL"), 80)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if crossed != 100 {
			t.Errorf("expected 100 band on re-crossing, got %d", crossed)
		}
	})

	t.Run("clamps_at_zero", func(t *testing.T) {
		b := monthlyBudget(50000)
		if _, err := b.Apply(money.FromCents(1000, "BRL"), 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := b.Revert(money.FromCents(5000, "BRL"), 80); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.SpentCents != 0 {
			t.Errorf("expected spend clamped at 0, got %d", b.SpentCents)
		}
	})
}

func TestBudgetArchive(t *testing.T) {
	b := monthlyBudget(50000)
	b.Archive()
	if b.IsActive() {
		t.Error("expected archived budget to be inactive")
	}
	// Archived status survives spend refreshes.
	if _, err := b.Apply(money.FromCents(60000, "BRL"), 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != BudgetStatusArchived {
		t.Errorf("expected archived status to stick, got %s", b.Status)
	}
}
