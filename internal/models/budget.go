package models

import (
	"time"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/money"
)

// BudgetPeriod represents the period type for a budget
type BudgetPeriod string

const (
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodAnnual    BudgetPeriod = "annual"
)

// BudgetStatus represents the lifecycle state of a budget
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusExceeded BudgetStatus = "exceeded"
	BudgetStatusArchived BudgetStatus = "archived"
)

// Budget caps spending for one category over an explicit date window. Spent
// is adjusted only through Apply and Revert, driven by the transaction use
// cases; clients never set it directly. AlertLevel records the last threshold
// band a notification was sent for, making threshold notifications one-shot
// per crossing.
type Budget struct {
	Base
	UserID       string       `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryName string       `gorm:"not null;index" json:"category_name"`
	LimitCents   int64        `gorm:"not null" json:"limit_cents"`
	SpentCents   int64        `gorm:"not null;default:0" json:"spent_cents"`
	Currency     string       `gorm:"not null" json:"currency"`
	Period       BudgetPeriod `gorm:"not null" json:"period"`
	StartDate    time.Time    `gorm:"not null" json:"start_date"`
	EndDate      time.Time    `gorm:"not null" json:"end_date"`
	Status       BudgetStatus `gorm:"not null;default:'active'" json:"status"`
	AlertLevel   int          `gorm:"not null;default:0" json:"-"`
}

// PeriodEnd computes the inclusive end date for a period starting at start.
func PeriodEnd(period BudgetPeriod, start time.Time) (time.Time, error) {
	var end time.Time
	switch period {
	case BudgetPeriodMonthly:
		end = start.AddDate(0, 1, -1)
	case BudgetPeriodQuarterly:
		end = start.AddDate(0, 3, -1)
	case BudgetPeriodAnnual:
		end = start.AddDate(1, 0, -1)
	default:
		return time.Time{}, apperrors.ErrInvalidPeriod
	}
	return time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, start.Location()), nil
}

// Limit returns the budget limit as a Money value.
func (b *Budget) Limit() money.Money {
	return money.FromCents(b.LimitCents, b.Currency)
}

// Spent returns the accumulated spend as a Money value.
func (b *Budget) Spent() money.Money {
	return money.FromCents(b.SpentCents, b.Currency)
}

// Contains reports whether a date falls inside the budget window.
func (b *Budget) Contains(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// Overlaps reports whether another window intersects this budget's window.
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !start.After(b.EndDate) && !end.Before(b.StartDate)
}

// Percentage returns spend/limit x 100 rounded to 2 decimals.
func (b *Budget) Percentage() float64 {
	pct, err := money.PercentOf(b.Spent(), b.Limit())
	if err != nil {
		return 0
	}
	return pct
}

// thresholdBand maps the current percentage to a notification band:
// 0 (below warn), warnThreshold, or 100.
func (b *Budget) thresholdBand(warnThreshold int) int {
	pct := b.Percentage()
	switch {
	case pct >= 100:
		return 100
	case pct >= float64(warnThreshold):
		return warnThreshold
	default:
		return 0
	}
}

// Apply accumulates an expense into the budget and returns the threshold
// band newly crossed (warnThreshold or 100), or 0 when no new band was
// reached. Currency mismatches fail.
func (b *Budget) Apply(amount money.Money, warnThreshold int) (int, error) {
	spent, err := b.Spent().Add(amount)
	if err != nil {
		return 0, err
	}
	b.SpentCents = spent.Cents
	b.refreshStatus()

	band := b.thresholdBand(warnThreshold)
	if band > b.AlertLevel {
		b.AlertLevel = band
		return band, nil
	}
	return 0, nil
}

// Revert subtracts a previously applied expense. Spend is clamped at zero;
// with correctly paired apply/revert calls it never goes negative. The alert
// level follows the new band so a later re-crossing notifies again.
func (b *Budget) Revert(amount money.Money, warnThreshold int) error {
	spent, err := b.Spent().Sub(amount)
	if err != nil {
		return err
	}
	if spent.Cents < 0 {
		spent.Cents = 0
	}
	b.SpentCents = spent.Cents
	b.refreshStatus()
	b.AlertLevel = b.thresholdBand(warnThreshold)
	return nil
}

// Archive retires the budget. Archived budgets stop matching transactions.
func (b *Budget) Archive() {
	b.Status = BudgetStatusArchived
}

// IsActive reports whether the budget still accumulates spend.
func (b *Budget) IsActive() bool {
	return b.Status != BudgetStatusArchived
}

func (b *Budget) refreshStatus() {
	if b.Status == BudgetStatusArchived {
		return
	}
	if b.SpentCents >= b.LimitCents {
		b.Status = BudgetStatusExceeded
	} else {
		b.Status = BudgetStatusActive
	}
}
