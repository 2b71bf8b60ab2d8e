package models

import (
	"math"
	"time"

	"financehouse/internal/money"
)

// GoalType represents what the user is saving for
type GoalType string

const (
	GoalTypeSavings   GoalType = "savings"
	GoalTypePurchase  GoalType = "purchase"
	GoalTypeTravel    GoalType = "travel"
	GoalTypeEmergency GoalType = "emergency"
	GoalTypeOther     GoalType = "other"
)

// GoalStatus represents the lifecycle state of a goal
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusConcluded GoalStatus = "concluded"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Goal is a savings target with a deadline. Current progress may exceed the
// target; the status flips to concluded exactly when current reaches the
// target. AchievedAt is set once, on the first crossing, and is what gates
// the achievement notification: reverting below target reopens the goal but
// never re-arms the notification.
type Goal struct {
	Base
	UserID       string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string     `gorm:"not null" json:"name"`
	Type         GoalType   `gorm:"not null" json:"type"`
	TargetCents  int64      `gorm:"not null" json:"target_cents"`
	CurrentCents int64      `gorm:"not null;default:0" json:"current_cents"`
	Currency     string     `gorm:"not null" json:"currency"`
	Deadline     time.Time  `gorm:"not null" json:"deadline"`
	Status       GoalStatus `gorm:"not null;default:'active'" json:"status"`
	AchievedAt   *time.Time `json:"achieved_at,omitempty"`
}

// Target returns the target amount as a Money value.
func (g *Goal) Target() money.Money {
	return money.FromCents(g.TargetCents, g.Currency)
}

// Current returns the accumulated progress as a Money value.
func (g *Goal) Current() money.Money {
	return money.FromCents(g.CurrentCents, g.Currency)
}

// Percentage returns current/target x 100 rounded to 2 decimals. Values over
// 100 are reported as-is; display capping is a presentation concern.
func (g *Goal) Percentage() float64 {
	pct, err := money.PercentOf(g.Current(), g.Target())
	if err != nil {
		return 0
	}
	return pct
}

// AddProgress accumulates a contribution. It returns true exactly once: on
// the crossing that first pushes current to or past the target. Further
// contributions to a concluded goal return false.
func (g *Goal) AddProgress(amount money.Money) (bool, error) {
	current, err := g.Current().Add(amount)
	if err != nil {
		return false, err
	}
	g.CurrentCents = current.Cents

	if g.CurrentCents >= g.TargetCents && g.Status == GoalStatusActive {
		g.Status = GoalStatusConcluded
		if g.AchievedAt == nil {
			now := time.Now()
			g.AchievedAt = &now
			return true, nil
		}
	}
	return false, nil
}

// RevertProgress subtracts a previously applied contribution, clamped at
// zero. Dropping back below the target reopens a concluded goal.
func (g *Goal) RevertProgress(amount money.Money) error {
	current, err := g.Current().Sub(amount)
	if err != nil {
		return err
	}
	if current.Cents < 0 {
		current.Cents = 0
	}
	g.CurrentCents = current.Cents
	if g.Status == GoalStatusConcluded && g.CurrentCents < g.TargetCents {
		g.Status = GoalStatusActive
	}
	return nil
}

// Cancel abandons the goal. Cancelled goals stop receiving contributions.
func (g *Goal) Cancel() {
	g.Status = GoalStatusCancelled
}

// ProjectedCompletion estimates when the goal will be reached, extrapolating
// linearly from the average contribution per elapsed day since creation.
// Returns nil when there is no progress yet or no time has elapsed.
func (g *Goal) ProjectedCompletion(now time.Time) *time.Time {
	if g.CurrentCents >= g.TargetCents {
		done := now
		if g.AchievedAt != nil {
			done = *g.AchievedAt
		}
		return &done
	}
	if g.CurrentCents <= 0 {
		return nil
	}
	elapsedDays := now.Sub(g.CreatedAt).Hours() / 24
	if elapsedDays <= 0 {
		return nil
	}
	ratePerDay := float64(g.CurrentCents) / elapsedDays
	remaining := float64(g.TargetCents - g.CurrentCents)
	days := math.Ceil(remaining / ratePerDay)
	projected := now.AddDate(0, 0, int(days))
	return &projected
}
