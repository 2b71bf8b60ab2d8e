// Package notify delivers one-way domain event signals.
//
// The log-backed notifier is the default delivery channel; the services only
// depend on the Notifier port, so a push or e-mail channel can replace it
// without touching the use cases.
package notify

import (
	"financehouse/internal/logger"
	"financehouse/internal/models"
)

// LogNotifier emits notifications as structured log entries.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// BudgetThreshold signals that a budget crossed a spend threshold.
func (n *LogNotifier) BudgetThreshold(budget *models.Budget, percentage float64) {
	logger.Get().Infow("budget threshold crossed",
		"budget_id", budget.ID,
		"user_id", budget.UserID,
		"category", budget.CategoryName,
		"percentage", percentage,
		"status", budget.Status,
	)
}

// GoalAchieved signals that a goal reached its target.
func (n *LogNotifier) GoalAchieved(goal *models.Goal) {
	logger.Get().Infow("goal achieved",
		"goal_id", goal.ID,
		"user_id", goal.UserID,
		"name", goal.Name,
		"target_cents", goal.TargetCents,
		"current_cents", goal.CurrentCents,
	)
}

// ImportCompleted signals that a spreadsheet import finished.
func (n *LogNotifier) ImportCompleted(userID string, total, succeeded, failed int) {
	logger.Get().Infow("import completed",
		"user_id", userID,
		"total_rows", total,
		"succeeded", succeeded,
		"failed", failed,
	)
}
