package services

import (
	"sync"

	"financehouse/internal/models"
)

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	mu               sync.Mutex
	budgetThresholds []float64
	goalsAchieved    []string
	importsCompleted int
}

func (n *recordingNotifier) BudgetThreshold(budget *models.Budget, percentage float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.budgetThresholds = append(n.budgetThresholds, percentage)
}

func (n *recordingNotifier) GoalAchieved(goal *models.Goal) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goalsAchieved = append(n.goalsAchieved, goal.ID)
}

func (n *recordingNotifier) ImportCompleted(userID string, total, succeeded, failed int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.importsCompleted++
}

func (n *recordingNotifier) budgetCalls() []float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]float64, len(n.budgetThresholds))
	copy(out, n.budgetThresholds)
	return out
}

func (n *recordingNotifier) goalCalls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.goalsAchieved))
	copy(out, n.goalsAchieved)
	return out
}
