package services

import (
	"time"

	"gorm.io/gorm"

	"financehouse/internal/config"
	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
)

// recentTransactionCount is how many transactions the dashboard shows.
const recentTransactionCount = 10

// dashboardService composes the read-only summary. It never mutates.
type dashboardService struct {
	db                 *gorm.DB
	transactionService TransactionServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, transactionService TransactionServicer) DashboardServicer {
	return &dashboardService{db: db, transactionService: transactionService}
}

// GetSummary composes balance, current-month totals, budget statuses, goal
// progress, and the most recent transactions. An owner with no data gets
// zeros and empty lists, never an error.
func (s *dashboardService) GetSummary(userID string) (*DashboardSummary, error) {
	currency := config.Get().DefaultCurrency
	now := time.Now()

	income, err := s.sumActive(userID, models.TransactionTypeIncome, nil, nil)
	if err != nil {
		return nil, err
	}
	expense, err := s.sumActive(userID, models.TransactionTypeExpense, nil, nil)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	monthIncome, err := s.sumActive(userID, models.TransactionTypeIncome, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}
	monthExpense, err := s.sumActive(userID, models.TransactionTypeExpense, &monthStart, &monthEnd)
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND status <> ?", userID, models.BudgetStatusArchived).
		Order("start_date DESC, created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budgetProgress := make([]BudgetProgress, 0, len(budgets))
	for i := range budgets {
		budgetProgress = append(budgetProgress, *budgetProgressOf(&budgets[i]))
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ? AND status <> ?", userID, models.GoalStatusCancelled).
		Order("deadline ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goalProgress := make([]GoalProgress, 0, len(goals))
	for i := range goals {
		goalProgress = append(goalProgress, *goalProgressOf(&goals[i], now))
	}

	recent, err := s.transactionService.GetRecentTransactions(userID, recentTransactionCount)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.Transaction{}
	}

	return &DashboardSummary{
		BalanceCents:       income - expense,
		Currency:           currency,
		MonthIncomeCents:   monthIncome,
		MonthExpenseCents:  monthExpense,
		Budgets:            budgetProgress,
		Goals:              goalProgress,
		RecentTransactions: recent,
	}, nil
}

// sumActive sums active transaction amounts of one type, optionally within a
// date window.
func (s *dashboardService) sumActive(userID string, txType models.TransactionType, from, to *time.Time) (int64, error) {
	q := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount_cents), 0)").
		Where("user_id = ? AND type = ? AND is_active = ?", userID, txType, true)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var total int64
	if err := q.Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}
