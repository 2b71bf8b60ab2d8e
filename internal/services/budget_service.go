package services

import (
	"errors"

	"gorm.io/gorm"

	"financehouse/internal/config"
	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/money"
	"financehouse/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, notifier Notifier) BudgetServicer {
	return &budgetService{db: db, notifier: notifier}
}

// CreateBudget creates a new budget for a category. At most one non-archived
// budget may exist per (user, category, overlapping period).
func (s *budgetService) CreateBudget(userID string, in CreateBudgetInput) (*models.Budget, error) {
	categoryName, err := models.ValidateCategoryName(in.CategoryName)
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = config.Get().DefaultCurrency
	}
	limit, err := money.New(in.LimitCents, currency)
	if err != nil {
		return nil, err
	}
	if !limit.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if in.StartDate.IsZero() {
		return nil, apperrors.ErrInvalidPeriod
	}
	endDate, err := models.PeriodEnd(in.Period, in.StartDate)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:       userID,
		CategoryName: categoryName,
		LimitCents:   limit.Cents,
		Currency:     limit.Currency,
		Period:       in.Period,
		StartDate:    in.StartDate,
		EndDate:      endDate,
		Status:       models.BudgetStatusActive,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var overlapping []models.Budget
		if err := tx.Where("user_id = ? AND category_name = ? AND status <> ?",
			userID, categoryName, models.BudgetStatusArchived).
			Find(&overlapping).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for i := range overlapping {
			if overlapping[i].Overlaps(budget.StartDate, budget.EndDate) {
				return apperrors.ErrBudgetOverlap
			}
		}
		if err := tx.Create(budget).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// GetUserBudgets returns a paginated list of budgets with an optional status filter.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).
		Order("start_date DESC, created_at DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudgetLimit changes the budget's limit. The spend is untouched; the
// status and alert level are refreshed against the new limit.
func (s *budgetService) UpdateBudgetLimit(userID, budgetID string, limitCents int64) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	limit, err := money.New(limitCents, budget.Currency)
	if err != nil {
		return nil, err
	}
	if !limit.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	budget.LimitCents = limit.Cents
	// Reverting a zero amount recomputes status and alert band.
	if err := budget.Revert(money.Zero(budget.Currency), config.Get().BudgetWarnThreshold); err != nil {
		return nil, err
	}
	if err := s.db.Save(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// ArchiveBudget retires a budget. Archived budgets no longer match transactions.
func (s *budgetService) ArchiveBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}
	budget.Archive()
	if err := s.db.Save(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetProgress returns the computed progress for one budget.
func (s *budgetService) GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	return budgetProgressOf(budget), nil
}

func budgetProgressOf(budget *models.Budget) *BudgetProgress {
	remaining := budget.LimitCents - budget.SpentCents
	if remaining < 0 {
		remaining = 0
	}
	return &BudgetProgress{
		BudgetID:       budget.ID,
		CategoryName:   budget.CategoryName,
		LimitCents:     budget.LimitCents,
		SpentCents:     budget.SpentCents,
		RemainingCents: remaining,
		Percentage:     budget.Percentage(),
		Status:         budget.Status,
	}
}

// ApplyExpense accumulates an expense transaction into the matching active
// budget, if any, and fires a threshold notification when a new band is
// crossed. Returns the affected budget's ID so the caller can persist the
// link on the transaction. Runs inside the caller's database transaction.
func (s *budgetService) ApplyExpense(tx *gorm.DB, userID string, transaction *models.Transaction) (*string, error) {
	var budgets []models.Budget
	if err := tx.Where("user_id = ? AND category_name = ? AND status <> ?",
		userID, transaction.CategoryName, models.BudgetStatusArchived).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range budgets {
		budget := &budgets[i]
		if !budget.Contains(transaction.Date) || budget.Currency != transaction.Currency {
			continue
		}
		crossed, err := budget.Apply(transaction.Amount(), config.Get().BudgetWarnThreshold)
		if err != nil {
			return nil, err
		}
		if err := tx.Save(budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if crossed > 0 {
			s.notifier.BudgetThreshold(budget, budget.Percentage())
		}
		id := budget.ID
		return &id, nil
	}
	return nil, nil
}

// RevertExpense subtracts a previously applied expense from the linked
// budget. Runs inside the caller's database transaction.
func (s *budgetService) RevertExpense(tx *gorm.DB, budgetID string, amount money.Money) error {
	var budget models.Budget
	if err := tx.Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Budget purged since the transaction was created; nothing to revert.
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := budget.Revert(amount, config.Get().BudgetWarnThreshold); err != nil {
		return err
	}
	if err := tx.Save(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
