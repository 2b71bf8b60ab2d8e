package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"financehouse/internal/config"
	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/pagination"
)

// transactionService handles transaction use cases and the budget/goal side
// effects they carry.
type transactionService struct {
	db              *gorm.DB
	userService     UserServicer
	categoryService CategoryServicer
	budgetService   BudgetServicer
	goalService     GoalServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(
	db *gorm.DB,
	userService UserServicer,
	categoryService CategoryServicer,
	budgetService BudgetServicer,
	goalService GoalServicer,
) TransactionServicer {
	return &transactionService{
		db:              db,
		userService:     userService,
		categoryService: categoryService,
		budgetService:   budgetService,
		goalService:     goalService,
	}
}

// CreateTransaction creates a transaction and applies its impact on the
// matching budget or goal within one database transaction.
func (s *transactionService) CreateTransaction(userID string, in CreateTransactionInput) (*models.Transaction, error) {
	if _, err := s.userService.GetActiveUser(userID); err != nil {
		return nil, err
	}

	kind, err := models.CategoryKindFor(in.Type)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryService.ResolveCategory(userID, in.CategoryName, kind)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	currency := in.Currency
	if currency == "" {
		currency = config.Get().DefaultCurrency
	}

	transaction := &models.Transaction{
		UserID:       userID,
		Type:         in.Type,
		AmountCents:  in.AmountCents,
		Currency:     currency,
		Description:  in.Description,
		CategoryName: category.Name,
		CategoryType: category.Type,
		Date:         date,
		IsActive:     true,
		Imported:     in.Imported,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.applyImpact(tx, transaction)
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// UpdateTransaction edits a transaction in place. The old impact is reverted
// and the new impact reapplied inside the same database transaction, so
// budget spend and goal progress stay accurate under arbitrary edits,
// including category and type changes. CreatedAt is never touched.
func (s *transactionService) UpdateTransaction(userID, transactionID string, in UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	kind, err := models.CategoryKindFor(in.Type)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryService.ResolveCategory(userID, in.CategoryName, kind)
	if err != nil {
		return nil, err
	}

	currency := in.Currency
	if currency == "" {
		currency = config.Get().DefaultCurrency
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if transaction.IsActive {
			if err := s.revertImpact(tx, transaction); err != nil {
				return err
			}
		}

		transaction.AmountCents = in.AmountCents
		transaction.Currency = currency
		transaction.Description = in.Description
		transaction.CategoryName = category.Name
		transaction.CategoryType = category.Type
		transaction.Type = in.Type
		if !in.Date.IsZero() {
			transaction.Date = in.Date
		}
		if err := transaction.Validate(); err != nil {
			return err
		}

		if transaction.IsActive {
			if err := s.applyImpact(tx, transaction); err != nil {
				return err
			}
		}
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// SoftDeleteTransaction deactivates a transaction and reverts its impact.
func (s *transactionService) SoftDeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := transaction.Deactivate(); err != nil {
			return err
		}
		if err := s.revertImpact(tx, transaction); err != nil {
			return err
		}
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ReactivateTransaction restores a soft-deleted transaction and reapplies
// its impact.
func (s *transactionService) ReactivateTransaction(userID, transactionID string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := transaction.Reactivate(); err != nil {
			return err
		}
		if err := s.applyImpact(tx, transaction); err != nil {
			return err
		}
		if err := tx.Save(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetTransactionByID retrieves a transaction by ID for a specific user. A
// transaction owned by someone else reports not-found rather than forbidden,
// so existence never leaks across owners.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// ListTransactions retrieves a paginated, filtered list, most recent first
// with a stable creation-order tie-break.
func (s *transactionService) ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetRecentTransactions is the recent-N shortcut over active transactions.
func (s *transactionService) GetRecentTransactions(userID string, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("date DESC, created_at DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// PurgeTransaction hard-deletes a soft-deleted transaction. The impact was
// already reverted at soft-delete time, so no budget or goal is touched.
func (s *transactionService) PurgeTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}
	if transaction.IsActive {
		return apperrors.ErrTransactionActive
	}
	if err := s.db.Unscoped().Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.CategoryName != nil {
		q = q.Where("category_name = ?", models.NormalizeCategoryName(*f.CategoryName))
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	return q
}

// applyImpact routes the transaction's effect to the matching budget or goal
// and persists the resolved link on the transaction.
func (s *transactionService) applyImpact(tx *gorm.DB, transaction *models.Transaction) error {
	switch transaction.Type {
	case models.TransactionTypeExpense:
		budgetID, err := s.budgetService.ApplyExpense(tx, transaction.UserID, transaction)
		if err != nil {
			return err
		}
		transaction.BudgetID = budgetID
	case models.TransactionTypeIncome:
		goalID, err := s.goalService.ApplyContribution(tx, transaction.UserID, transaction)
		if err != nil {
			return err
		}
		transaction.GoalID = goalID
	default:
		return apperrors.ErrInvalidTransactionType
	}
	return tx.Model(transaction).Select("budget_id", "goal_id").Updates(map[string]interface{}{
		"budget_id": transaction.BudgetID,
		"goal_id":   transaction.GoalID,
	}).Error
}

// revertImpact undoes a previously applied impact using the persisted links.
func (s *transactionService) revertImpact(tx *gorm.DB, transaction *models.Transaction) error {
	if transaction.BudgetID != nil {
		if err := s.budgetService.RevertExpense(tx, *transaction.BudgetID, transaction.Amount()); err != nil {
			return err
		}
	}
	if transaction.GoalID != nil {
		if err := s.goalService.RevertContribution(tx, *transaction.GoalID, transaction.Amount()); err != nil {
			return err
		}
	}
	transaction.ClearImpactLinks()
	return tx.Model(transaction).Select("budget_id", "goal_id").Updates(map[string]interface{}{
		"budget_id": nil,
		"goal_id":   nil,
	}).Error
}
