package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/pagination"
)

// categoryService handles category resolution and listing.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// SeedPredefined inserts the predefined categories if they are not present.
// Safe to call on every startup.
func (s *categoryService) SeedPredefined() error {
	seed := func(names []string, kind models.CategoryType) error {
		for _, name := range names {
			var count int64
			if err := s.db.Model(&models.Category{}).
				Where("name = ? AND type = ? AND is_predefined = ?", name, kind, true).
				Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				continue
			}
			cat := &models.Category{Name: name, Type: kind, IsPredefined: true}
			if err := s.db.Create(cat).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	}

	if err := seed(models.PredefinedExpenseCategories, models.CategoryTypeExpense); err != nil {
		return err
	}
	return seed(models.PredefinedIncomeCategories, models.CategoryTypeIncome)
}

// ResolveCategory maps a raw name to a predefined category when one matches,
// otherwise to the user's custom category of the given kind. Custom
// categories are created on first use.
func (s *categoryService) ResolveCategory(userID, name string, kind models.CategoryType) (*models.Category, error) {
	normalized, err := models.ValidateCategoryName(name)
	if err != nil {
		return nil, err
	}

	if models.IsPredefinedCategory(normalized, kind) {
		var cat models.Category
		err := s.db.Where("name = ? AND type = ? AND is_predefined = ?", normalized, kind, true).First(&cat).Error
		if err == nil {
			return &cat, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		// Predefined set not seeded yet; fall through and create it.
		cat = models.Category{Name: normalized, Type: kind, IsPredefined: true}
		if err := s.db.Create(&cat).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &cat, nil
	}

	var cat models.Category
	err = s.db.Where("user_id = ? AND name = ? AND type = ?", userID, normalized, kind).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.CreateCategory(userID, normalized, kind)
}

// CreateCategory creates a custom category for the user.
func (s *categoryService) CreateCategory(userID, name string, kind models.CategoryType) (*models.Category, error) {
	normalized, err := models.ValidateCategoryName(name)
	if err != nil {
		return nil, err
	}
	if kind != models.CategoryTypeIncome && kind != models.CategoryTypeExpense {
		return nil, apperrors.ErrInvalidCategory
	}
	cat := &models.Category{
		UserID: userID,
		Name:   normalized,
		Type:   kind,
	}
	if err := s.db.Create(cat).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cat, nil
}

// GetUserCategories returns the predefined categories plus the user's custom
// ones, predefined first, names ascending.
func (s *categoryService) GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := s.db.Model(&models.Category{}).Where("is_predefined = ? OR user_id = ?", true, userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("is_predefined DESC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}
