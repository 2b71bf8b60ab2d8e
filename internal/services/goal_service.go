package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"financehouse/internal/config"
	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/money"
	"financehouse/internal/pagination"
)

// savingsCategories are the income categories treated as goal contributions
// even without a name match, for savings-type goals.
var savingsCategories = map[string]bool{
	"POUPANCA":     true,
	"INVESTIMENTO": true,
}

// goalService handles goal-related business logic.
type goalService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, notifier Notifier) GoalServicer {
	return &goalService{db: db, notifier: notifier}
}

// CreateGoal creates a new savings goal.
func (s *goalService) CreateGoal(userID string, in CreateGoalInput) (*models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	currency := in.Currency
	if currency == "" {
		currency = config.Get().DefaultCurrency
	}
	target, err := money.New(in.TargetCents, currency)
	if err != nil {
		return nil, err
	}
	if !target.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if in.Deadline.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal deadline is required")
	}

	goal := &models.Goal{
		UserID:      userID,
		Name:        name,
		Type:        in.Type,
		TargetCents: target.Cents,
		Currency:    target.Currency,
		Deadline:    in.Deadline,
		Status:      models.GoalStatusActive,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns a paginated list of goals with an optional status filter.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).
		Order("deadline ASC, created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// AddGoalProgress records an explicit deposit towards the goal. The
// achievement notification fires exactly once, on the crossing that first
// reaches the target.
func (s *goalService) AddGoalProgress(userID, goalID string, amountCents int64) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == models.GoalStatusCancelled {
		return nil, apperrors.ErrGoalNotActive
	}
	amount, err := money.New(amountCents, goal.Currency)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	achieved, err := goal.AddProgress(amount)
	if err != nil {
		return nil, err
	}
	if err := s.db.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if achieved {
		s.notifier.GoalAchieved(goal)
	}
	return goal, nil
}

// CancelGoal abandons a goal.
func (s *goalService) CancelGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	goal.Cancel()
	if err := s.db.Save(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetGoalProgress returns the computed progress for one goal.
func (s *goalService) GetGoalProgress(userID, goalID string) (*GoalProgress, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	return goalProgressOf(goal, time.Now()), nil
}

func goalProgressOf(goal *models.Goal, now time.Time) *GoalProgress {
	return &GoalProgress{
		GoalID:              goal.ID,
		Name:                goal.Name,
		TargetCents:         goal.TargetCents,
		CurrentCents:        goal.CurrentCents,
		Percentage:          goal.Percentage(),
		Status:              goal.Status,
		Deadline:            goal.Deadline,
		ProjectedCompletion: goal.ProjectedCompletion(now),
	}
}

// ApplyContribution adds a goal-contributing income transaction to the best
// matching active goal, if any, and fires the achievement notification on
// the first target crossing. Returns the affected goal's ID so the caller
// can persist the link. Runs inside the caller's database transaction.
func (s *goalService) ApplyContribution(tx *gorm.DB, userID string, transaction *models.Transaction) (*string, error) {
	var goals []models.Goal
	if err := tx.Where("user_id = ? AND status = ?", userID, models.GoalStatusActive).
		Order("deadline ASC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal := matchGoal(goals, transaction)
	if goal == nil {
		return nil, nil
	}

	achieved, err := goal.AddProgress(transaction.Amount())
	if err != nil {
		return nil, err
	}
	if err := tx.Save(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if achieved {
		s.notifier.GoalAchieved(goal)
	}
	id := goal.ID
	return &id, nil
}

// RevertContribution subtracts a previously applied contribution from the
// linked goal. Runs inside the caller's database transaction.
func (s *goalService) RevertContribution(tx *gorm.DB, goalID string, amount money.Money) error {
	var goal models.Goal
	if err := tx.Where("id = ?", goalID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Goal purged since the transaction was created; nothing to revert.
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := goal.RevertProgress(amount); err != nil {
		return err
	}
	if err := tx.Save(&goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// matchGoal picks the goal an income transaction contributes to: first a
// goal whose name appears in the description or category, then, for savings
// categories, the active goal with the nearest deadline. The resolved link
// is persisted on the transaction so edits never re-run this heuristic.
func matchGoal(goals []models.Goal, transaction *models.Transaction) *models.Goal {
	description := models.NormalizeCategoryName(transaction.Description)
	for i := range goals {
		if goals[i].Currency != transaction.Currency {
			continue
		}
		name := models.NormalizeCategoryName(goals[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(description, name) || strings.Contains(transaction.CategoryName, name) {
			return &goals[i]
		}
	}
	if savingsCategories[transaction.CategoryName] {
		var fallback *models.Goal
		for i := range goals {
			if goals[i].Currency != transaction.Currency {
				continue
			}
			if goals[i].Type == models.GoalTypeSavings || goals[i].Type == models.GoalTypeEmergency {
				return &goals[i]
			}
			if fallback == nil {
				fallback = &goals[i]
			}
		}
		return fallback
	}
	return nil
}
