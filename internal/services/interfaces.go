package services

import (
	"time"

	"gorm.io/gorm"

	"financehouse/internal/models"
	"financehouse/internal/money"
	"financehouse/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetActiveUser(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	DeactivateUser(id string) error
	MarkInitialDataLoaded(id string) error
}

// CategoryServicer defines the contract for category resolution and listing.
type CategoryServicer interface {
	// ResolveCategory maps a raw name to a predefined category when one
	// matches, otherwise to the user's custom category of the given kind,
	// creating it on first use.
	ResolveCategory(userID, name string, kind models.CategoryType) (*models.Category, error)
	CreateCategory(userID, name string, kind models.CategoryType) (*models.Category, error)
	GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	SeedPredefined() error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate        *time.Time
	ToDate          *time.Time
	CategoryName    *string
	Type            *models.TransactionType
	IncludeInactive bool
}

// CreateTransactionInput carries the fields for creating a transaction.
type CreateTransactionInput struct {
	AmountCents  int64
	Currency     string
	Description  string
	CategoryName string
	Type         models.TransactionType
	Date         time.Time
	Imported     bool
}

// UpdateTransactionInput carries the replacement fields for an edit. All
// fields are applied; partial edits are resolved by the handler before the
// call.
type UpdateTransactionInput struct {
	AmountCents  int64
	Currency     string
	Description  string
	CategoryName string
	Type         models.TransactionType
	Date         time.Time
}

// TransactionServicer defines the contract for transaction use cases.
type TransactionServicer interface {
	CreateTransaction(userID string, in CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, in UpdateTransactionInput) (*models.Transaction, error)
	SoftDeleteTransaction(userID, transactionID string) error
	ReactivateTransaction(userID, transactionID string) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
	// PurgeTransaction hard-deletes a soft-deleted transaction. Maintenance
	// path only; the impact must already have been reverted.
	PurgeTransaction(userID, transactionID string) error
}

// BudgetProgress contains spending vs limit data for one budget.
type BudgetProgress struct {
	BudgetID       string              `json:"budget_id"`
	CategoryName   string              `json:"category_name"`
	LimitCents     int64               `json:"limit_cents"`
	SpentCents     int64               `json:"spent_cents"`
	RemainingCents int64               `json:"remaining_cents"`
	Percentage     float64             `json:"percentage"`
	Status         models.BudgetStatus `json:"status"`
}

// CreateBudgetInput carries the fields for creating a budget.
type CreateBudgetInput struct {
	CategoryName string
	LimitCents   int64
	Currency     string
	Period       models.BudgetPeriod
	StartDate    time.Time
}

// BudgetServicer defines the contract for budget use cases. ApplyExpense and
// RevertExpense run inside the caller's database transaction; they are how
// the transaction use cases keep budget spend consistent.
type BudgetServicer interface {
	CreateBudget(userID string, in CreateBudgetInput) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudgetLimit(userID, budgetID string, limitCents int64) (*models.Budget, error)
	ArchiveBudget(userID, budgetID string) error
	GetBudgetProgress(userID, budgetID string) (*BudgetProgress, error)
	ApplyExpense(tx *gorm.DB, userID string, transaction *models.Transaction) (*string, error)
	RevertExpense(tx *gorm.DB, budgetID string, amount money.Money) error
}

// GoalProgress contains progress data for one goal.
type GoalProgress struct {
	GoalID              string            `json:"goal_id"`
	Name                string            `json:"name"`
	TargetCents         int64             `json:"target_cents"`
	CurrentCents        int64             `json:"current_cents"`
	Percentage          float64           `json:"percentage"`
	Status              models.GoalStatus `json:"status"`
	Deadline            time.Time         `json:"deadline"`
	ProjectedCompletion *time.Time        `json:"projected_completion,omitempty"`
}

// CreateGoalInput carries the fields for creating a goal.
type CreateGoalInput struct {
	Name        string
	Type        models.GoalType
	TargetCents int64
	Currency    string
	Deadline    time.Time
}

// GoalServicer defines the contract for goal use cases. ApplyContribution and
// RevertContribution run inside the caller's database transaction.
type GoalServicer interface {
	CreateGoal(userID string, in CreateGoalInput) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	AddGoalProgress(userID, goalID string, amountCents int64) (*models.Goal, error)
	CancelGoal(userID, goalID string) error
	GetGoalProgress(userID, goalID string) (*GoalProgress, error)
	ApplyContribution(tx *gorm.DB, userID string, transaction *models.Transaction) (*string, error)
	RevertContribution(tx *gorm.DB, goalID string, amount money.Money) error
}

// DashboardSummary is the consolidated read model for an owner.
type DashboardSummary struct {
	BalanceCents       int64                `json:"balance_cents"`
	Currency           string               `json:"currency"`
	MonthIncomeCents   int64                `json:"month_income_cents"`
	MonthExpenseCents  int64                `json:"month_expense_cents"`
	Budgets            []BudgetProgress     `json:"budgets"`
	Goals              []GoalProgress       `json:"goals"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// DashboardServicer defines the contract for the read-only dashboard.
type DashboardServicer interface {
	GetSummary(userID string) (*DashboardSummary, error)
}

// ImportOptions tunes a spreadsheet import run.
type ImportOptions struct {
	// SkipFlagged excludes rows flagged as potential duplicates instead of
	// importing them.
	SkipFlagged bool
}

// ImportRowError describes why one row was not imported.
type ImportRowError struct {
	Row    int    `json:"row"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// DuplicateFlag marks a row as a likely duplicate without rejecting it.
type DuplicateFlag struct {
	Row                  int     `json:"row"`
	Score                float64 `json:"score"`
	Reason               string  `json:"reason"`
	MatchedTransactionID string  `json:"matched_transaction_id,omitempty"`
	MatchedRow           int     `json:"matched_row,omitempty"`
}

// ImportResult reports the outcome of one spreadsheet import.
type ImportResult struct {
	TotalRows    int                  `json:"total_rows"`
	Succeeded    int                  `json:"succeeded"`
	Failed       int                  `json:"failed"`
	Skipped      int                  `json:"skipped"`
	Duplicates   []DuplicateFlag      `json:"duplicates"`
	RowErrors    []ImportRowError     `json:"row_errors"`
	Transactions []models.Transaction `json:"transactions"`
}

// ImportServicer defines the contract for the spreadsheet import pipeline.
type ImportServicer interface {
	ImportSpreadsheet(userID, filename, contentType string, data []byte, opts ImportOptions) (*ImportResult, error)
}

// Notifier is the one-way notification port. Calls are fire-and-forget; the
// use cases never consume a return value.
type Notifier interface {
	BudgetThreshold(budget *models.Budget, percentage float64)
	GoalAchieved(goal *models.Goal)
	ImportCompleted(userID string, total, succeeded, failed int)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
