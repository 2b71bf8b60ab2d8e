package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/pagination"
	"financehouse/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for creating a budget
type CreateBudgetRequest struct {
	Category   string              `json:"category" binding:"required,max=60"`
	LimitCents int64               `json:"limit_cents" binding:"required,gt=0"`
	Currency   string              `json:"currency" binding:"omitempty,iso4217"`
	Period     models.BudgetPeriod `json:"period" binding:"required,budget_period"`
	StartDate  string              `json:"start_date" binding:"required"`
}

// CreateBudget handles the creation of a new budget
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseFlexibleTime(req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, services.CreateBudgetInput{
		CategoryName: req.Category,
		LimitCents:   req.LimitCents,
		Currency:     req.Currency,
		Period:       req.Period,
		StartDate:    startDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"category": budget.CategoryName, "limit_cents": req.LimitCents, "period": req.Period})

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetUserBudgets handles the paginated retrieval of the user's budgets
func (h *BudgetHandler) GetUserBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var status *models.BudgetStatus
	if v := c.Query("status"); v != "" {
		s := models.BudgetStatus(v)
		switch s {
		case models.BudgetStatusActive, models.BudgetStatusExceeded, models.BudgetStatusArchived:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be active, exceeded, or archived"))
			return
		}
	}

	result, err := h.budgetService.GetUserBudgets(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBudgetByID handles the retrieval of a specific budget
func (h *BudgetHandler) GetBudgetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudgetByID(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudgetRequest represents the request payload for updating a budget limit
type UpdateBudgetRequest struct {
	LimitCents int64 `json:"limit_cents" binding:"required,gt=0"`
}

// UpdateBudget handles changing a budget's limit
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.UpdateBudgetLimit(userID, budgetID, req.LimitCents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BUDGET", "budget", budgetID, c.ClientIP(),
		map[string]interface{}{"limit_cents": req.LimitCents})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// ArchiveBudget handles archiving a budget
func (h *BudgetHandler) ArchiveBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.ArchiveBudget(userID, budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ARCHIVE_BUDGET", "budget", budgetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget archived successfully"})
}

// GetBudgetProgress handles the retrieval of spending progress for a budget
func (h *BudgetHandler) GetBudgetProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.budgetService.GetBudgetProgress(userID, budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
