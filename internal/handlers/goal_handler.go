package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financehouse/internal/errors"
	"financehouse/internal/models"
	"financehouse/internal/pagination"
	"financehouse/internal/services"
)

// GoalHandler handles goal-related requests.
type GoalHandler struct {
	goalService  services.GoalServicer
	auditService services.AuditServicer
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService services.GoalServicer, auditService services.AuditServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, auditService: auditService}
}

// CreateGoalRequest represents the request payload for creating a goal
type CreateGoalRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Type        models.GoalType `json:"type" binding:"required,goal_type"`
	TargetCents int64           `json:"target_cents" binding:"required,gt=0"`
	Currency    string          `json:"currency" binding:"omitempty,iso4217"`
	Deadline    string          `json:"deadline" binding:"required"`
}

// CreateGoal handles the creation of a new goal
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	deadline, err := parseFlexibleTime(req.Deadline)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(userID, services.CreateGoalInput{
		Name:        req.Name,
		Type:        req.Type,
		TargetCents: req.TargetCents,
		Currency:    req.Currency,
		Deadline:    deadline,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_GOAL", "goal", goal.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "target_cents": req.TargetCents, "type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"goal": goal})
}

// GetUserGoals handles the paginated retrieval of the user's goals
func (h *GoalHandler) GetUserGoals(c *gin.Context) {
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

	var status *models.GoalStatus
	if v := c.Query("status"); v != "" {
		s := models.GoalStatus(v)
		switch s {
		case models.GoalStatusActive, models.GoalStatusConcluded, models.GoalStatusCancelled:
			status = &s
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status, must be active, concluded, or cancelled"))
			return
		}
	}

	result, err := h.goalService.GetUserGoals(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetGoalByID handles the retrieval of a specific goal
func (h *GoalHandler) GetGoalByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.goalService.GetGoalByID(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// AddGoalProgressRequest represents the request payload for a direct deposit
// towards a goal
type AddGoalProgressRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

// AddGoalProgress handles an explicit deposit towards a goal
func (h *GoalHandler) AddGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.AddGoalProgress(userID, goalID, req.AmountCents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ADD_GOAL_PROGRESS", "goal", goalID, c.ClientIP(),
		map[string]interface{}{"amount_cents": req.AmountCents})

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

// CancelGoal handles cancelling a goal
func (h *GoalHandler) CancelGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.CancelGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CANCEL_GOAL", "goal", goalID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Goal cancelled successfully"})
}

// GetGoalProgress handles the retrieval of progress data for a goal
func (h *GoalHandler) GetGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	progress, err := h.goalService.GetGoalProgress(userID, goalID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
