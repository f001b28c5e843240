package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockmate/mockmate-backend/internal/middleware"
	"github.com/mockmate/mockmate-backend/internal/response"
	"github.com/mockmate/mockmate-backend/internal/service"
)

// PlanHandler handles upgrade plan endpoints.
type PlanHandler struct {
	planService *service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService *service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// Generate godoc
// POST /api/v1/sessions/:session_id/plan?duration_days=7|14
// Generates (or regenerates) the upgrade plan for a completed session.
func (h *PlanHandler) Generate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	plan, err := h.planService.GenerateUpgradePlan(c.Request.Context(), userID, sessionID, durationParam(c))
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// Get godoc
// GET /api/v1/sessions/:session_id/plan?duration_days=7|14
// Returns a previously generated plan.
func (h *PlanHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, sessionID, durationParam(c))
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

func durationParam(c *gin.Context) int {
	duration, err := strconv.Atoi(c.DefaultQuery("duration_days", "7"))
	if err != nil {
		return 0
	}
	return duration
}
