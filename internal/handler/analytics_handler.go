package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockmate/mockmate-backend/internal/middleware"
	"github.com/mockmate/mockmate-backend/internal/response"
	"github.com/mockmate/mockmate-backend/internal/service"
)

// AnalyticsHandler handles cross-session analytics endpoints.
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SkillMap godoc
// GET /api/v1/analytics/skill-map
// Returns rolling mastery, trend, and improvement per skill tag.
func (h *AnalyticsHandler) SkillMap(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skillMap, err := h.analyticsService.SkillMapFor(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"skill_map": skillMap})
}

// NextSkill godoc
// GET /api/v1/analytics/next-skill
// Returns the lowest-mastery skill to practice next, or null.
func (h *AnalyticsHandler) NextSkill(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skill, err := h.analyticsService.NextSkill(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"next_skill": skill})
}

// TopImproving godoc
// GET /api/v1/analytics/improving?limit=N
// Returns skills with positive improvement, best first.
func (h *AnalyticsHandler) TopImproving(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skills, err := h.analyticsService.TopImproving(c.Request.Context(), userID, limitParam(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

// TopWeak godoc
// GET /api/v1/analytics/weak?limit=N
// Returns the lowest-mastery skills, weakest first.
func (h *AnalyticsHandler) TopWeak(c *gin.Context) {
	userID := middleware.GetUserID(c)

	skills, err := h.analyticsService.TopWeak(c.Request.Context(), userID, limitParam(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"skills": skills})
}

// Overview godoc
// GET /api/v1/analytics/overview
// Returns session counts, averages, and score trends.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	overview, err := h.analyticsService.OverviewFor(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"overview": overview})
}

func limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 {
		return 5
	}
	return limit
}
