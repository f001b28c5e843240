package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mockmate/mockmate-backend/internal/middleware"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/response"
	"github.com/mockmate/mockmate-backend/internal/service"
	"github.com/mockmate/mockmate-backend/internal/validator"
)

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
	suggestService *service.SuggestService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService, suggestService *service.SuggestService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		suggestService: suggestService,
	}
}

// Upsert godoc
// PUT /api/v1/profile
// Creates or replaces the authenticated user's profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req model.UpsertProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), userID, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// Get godoc
// GET /api/v1/profile
// Returns the authenticated user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// SuggestRoles godoc
// GET /api/v1/profile/suggestions
// Returns the catalog roles best matching the user's profile.
func (h *ProfileHandler) SuggestRoles(c *gin.Context) {
	userID := middleware.GetUserID(c)

	suggestions, err := h.suggestService.SuggestRoles(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"suggestions": suggestions})
}
