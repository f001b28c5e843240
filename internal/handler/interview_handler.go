package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/middleware"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/response"
	"github.com/mockmate/mockmate-backend/internal/service"
	"github.com/mockmate/mockmate-backend/internal/validator"
)

// InterviewHandler handles the session lifecycle endpoints.
type InterviewHandler struct {
	interviewService *service.InterviewService
}

// NewInterviewHandler creates a new InterviewHandler.
func NewInterviewHandler(interviewService *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

// Create godoc
// POST /api/v1/sessions
// Starts an interview session and generates its questions.
func (h *InterviewHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, questions, err := h.interviewService.CreateSession(c.Request.Context(), userID, req)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session":   session,
		"questions": questions,
	})
}

// List godoc
// GET /api/v1/sessions
// Returns the user's sessions, most recent first.
func (h *InterviewHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	sessions, err := h.interviewService.ListSessions(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// Get godoc
// GET /api/v1/sessions/:session_id
// Returns one session.
func (h *InterviewHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	session, err := h.interviewService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// Questions godoc
// GET /api/v1/sessions/:session_id/questions
// Returns the session's questions in order.
func (h *InterviewHandler) Questions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	questions, err := h.interviewService.ListQuestions(c.Request.Context(), userID, sessionID)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// SubmitAnswer godoc
// POST /api/v1/sessions/:session_id/answers
// Scores and stores an answer. Each question accepts exactly one answer.
func (h *InterviewHandler) SubmitAnswer(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.interviewService.SubmitAnswer(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"answer": answer})
}

// Finish godoc
// POST /api/v1/sessions/:session_id/finish
// Completes the session and computes its overall score.
func (h *InterviewHandler) Finish(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	session, err := h.interviewService.FinishSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// Abandon godoc
// POST /api/v1/sessions/:session_id/abandon
// Marks an unfinished session as abandoned.
func (h *InterviewHandler) Abandon(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	session, err := h.interviewService.AbandonSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// Report godoc
// GET /api/v1/sessions/:session_id/report
// Returns the computed session report.
func (h *InterviewHandler) Report(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	report, err := h.interviewService.GetReport(c.Request.Context(), userID, sessionID)
	if err != nil {
		failServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"report": report})
}

func sessionParam(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return sessionID, true
}

// failServiceError maps service sentinel errors to HTTP responses.
func failServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrAnswerExists):
		response.Fail(c, http.StatusBadRequest, response.ErrAnswerExists)
	case errors.Is(err, service.ErrSessionCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
	case errors.Is(err, service.ErrSessionNotCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionNotCompleted)
	case errors.Is(err, service.ErrInvalidDuration):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDuration)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
