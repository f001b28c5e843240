package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates interview session states.
type SessionStatus string

const (
	SessionStatusCreated    SessionStatus = "created"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusAbandoned  SessionStatus = "abandoned"
)

// Level is the candidate seniority for a session.
type Level string

const (
	LevelJunior Level = "junior"
	LevelMid    Level = "mid"
	LevelSenior Level = "senior"
)

// InterviewType selects the question mix for a session.
type InterviewType string

const (
	TypeHR        InterviewType = "hr"
	TypeTechnical InterviewType = "technical"
	TypeCase      InterviewType = "case"
	TypeMixed     InterviewType = "mixed"
)

// Session represents one simulated interview run.
// Invariant: OverallScore is non-nil iff Status == completed;
// EndedAt is set exactly once, at completion.
type Session struct {
	ID           uuid.UUID     `json:"id"`
	UserID       uuid.UUID     `json:"user_id"`
	RoleID       uuid.UUID     `json:"role_id"`
	ProfileID    *uuid.UUID    `json:"profile_id,omitempty"`
	Level        Level         `json:"level"`
	Type         InterviewType `json:"type"`
	Status       SessionStatus `json:"status"`
	OverallScore *int          `json:"overall_score,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	EndedAt      *time.Time    `json:"ended_at,omitempty"`
}

// CreateSessionRequest is the payload for starting an interview.
type CreateSessionRequest struct {
	RoleID    string `json:"role_id" binding:"required,uuid"`
	ProfileID string `json:"profile_id" binding:"omitempty,uuid"`
	Level     string `json:"level" binding:"required,oneof=junior mid senior"`
	Type      string `json:"type" binding:"required,oneof=hr technical case mixed"`
}
