package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// Typed failures surfaced to handlers. Degraded external dependencies
// (the optional question strategy) are absorbed inside the services and
// never reach this list.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrForbidden           = errors.New("resource belongs to another user")
	ErrAnswerExists        = errors.New("answer already submitted for this question")
	ErrSessionCompleted    = errors.New("session already completed")
	ErrSessionNotCompleted = errors.New("session must be completed first")
	ErrInvalidDuration     = errors.New("plan duration must be 7 or 14 days")
)

// Store interfaces consumed by the services. The pgx repositories
// satisfy them; tests substitute in-memory fakes.

// SessionStore is the session persistence contract.
type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error
	Complete(ctx context.Context, id uuid.UUID, overallScore int, endedAt time.Time) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
	ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error)
}

// QuestionStore is the question persistence contract.
type QuestionStore interface {
	CreateBatch(ctx context.Context, questions []*model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Question, error)
}

// AnswerStore is the answer persistence contract. Create must fail for a
// question that already has an answer.
type AnswerStore interface {
	Create(ctx context.Context, a *model.Answer) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Answer, error)
}

// TemplateStore is the plan template persistence contract.
type TemplateStore interface {
	GetBySkillTag(ctx context.Context, skillTag string) (*model.PlanTemplate, error)
	GetOrCreate(ctx context.Context, t *model.PlanTemplate) (*model.PlanTemplate, error)
	FindByTagContains(ctx context.Context, keyword string) (*model.PlanTemplate, error)
}

// PlanStore is the upgrade plan persistence contract.
type PlanStore interface {
	Upsert(ctx context.Context, p *model.UpgradePlan) error
	GetBySessionAndDuration(ctx context.Context, sessionID uuid.UUID, durationDays int) (*model.UpgradePlan, error)
}

// RoleStore is the role catalog read contract.
type RoleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.RoleCatalog, error)
	List(ctx context.Context) ([]model.RoleCatalog, error)
}

// ProfileStore is the profile read/write contract.
type ProfileStore interface {
	Upsert(ctx context.Context, p *model.Profile) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// UserStore is the user account persistence contract.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
