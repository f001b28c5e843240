package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// SessionRepository handles interview session data access.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, user_id, role_id, profile_id, level, type, status, overall_score, started_at, ended_at`

// Create inserts a new session in created state.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions (user_id, role_id, profile_id, level, type, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, started_at`,
		s.UserID, s.RoleID, s.ProfileID, s.Level, s.Type, s.Status,
	).Scan(&s.ID, &s.StartedAt)
	return translate(err)
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	s := &model.Session{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.UserID, &s.RoleID, &s.ProfileID, &s.Level, &s.Type,
		&s.Status, &s.OverallScore, &s.StartedAt, &s.EndedAt)
	if err != nil {
		return nil, translate(err)
	}
	return s, nil
}

// SetStatus changes the session status without touching the score.
func (r *SessionRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.SessionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interview_sessions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Complete marks a session completed with its overall score. EndedAt is
// written here and nowhere else.
func (r *SessionRepository) Complete(ctx context.Context, id uuid.UUID, overallScore int, endedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interview_sessions
		 SET status = $1, overall_score = $2, ended_at = $3
		 WHERE id = $4`,
		model.SessionStatusCompleted, overallScore, endedAt, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser retrieves all sessions for a user, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions
		 WHERE user_id = $1
		 ORDER BY started_at DESC`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// ListCompletedByUser retrieves a user's completed sessions in
// chronological order (ended_at then started_at ascending). This is the
// ordering the analytics recency weighting depends on.
func (r *SessionRepository) ListCompletedByUser(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions
		 WHERE user_id = $1 AND status = $2
		 ORDER BY ended_at ASC, started_at ASC`,
		userID, model.SessionStatusCompleted)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// Delete removes a session; questions and answers cascade.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM interview_sessions WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanSessions(rows rowScanner) ([]model.Session, error) {
	var sessions []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.RoleID, &s.ProfileID, &s.Level,
			&s.Type, &s.Status, &s.OverallScore, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
