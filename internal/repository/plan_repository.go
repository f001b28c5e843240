package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// PlanRepository handles upgrade plan data access.
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

// Upsert writes the plan for (session, duration_days), overwriting the
// content of an existing plan rather than duplicating it.
func (r *PlanRepository) Upsert(ctx context.Context, p *model.UpgradePlan) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal plan content: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO upgrade_plans (session_id, duration_days, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, duration_days)
		 DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		p.SessionID, p.DurationDays, content,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

// GetBySessionAndDuration retrieves the plan for one session/duration pair.
func (r *PlanRepository) GetBySessionAndDuration(ctx context.Context, sessionID uuid.UUID, durationDays int) (*model.UpgradePlan, error) {
	p := &model.UpgradePlan{}
	var content []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, duration_days, content, created_at, updated_at
		 FROM upgrade_plans
		 WHERE session_id = $1 AND duration_days = $2`,
		sessionID, durationDays,
	).Scan(&p.ID, &p.SessionID, &p.DurationDays, &content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, fmt.Errorf("unmarshal plan content: %w", err)
	}
	return p, nil
}
