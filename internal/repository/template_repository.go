package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// TemplateRepository handles plan template data access. Templates are
// shared across users; the unique constraint on skill_tag backs the
// get-or-create semantics.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// GetBySkillTag retrieves a template by exact skill tag.
func (r *TemplateRepository) GetBySkillTag(ctx context.Context, skillTag string) (*model.PlanTemplate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, skill_tag, title, description, steps, difficulty, duration_minutes, created_at
		 FROM plan_templates WHERE skill_tag = $1`, skillTag)
	return scanTemplate(row)
}

// GetOrCreate inserts the template unless one already exists for its
// skill tag, in which case the existing row wins. Concurrent creation
// for the same unseen tag cannot produce duplicates.
func (r *TemplateRepository) GetOrCreate(ctx context.Context, t *model.PlanTemplate) (*model.PlanTemplate, error) {
	steps, err := json.Marshal(t.Steps)
	if err != nil {
		return nil, fmt.Errorf("marshal steps: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO plan_templates (skill_tag, title, description, steps, difficulty, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (skill_tag) DO NOTHING
		 RETURNING id, created_at`,
		t.SkillTag, t.Title, t.Description, steps, t.Difficulty, t.DurationMinutes,
	).Scan(&t.ID, &t.CreatedAt)
	if err == nil {
		return t, nil
	}
	if translate(err) != ErrNotFound {
		return nil, translate(err)
	}

	// Lost the race or the template pre-existed; fetch the winner.
	return r.GetBySkillTag(ctx, t.SkillTag)
}

// FindByTagContains retrieves the first template whose skill tag
// contains the given keyword, in skill tag order.
func (r *TemplateRepository) FindByTagContains(ctx context.Context, keyword string) (*model.PlanTemplate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, skill_tag, title, description, steps, difficulty, duration_minutes, created_at
		 FROM plan_templates
		 WHERE skill_tag ILIKE '%' || $1 || '%'
		 ORDER BY skill_tag ASC
		 LIMIT 1`, keyword)
	return scanTemplate(row)
}

func scanTemplate(row scannable) (*model.PlanTemplate, error) {
	t := &model.PlanTemplate{}
	var steps []byte
	err := row.Scan(&t.ID, &t.SkillTag, &t.Title, &t.Description, &steps,
		&t.Difficulty, &t.DurationMinutes, &t.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(steps, &t.Steps); err != nil {
		return nil, fmt.Errorf("unmarshal steps: %w", err)
	}
	return t, nil
}
