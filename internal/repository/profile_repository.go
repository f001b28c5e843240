package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// ProfileRepository handles profile data access.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert creates or replaces the user's profile. One profile per user.
func (r *ProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("marshal profile data: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id)
		 DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		p.UserID, data,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

// GetByUser retrieves the profile of a user.
func (r *ProfileRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	p := &model.Profile{}
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, data, created_at, updated_at
		 FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.ID, &p.UserID, &data, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(data, &p.Data); err != nil {
		return nil, fmt.Errorf("unmarshal profile data: %w", err)
	}
	return p, nil
}

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p := &model.Profile{}
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, data, created_at, updated_at
		 FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &data, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(data, &p.Data); err != nil {
		return nil, fmt.Errorf("unmarshal profile data: %w", err)
	}
	return p, nil
}
