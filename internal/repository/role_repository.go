package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// RoleRepository handles role catalog data access.
type RoleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// Create inserts a catalog role.
func (r *RoleRepository) Create(ctx context.Context, role *model.RoleCatalog) error {
	keywords, err := json.Marshal(role.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	err = r.pool.QueryRow(ctx,
		`INSERT INTO role_catalog (name, category, keywords)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		role.Name, role.Category, keywords,
	).Scan(&role.ID, &role.CreatedAt)
	return translate(err)
}

// GetByID retrieves a role by ID.
func (r *RoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RoleCatalog, error) {
	role := &model.RoleCatalog{}
	var keywords []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, category, keywords, created_at
		 FROM role_catalog WHERE id = $1`, id,
	).Scan(&role.ID, &role.Name, &role.Category, &keywords, &role.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(keywords, &role.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}
	return role, nil
}

// List retrieves the whole catalog, by name.
func (r *RoleRepository) List(ctx context.Context) ([]model.RoleCatalog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category, keywords, created_at
		 FROM role_catalog ORDER BY name ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var roles []model.RoleCatalog
	for rows.Next() {
		var role model.RoleCatalog
		var keywords []byte
		if err := rows.Scan(&role.ID, &role.Name, &role.Category, &keywords, &role.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keywords, &role.Keywords); err != nil {
			return nil, fmt.Errorf("unmarshal keywords: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
