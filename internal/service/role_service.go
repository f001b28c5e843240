package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
)

// RoleService exposes the role catalog.
type RoleService struct {
	roles RoleStore
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles RoleStore) *RoleService {
	return &RoleService{roles: roles}
}

// List returns all catalog roles.
func (s *RoleService) List(ctx context.Context) ([]model.RoleCatalog, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// Get returns one catalog role.
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*model.RoleCatalog, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}
