package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
)

// ProfileService manages the user's single structured profile.
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Upsert creates or replaces the user's profile.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req model.UpsertProfileRequest) (*model.Profile, error) {
	profile := &model.Profile{
		ID:     uuid.New(),
		UserID: userID,
		Data: model.ProfileData{
			Skills:     req.Skills,
			Experience: req.Experience,
			Projects:   req.Projects,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}
