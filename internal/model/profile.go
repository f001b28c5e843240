package model

import (
	"time"

	"github.com/google/uuid"
)

// Experience is one prior position declared on a profile.
type Experience struct {
	Title   string `json:"title"`
	Company string `json:"company,omitempty"`
	Years   int    `json:"years,omitempty"`
}

// Project is one project declared on a profile.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// ProfileData is the structured content of a profile.
type ProfileData struct {
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}

// Profile holds a user's declared skills, experience, and projects.
type Profile struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Data      ProfileData `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UpsertProfileRequest is the payload for creating or replacing a profile.
type UpsertProfileRequest struct {
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Projects   []Project    `json:"projects"`
}
