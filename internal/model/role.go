package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleCatalog is a target role users can interview for.
// Keywords drive question selection, gap analysis, and suggestions.
type RoleCatalog struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleSuggestion scores how well a role fits a profile.
type RoleSuggestion struct {
	Role    RoleCatalog `json:"role"`
	Score   float64     `json:"score"`
	Reasons []string    `json:"reasons"`
}
