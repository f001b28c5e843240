package model

import (
	"github.com/google/uuid"
)

// QuestionCategory classifies what a question probes.
type QuestionCategory string

const (
	CategoryBehavioral QuestionCategory = "behavioral"
	CategoryTechnical  QuestionCategory = "technical"
	CategoryCase       QuestionCategory = "case"
)

// Difficulty levels for questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is a single interview question. Immutable once created.
type Question struct {
	ID           uuid.UUID        `json:"id"`
	SessionID    uuid.UUID        `json:"session_id"`
	Order        int              `json:"order"`
	QuestionText string           `json:"question_text"`
	Category     QuestionCategory `json:"category"`
	Difficulty   Difficulty       `json:"difficulty"`
	SkillTags    []string         `json:"skill_tags"`
	IsFollowup   bool             `json:"is_followup"`
	ParentID     *uuid.UUID       `json:"parent_id,omitempty"`
}

// QuestionDraft is a question before it is attached to a session,
// as produced by the question bank or an external generation strategy.
type QuestionDraft struct {
	QuestionText string           `json:"question_text"`
	Category     QuestionCategory `json:"category"`
	Difficulty   Difficulty       `json:"difficulty"`
	SkillTags    []string         `json:"skill_tags"`
}
