package model

import (
	"github.com/google/uuid"
)

// RubricBreakdown holds the per-dimension averages across a session.
type RubricBreakdown struct {
	Structure         float64 `json:"structure"`
	Relevance         float64 `json:"relevance"`
	TechnicalAccuracy float64 `json:"technical_accuracy"`
	Depth             float64 `json:"depth"`
	Communication     float64 `json:"communication"`
}

// AnswerSummary is the per-answer slice of a session report.
type AnswerSummary struct {
	QuestionID   uuid.UUID       `json:"question_id"`
	QuestionText string          `json:"question_text"`
	AnswerText   string          `json:"answer_text"`
	Scores       DimensionScores `json:"scores"`
	Feedback     Feedback        `json:"feedback"`
	TimeSeconds  int             `json:"time_seconds"`
}

// Report is the derived, recomputed-on-demand view of a finished or
// in-flight session. SkillTags preserves first-seen order so consumers
// iterating SkillBreakdown stay deterministic.
type Report struct {
	Session        *Session           `json:"session,omitempty"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
	Rubric         RubricBreakdown    `json:"rubric_breakdown"`
	SkillBreakdown map[string]float64 `json:"skill_breakdown"`
	SkillTags      []string           `json:"skill_tags"`
	Answers        []AnswerSummary    `json:"answers"`
}
