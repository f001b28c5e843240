package model

import (
	"time"

	"github.com/google/uuid"
)

// Dimension names the five fixed rubric axes.
type Dimension string

const (
	DimStructure         Dimension = "structure"
	DimRelevance         Dimension = "relevance"
	DimTechnicalAccuracy Dimension = "technical_accuracy"
	DimDepth             Dimension = "depth"
	DimCommunication     Dimension = "communication"
)

// Dimensions lists the rubric axes in canonical order.
var Dimensions = []Dimension{
	DimStructure,
	DimRelevance,
	DimTechnicalAccuracy,
	DimDepth,
	DimCommunication,
}

// DimensionScores holds one integer score (0-5) per rubric dimension.
// Named fields instead of a string-keyed map so a missing or renamed
// dimension is a compile error, not a silent zero.
type DimensionScores struct {
	Structure         int `json:"structure"`
	Relevance         int `json:"relevance"`
	TechnicalAccuracy int `json:"technical_accuracy"`
	Depth             int `json:"depth"`
	Communication     int `json:"communication"`
}

// Get returns the score for a dimension by name.
func (s DimensionScores) Get(d Dimension) int {
	switch d {
	case DimStructure:
		return s.Structure
	case DimRelevance:
		return s.Relevance
	case DimTechnicalAccuracy:
		return s.TechnicalAccuracy
	case DimDepth:
		return s.Depth
	case DimCommunication:
		return s.Communication
	}
	return 0
}

// Average returns the mean of the five dimension scores.
func (s DimensionScores) Average() float64 {
	return float64(s.Structure+s.Relevance+s.TechnicalAccuracy+s.Depth+s.Communication) / 5.0
}

// Feedback is the generated feedback payload attached to an answer.
type Feedback struct {
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	ModelAnswer  string   `json:"model_answer"`
	Improvements []string `json:"improvements"`
}

// Answer is a user's submitted answer to one interview question.
// One-to-one with Question; created once, never mutated.
type Answer struct {
	ID          uuid.UUID       `json:"id"`
	QuestionID  uuid.UUID       `json:"question_id"`
	AnswerText  string          `json:"answer_text"`
	TimeSeconds int             `json:"time_seconds"`
	Scores      DimensionScores `json:"scores"`
	Feedback    Feedback        `json:"feedback"`
	SkillTags   []string        `json:"skill_tags"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// SubmitAnswerRequest is the payload for submitting an answer.
type SubmitAnswerRequest struct {
	QuestionID  string `json:"question_id" binding:"required,uuid"`
	AnswerText  string `json:"answer_text" binding:"required,min=1"`
	TimeSeconds int    `json:"time_seconds" binding:"min=0"`
}
