package model

import (
	"time"

	"github.com/google/uuid"
)

// TemplateDifficulty tiers the intensity of a plan template.
type TemplateDifficulty string

const (
	TemplateBeginner     TemplateDifficulty = "beginner"
	TemplateIntermediate TemplateDifficulty = "intermediate"
	TemplateAdvanced     TemplateDifficulty = "advanced"
)

// PlanStep is one day's worth of content inside a plan template.
type PlanStep struct {
	Day       int      `json:"day"`
	Topic     string   `json:"topic"`
	Drills    []string `json:"drills"`
	MiniMock  string   `json:"mini_mock"`
	QuickTest string   `json:"quick_test"`
}

// PlanTemplate is a reusable multi-day curriculum for one skill tag.
// SkillTag is unique; templates are shared across sessions and users.
type PlanTemplate struct {
	ID              uuid.UUID          `json:"id"`
	SkillTag        string             `json:"skill_tag"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Steps           []PlanStep         `json:"steps"`
	Difficulty      TemplateDifficulty `json:"difficulty"`
	DurationMinutes int                `json:"duration_minutes"`
	CreatedAt       time.Time          `json:"created_at"`
}

// DailyPlan is one composed day of an upgrade plan. Topic, mini-mock,
// and quick-test come from the day's first constituent step; drills are
// the union of all constituent steps' drills.
type DailyPlan struct {
	Day       int      `json:"day"`
	Topic     string   `json:"topic"`
	Drills    []string `json:"drills"`
	MiniMock  string   `json:"mini_mock"`
	QuickTest string   `json:"quick_test"`
}

// NextInterview is the recommendation for the user's next session.
type NextInterview struct {
	Type        InterviewType `json:"type"`
	Difficulty  Level         `json:"difficulty"`
	FocusTopics []string      `json:"focus_topics"`
	TimerSec    int           `json:"timer"`
}

// PlanContent is the generated payload of an upgrade plan.
type PlanContent struct {
	Strengths          []string      `json:"strengths"`
	Weaknesses         []string      `json:"weaknesses"`
	LearningObjectives []string      `json:"learning_objectives"`
	DailyPlans         []DailyPlan   `json:"daily_plans"`
	NextInterview      NextInterview `json:"next_interview"`
}

// UpgradePlan is a generated remediation curriculum for one completed
// session and a chosen duration. Unique per (session, duration_days);
// regeneration upserts rather than duplicates.
type UpgradePlan struct {
	ID           uuid.UUID   `json:"id"`
	SessionID    uuid.UUID   `json:"session_id"`
	DurationDays int         `json:"duration_days"`
	Content      PlanContent `json:"content"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
