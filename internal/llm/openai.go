// Package llm implements the optional model-backed question generation
// strategy. It is a best-effort enhancement: any failure is reported to
// the caller, which falls back to the built-in question bank.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are an expert technical interviewer who creates personalized, relevant interview questions based on candidate profiles, roles, and experience levels."

// Client wraps an OpenAI-compatible chat completion API.
type Client struct {
	api   *openai.Client
	model string
	log   zerolog.Logger
}

// New creates a new Client. baseURL may be empty for the default
// OpenAI endpoint, which also allows local OpenAI-compatible servers.
func New(baseURL, apiKey, modelName string, log zerolog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: modelName,
		log:   log.With().Str("component", "llm").Logger(),
	}
}

// GenerateQuestions asks the model for a personalized question set.
// Returns an error on any API or parse failure; the interview service
// treats that as a signal to use the built-in bank instead.
func (c *Client) GenerateQuestions(ctx context.Context, role *model.RoleCatalog, level model.Level, interviewType model.InterviewType, profile *model.Profile) ([]model.QuestionDraft, error) {
	prompt := buildPrompt(role, level, interviewType, profile)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	drafts, err := parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("questions", len(drafts)).Msg("model generated question set")
	return drafts, nil
}

func buildPrompt(role *model.RoleCatalog, level model.Level, interviewType model.InterviewType, profile *model.Profile) string {
	var distribution string
	var count int
	switch interviewType {
	case model.TypeHR:
		distribution = "Focus 60% on behavioral questions, 40% on role-specific questions"
		count = 8
	case model.TypeTechnical:
		distribution = "Focus 70% on technical depth questions, 30% on practical application"
		count = 10
	case model.TypeCase:
		distribution = "Focus 60% on system design/case studies, 40% on problem-solving"
		count = 8
	default:
		distribution = "Balance: 30% behavioral, 50% technical, 20% case studies"
		count = 12
	}

	var candidate strings.Builder
	if profile != nil {
		skills := profile.Data.Skills
		if len(skills) > 10 {
			skills = skills[:10]
		}
		skillList := "Not specified"
		if len(skills) > 0 {
			skillList = strings.Join(skills, ", ")
		}
		fmt.Fprintf(&candidate, "\nCandidate Profile:\n- Skills: %s\n- Experience: %d position(s)\n- Projects: %d project(s)\n",
			skillList, len(profile.Data.Experience), len(profile.Data.Projects))
	}

	keywords := role.Keywords
	if len(keywords) > 15 {
		keywords = keywords[:15]
	}

	return fmt.Sprintf(`Generate %d personalized interview questions for a %s-level %s position.

Role Details:
- Position: %s (%s)
- Required Skills: %s
%s
Requirements:
1. %s
2. Questions should be tailored to the candidate's background (skills, experience, projects)
3. Difficulty should match %s level
4. Questions should assess both technical knowledge and practical experience
5. Make questions specific and actionable, not generic

Return ONLY a valid JSON array of question objects. Each question object should have:
- "question_text": string (the actual question)
- "category": string (one of: "behavioral", "technical", "case")
- "difficulty": string (one of: "easy", "medium", "hard")
- "skill_tags": array of strings (relevant skills being assessed)

Generate %d questions now:`,
		count, level, role.Name,
		role.Name, role.Category,
		strings.Join(keywords, ", "),
		candidate.String(),
		distribution,
		level,
		count)
}

// parseResponse extracts the question array, tolerating markdown code
// fences around the JSON.
func parseResponse(content string) ([]model.QuestionDraft, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw []model.QuestionDraft
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}

	drafts := make([]model.QuestionDraft, 0, len(raw))
	for _, q := range raw {
		if q.QuestionText == "" {
			continue
		}
		if q.Category == "" {
			q.Category = model.CategoryTechnical
		}
		if q.Difficulty == "" {
			q.Difficulty = model.DifficultyMedium
		}
		drafts = append(drafts, q)
	}
	if len(drafts) == 0 {
		return nil, fmt.Errorf("model response contained no questions")
	}
	return drafts, nil
}
