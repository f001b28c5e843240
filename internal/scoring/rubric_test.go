package scoring

import (
	"strings"
	"testing"

	"github.com/mockmate/mockmate-backend/internal/model"
)

func behavioralQuestion() *model.Question {
	return &model.Question{
		QuestionText: "Tell me about a challenging project you worked on.",
		Category:     model.CategoryBehavioral,
		SkillTags:    []string{"communication.star"},
	}
}

func TestScoreAnswerBounds(t *testing.T) {
	answers := []string{
		"",
		"Yes.",
		"I think maybe it depends, not sure really.",
		strings.Repeat("word ", 600),
		"The situation was difficult. First I analyzed the task, then I took action, and finally the result was good because we planned carefully. For example, we shipped on time. However, there were tradeoffs.",
	}
	questions := []*model.Question{
		behavioralQuestion(),
		{
			QuestionText: "Explain REST API design principles.",
			Category:     model.CategoryTechnical,
			SkillTags:    []string{"backend.api.rest"},
		},
	}

	for _, q := range questions {
		for _, a := range answers {
			scores := ScoreAnswer(a, q)
			for _, d := range model.Dimensions {
				got := scores.Get(d)
				if got < 0 || got > 5 {
					t.Errorf("ScoreAnswer(%q..., %s) %s = %d, want 0..5", truncate(a), q.Category, d, got)
				}
			}
		}
	}
}

func TestScoreAnswerEmpty(t *testing.T) {
	scores := ScoreAnswer("", behavioralQuestion())

	want := model.DimensionScores{
		Structure:         0,
		Relevance:         1,
		TechnicalAccuracy: 3, // neutral for non-technical questions
		Depth:             1,
		Communication:     1,
	}
	if scores != want {
		t.Errorf("ScoreAnswer(empty) = %+v, want %+v", scores, want)
	}
}

func TestScoreAnswerStructureSTAR(t *testing.T) {
	answer := "The situation was a failing deployment and my task was clear. " +
		"First I analyzed the logs, then I reproduced the issue locally, and finally I shipped a fix. " +
		"The action I took reduced errors and the result was a stable release." +
		strings.Repeat(" We monitored the service closely afterwards.", 8)

	scores := ScoreAnswer(answer, behavioralQuestion())
	if scores.Structure != 5 {
		t.Errorf("Structure = %d, want 5 for full STAR answer", scores.Structure)
	}
}

func TestScoreTechnicalAccuracy(t *testing.T) {
	question := &model.Question{
		QuestionText: "Explain REST API design.",
		Category:     model.CategoryTechnical,
		SkillTags:    []string{"backend.api.rest"},
	}

	full := "A REST API exposes resources over HTTP. Each endpoint maps a request to a response."
	if got := ScoreAnswer(full, question).TechnicalAccuracy; got != 5 {
		t.Errorf("TechnicalAccuracy = %d, want 5 when all expected terms appear", got)
	}

	hedged := "I think it uses HTTP, but maybe I am wrong about the details."
	if got := ScoreAnswer(hedged, question).TechnicalAccuracy; got != 2 {
		t.Errorf("TechnicalAccuracy = %d, want 2 with one term and repeated hedging", got)
	}
}

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name   string
		scores model.DimensionScores
		want   int
	}{
		{"all fives", model.DimensionScores{Structure: 5, Relevance: 5, TechnicalAccuracy: 5, Depth: 5, Communication: 5}, 100},
		{"all zeros", model.DimensionScores{}, 0},
		{"mixed", model.DimensionScores{Structure: 4, Relevance: 3, TechnicalAccuracy: 5, Depth: 2, Communication: 3}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallScore(tt.scores); got != tt.want {
				t.Errorf("OverallScore(%+v) = %d, want %d", tt.scores, got, tt.want)
			}
		})
	}
}

func TestOverallFromBreakdown(t *testing.T) {
	tests := []struct {
		name      string
		breakdown model.RubricBreakdown
		want      int
	}{
		{"uniform", model.RubricBreakdown{Structure: 3.5, Relevance: 3.5, TechnicalAccuracy: 3.5, Depth: 3.5, Communication: 3.5}, 70},
		{"fractional", model.RubricBreakdown{Structure: 4.2, Relevance: 3.8, TechnicalAccuracy: 4.0, Depth: 3.1, Communication: 4.5}, 78},
		{"empty session", model.RubricBreakdown{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallFromBreakdown(tt.breakdown); got != tt.want {
				t.Errorf("OverallFromBreakdown(%+v) = %d, want %d", tt.breakdown, got, tt.want)
			}
		})
	}
}

func truncate(s string) string {
	if len(s) > 20 {
		return s[:20]
	}
	return s
}
