package scoring

import (
	"strings"
	"testing"

	"github.com/mockmate/mockmate-backend/internal/model"
)

func TestGenerateFeedbackHighScores(t *testing.T) {
	question := &model.Question{
		QuestionText: "Explain database indexing.",
		Category:     model.CategoryTechnical,
	}
	scores := model.DimensionScores{Structure: 5, Relevance: 5, TechnicalAccuracy: 5, Depth: 5, Communication: 5}

	fb := GenerateFeedback("A thorough answer.", scores, question)

	wantStrengths := []string{
		strengthMessages[model.DimStructure],
		strengthMessages[model.DimRelevance],
		strengthMessages[model.DimTechnicalAccuracy],
	}
	if len(fb.Strengths) != 3 {
		t.Fatalf("Strengths len = %d, want 3", len(fb.Strengths))
	}
	for i, want := range wantStrengths {
		if fb.Strengths[i] != want {
			t.Errorf("Strengths[%d] = %q, want %q", i, fb.Strengths[i], want)
		}
	}

	if len(fb.Weaknesses) != 1 || fb.Weaknesses[0] != weaknessGeneric {
		t.Errorf("Weaknesses = %v, want only the generic fallback", fb.Weaknesses)
	}
	if !strings.Contains(fb.ModelAnswer, "tradeoffs") {
		t.Errorf("ModelAnswer = %q, want technical model answer", fb.ModelAnswer)
	}
}

func TestGenerateFeedbackLowScoresBehavioral(t *testing.T) {
	question := &model.Question{
		QuestionText: "Tell me about a time you failed.",
		Category:     model.CategoryBehavioral,
	}
	fb := GenerateFeedback("Too short.", model.DimensionScores{}, question)

	if len(fb.Weaknesses) != 5 {
		t.Fatalf("Weaknesses len = %d, want 5 (capped)", len(fb.Weaknesses))
	}
	if fb.Weaknesses[0] != weaknessMissingSTAR {
		t.Errorf("Weaknesses[0] = %q, want STAR-specific weakness for unstructured behavioral answer", fb.Weaknesses[0])
	}

	if len(fb.Improvements) != 4 {
		t.Fatalf("Improvements len = %d, want 4", len(fb.Improvements))
	}
	if !strings.Contains(fb.Improvements[0], "STAR") {
		t.Errorf("Improvements[0] = %q, want STAR practice suggestion first", fb.Improvements[0])
	}
	if !strings.Contains(fb.ModelAnswer, "STAR") {
		t.Errorf("ModelAnswer = %q, want behavioral model answer", fb.ModelAnswer)
	}
}

func TestGenerateStrengthsBackfill(t *testing.T) {
	// No dimension reaches 4, but three reach 3: the softer generic
	// strengths fill in.
	scores := model.DimensionScores{Structure: 3, Relevance: 3, TechnicalAccuracy: 2, Depth: 2, Communication: 3}
	question := &model.Question{QuestionText: "Any question.", Category: model.CategoryCase}

	fb := GenerateFeedback("Some answer.", scores, question)

	want := []string{
		"Good structure and organization",
		"Relevant to the question asked",
		"Clear communication style",
	}
	if len(fb.Strengths) != len(want) {
		t.Fatalf("Strengths = %v, want %v", fb.Strengths, want)
	}
	for i := range want {
		if fb.Strengths[i] != want[i] {
			t.Errorf("Strengths[%d] = %q, want %q", i, fb.Strengths[i], want[i])
		}
	}
}

func TestGenerateImprovementsBackfill(t *testing.T) {
	// Relevance weaknesses have no keyword-matched improvement, so only
	// the generic suggestions come back.
	fb := GenerateFeedback("An answer.", model.DimensionScores{Structure: 4, Relevance: 2, TechnicalAccuracy: 4, Depth: 4, Communication: 4},
		&model.Question{QuestionText: "Q", Category: model.CategoryCase})

	want := []string{
		"Practice answering questions out loud to improve clarity",
		"Review your answers for completeness and relevance",
	}
	if len(fb.Improvements) != len(want) {
		t.Fatalf("Improvements = %v, want %v", fb.Improvements, want)
	}
	for i := range want {
		if fb.Improvements[i] != want[i] {
			t.Errorf("Improvements[%d] = %q, want %q", i, fb.Improvements[i], want[i])
		}
	}
}
