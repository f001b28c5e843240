package scoring

import (
	"sort"
	"strings"

	"github.com/mockmate/mockmate-backend/internal/model"
)

var strengthMessages = map[model.Dimension]string{
	model.DimStructure:         "Well-structured answer with clear organization",
	model.DimRelevance:         "Answer directly addresses the question",
	model.DimTechnicalAccuracy: "Technically accurate with correct terminology",
	model.DimDepth:             "Detailed answer with good examples",
	model.DimCommunication:     "Clear and concise communication",
}

var weaknessMessages = map[model.Dimension]string{
	model.DimStructure:         "Answer structure could be improved",
	model.DimRelevance:         "Answer could be more directly relevant to the question",
	model.DimTechnicalAccuracy: "Technical accuracy needs improvement - verify technical concepts",
	model.DimDepth:             "Answer is too shallow - add more details and examples",
	model.DimCommunication:     "Communication clarity could be improved",
}

const (
	weaknessMissingSTAR   = "Answers lack structure (no STAR format)"
	weaknessUseSTAR       = "Use STAR method (Situation, Task, Action, Result) for behavioral questions"
	weaknessTechnicalDeep = "Provide more technical depth and explain concepts in detail"
	weaknessGeneric       = "Consider expanding your answer with more examples and details"
)

// GenerateFeedback produces the full feedback payload for an answer.
// Pure template substitution; identical inputs yield identical outputs.
func GenerateFeedback(answerText string, scores model.DimensionScores, question *model.Question) model.Feedback {
	weaknesses := generateWeaknesses(answerText, scores, question)
	return model.Feedback{
		Strengths:    generateStrengths(scores),
		Weaknesses:   weaknesses,
		ModelAnswer:  generateModelAnswer(question.Category),
		Improvements: generateImprovements(weaknesses),
	}
}

// generateStrengths emits the canned strength line for the three
// highest-scoring dimensions that reach 4, backfilling with softer
// generic strengths where fewer than three qualify.
func generateStrengths(scores model.DimensionScores) []string {
	type dimScore struct {
		dim   model.Dimension
		score int
	}
	ranked := make([]dimScore, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		ranked = append(ranked, dimScore{d, scores.Get(d)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var strengths []string
	for _, ds := range ranked[:3] {
		if ds.score >= 4 {
			strengths = append(strengths, strengthMessages[ds.dim])
		}
	}

	if len(strengths) < 3 {
		if scores.Structure >= 3 {
			strengths = append(strengths, "Good structure and organization")
		}
		if scores.Relevance >= 3 {
			strengths = append(strengths, "Relevant to the question asked")
		}
		if scores.Communication >= 3 {
			strengths = append(strengths, "Clear communication style")
		}
	}

	if len(strengths) > 3 {
		strengths = strengths[:3]
	}
	return strengths
}

// generateWeaknesses emits a canned weakness line per dimension scoring
// below 3, in ascending score order, then category-specific add-ons and
// a generic fallback guaranteeing at least two entries. Capped at five.
func generateWeaknesses(answerText string, scores model.DimensionScores, question *model.Question) []string {
	type dimScore struct {
		dim   model.Dimension
		score int
	}
	ranked := make([]dimScore, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		ranked = append(ranked, dimScore{d, scores.Get(d)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	lower := strings.ToLower(answerText)

	var weaknesses []string
	for _, ds := range ranked {
		if ds.score >= 3 {
			continue
		}
		if ds.dim == model.DimStructure &&
			question.Category == model.CategoryBehavioral &&
			!strings.Contains(lower, "situation") {
			weaknesses = append(weaknesses, weaknessMissingSTAR)
			continue
		}
		weaknesses = append(weaknesses, weaknessMessages[ds.dim])
	}

	if question.Category == model.CategoryBehavioral && scores.Structure < 3 {
		weaknesses = append(weaknesses, weaknessUseSTAR)
	}
	if question.Category == model.CategoryTechnical && scores.Depth < 3 {
		weaknesses = append(weaknesses, weaknessTechnicalDeep)
	}

	if len(weaknesses) < 2 {
		weaknesses = append(weaknesses, weaknessGeneric)
	}

	if len(weaknesses) > 5 {
		weaknesses = weaknesses[:5]
	}
	return weaknesses
}

func generateModelAnswer(category model.QuestionCategory) string {
	switch category {
	case model.CategoryBehavioral:
		return "A good answer would follow the STAR method: Situation (context), Task (what needed to be done), Action (what you did), Result (outcome)."
	case model.CategoryTechnical:
		return "A good technical answer would explain the concept clearly, provide examples, and discuss tradeoffs or considerations."
	default:
		return "A good answer would be clear, relevant, detailed, and well-structured."
	}
}

// generateImprovements derives improvement suggestions from the
// weaknesses by keyword match, backfilling with generic suggestions.
func generateImprovements(weaknesses []string) []string {
	var improvements []string
	for _, w := range weaknesses {
		lower := strings.ToLower(w)
		switch {
		case strings.Contains(w, "STAR"):
			improvements = append(improvements, "Practice using STAR method: Structure answers as Situation, Task, Action, Result")
		case strings.Contains(lower, "depth") || strings.Contains(lower, "shallow"):
			improvements = append(improvements, "Add more details, examples, and explanations to your answers")
		case strings.Contains(lower, "structure"):
			improvements = append(improvements, "Organize your answer with clear sections and logical flow")
		case strings.Contains(lower, "technical"):
			improvements = append(improvements, "Review technical concepts and ensure accuracy in your explanations")
		case strings.Contains(lower, "communication"):
			improvements = append(improvements, "Focus on clarity and conciseness in your communication")
		}
	}

	if len(improvements) < 3 {
		improvements = append(improvements,
			"Practice answering questions out loud to improve clarity",
			"Review your answers for completeness and relevance")
	}

	if len(improvements) > 5 {
		improvements = improvements[:5]
	}
	return improvements
}
