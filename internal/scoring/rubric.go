// Package scoring implements the deterministic rubric scorer and
// feedback generator for free-text interview answers. All heuristics are
// lexical; malformed input degrades to a baseline score, never errors.
package scoring

import (
	"math"
	"strings"
	"unicode"

	"github.com/mockmate/mockmate-backend/internal/model"
)

// Overall score weights per dimension. Fixed policy constants.
const (
	weightStructure         = 0.20
	weightRelevance         = 0.20
	weightTechnicalAccuracy = 0.25
	weightDepth             = 0.20
	weightCommunication     = 0.15
)

var starKeywords = []string{
	"situation", "task", "action", "result", "outcome", "challenge", "problem",
}

var flowIndicators = []string{
	"first", "then", "next", "finally", "because", "therefore", "however",
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "should": {}, "could": {}, "may": {},
	"might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "it": {}, "we": {}, "they": {},
	"me": {}, "him": {}, "her": {}, "us": {}, "them": {},
}

// expectedKeywords maps a skill tag to the technical terms a correct
// answer is expected to mention.
var expectedKeywords = map[string][]string{
	"backend.api.rest":    {"rest", "http", "endpoint", "request", "response"},
	"backend.database":    {"database", "sql", "query", "table", "index"},
	"backend.auth":        {"authentication", "authorization", "token", "session", "jwt"},
	"frontend.react":      {"react", "component", "props", "state", "hook"},
	"frontend.javascript": {"javascript", "function", "variable", "closure", "promise"},
}

var hedgingPhrases = []string{"i think", "maybe", "not sure", "i guess"}

var exampleIndicators = []string{
	"for example", "for instance", "such as", "like", "example",
}

var tradeoffIndicators = []string{
	"however", "but", "tradeoff", "consideration", "pros and cons",
	"advantage", "disadvantage",
}

var explanationIndicators = []string{"because", "why", "how", "reason", "due to"}

var transitionWords = []string{
	"first", "second", "then", "next", "finally",
	"additionally", "furthermore", "moreover",
}

var clarityIndicators = []string{
	"clearly", "specifically", "in other words", "to clarify",
}

// ScoreAnswer scores an answer against a question on all five rubric
// dimensions. The dimensions are independent; none can fail.
func ScoreAnswer(answerText string, question *model.Question) model.DimensionScores {
	return model.DimensionScores{
		Structure:         scoreStructure(answerText),
		Relevance:         scoreRelevance(answerText, question.QuestionText),
		TechnicalAccuracy: scoreTechnicalAccuracy(answerText, question),
		Depth:             scoreDepth(answerText),
		Communication:     scoreCommunication(answerText),
	}
}

// OverallScore combines dimension scores into a 0-100 score using the
// fixed policy weights. Rounds half away from zero.
func OverallScore(s model.DimensionScores) int {
	overall := (float64(s.Structure)*weightStructure +
		float64(s.Relevance)*weightRelevance +
		float64(s.TechnicalAccuracy)*weightTechnicalAccuracy +
		float64(s.Depth)*weightDepth +
		float64(s.Communication)*weightCommunication) * 20
	return int(math.Round(overall))
}

// OverallFromBreakdown computes the session-level 0-100 score from
// per-dimension averages, using the same weights as OverallScore.
func OverallFromBreakdown(b model.RubricBreakdown) int {
	overall := (b.Structure*weightStructure +
		b.Relevance*weightRelevance +
		b.TechnicalAccuracy*weightTechnicalAccuracy +
		b.Depth*weightDepth +
		b.Communication*weightCommunication) * 20
	return int(math.Round(overall))
}

// scoreStructure rewards STAR keywords, logical-flow connectives, and
// appropriate length.
func scoreStructure(answerText string) int {
	score := 0.0
	lower := strings.ToLower(answerText)
	wordCount := len(strings.Fields(answerText))

	starFound := countContained(lower, starKeywords)
	switch {
	case starFound >= 3:
		score += 3
	case starFound >= 2:
		score += 2
	case starFound >= 1:
		score += 1
	}

	flowCount := countContained(lower, flowIndicators)
	switch {
	case flowCount >= 3:
		score += 1
	case flowCount >= 1:
		score += 0.5
	}

	if wordCount >= 50 && wordCount <= 300 {
		score += 1
	} else if wordCount < 30 {
		score -= 1
	}

	return clamp05(int(score))
}

// scoreRelevance measures keyword overlap between question and answer
// after stop-word removal, penalizing very short answers.
func scoreRelevance(answerText, questionText string) int {
	score := 3

	questionWords := wordSet(strings.ToLower(questionText))
	answerWords := wordSet(strings.ToLower(answerText))

	common := 0
	for w := range questionWords {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, ok := answerWords[w]; ok {
			common++
		}
	}

	if common >= 3 {
		score += 2
	} else if common >= 1 {
		score += 1
	}

	wordCount := len(strings.Fields(answerText))
	if wordCount < 20 {
		score -= 2
	} else if wordCount < 30 {
		score -= 1
	}

	return clamp05(score)
}

// scoreTechnicalAccuracy checks for expected technical terms from the
// question's skill tags. Non-technical questions score a neutral 3.
func scoreTechnicalAccuracy(answerText string, question *model.Question) int {
	if question.Category != model.CategoryTechnical {
		return 3
	}

	score := 2
	lower := strings.ToLower(answerText)

	found := 0
	for _, tag := range question.SkillTags {
		for _, kw := range expectedKeywords[tag] {
			if strings.Contains(lower, kw) {
				found++
			}
		}
	}

	switch {
	case found >= 5:
		score = 5
	case found >= 3:
		score = 4
	case found >= 1:
		score = 3
	}

	if countContained(lower, hedgingPhrases) >= 2 {
		score--
	}

	return clamp05(score)
}

// scoreDepth rewards length, examples, tradeoffs, and explanations.
func scoreDepth(answerText string) int {
	score := 2.0
	lower := strings.ToLower(answerText)
	wordCount := len(strings.Fields(answerText))

	switch {
	case wordCount >= 200:
		score += 2
	case wordCount >= 100:
		score += 1
	case wordCount < 50:
		score -= 1
	}

	if anyContained(lower, exampleIndicators) {
		score += 1
	}
	if anyContained(lower, tradeoffIndicators) {
		score += 1
	}
	if anyContained(lower, explanationIndicators) {
		score += 0.5
	}

	return clamp05(int(score))
}

// scoreCommunication rewards sentence structure, appropriate length,
// transitions, and clarity markers.
func scoreCommunication(answerText string) int {
	score := 3.0
	lower := strings.ToLower(answerText)
	wordCount := len(strings.Fields(answerText))

	sentences := strings.Count(answerText, ".") +
		strings.Count(answerText, "!") +
		strings.Count(answerText, "?")
	if sentences >= 3 {
		score += 1
	} else if sentences < 1 {
		score -= 1
	}

	switch {
	case wordCount >= 50 && wordCount <= 300:
		score += 1
	case wordCount < 30:
		score -= 1
	case wordCount > 500:
		score -= 0.5
	}

	if countContained(lower, transitionWords) >= 2 {
		score += 1
	}
	if anyContained(lower, clarityIndicators) {
		score += 0.5
	}

	return clamp05(int(score))
}

func clamp05(n int) int {
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

func countContained(haystack string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			n++
		}
	}
	return n
}

func anyContained(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// wordSet extracts the set of alphanumeric word tokens from text.
func wordSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
