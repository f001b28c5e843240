package service

import (
	"fmt"

	"github.com/mockmate/mockmate-backend/internal/model"
)

// SelectQuestions assembles a session's question set from the built-in
// bank. Deterministic for a given role, level, and type. Returns at
// most 15 drafts, already distributed by interview type.
func SelectQuestions(role *model.RoleCatalog, level model.Level, interviewType model.InterviewType) []model.QuestionDraft {
	var pool []model.QuestionDraft

	if interviewType == model.TypeHR || interviewType == model.TypeMixed {
		pool = append(pool, hrQuestions()...)
	}
	if interviewType == model.TypeTechnical || interviewType == model.TypeMixed {
		pool = append(pool, technicalQuestions(role.Category, level)...)
	}
	if interviewType == model.TypeCase || interviewType == model.TypeMixed {
		pool = append(pool, caseQuestions()...)
	}

	selected := distributeQuestions(pool, interviewType)
	selected = assignFallbackTags(selected, role)
	if len(selected) > 15 {
		selected = selected[:15]
	}
	return selected
}

func hrQuestions() []model.QuestionDraft {
	return []model.QuestionDraft{
		{
			QuestionText: "Tell me about yourself.",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyEasy,
			SkillTags:    []string{"communication.star"},
		},
		{
			QuestionText: "Describe a time when you had to work under pressure.",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyMedium,
			SkillTags:    []string{"communication.star", "behavioral.pressure"},
		},
		{
			QuestionText: "Tell me about a challenging project you worked on.",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyMedium,
			SkillTags:    []string{"communication.star", "behavioral.challenge"},
		},
		{
			QuestionText: "How do you handle conflicts in a team?",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyMedium,
			SkillTags:    []string{"communication.star", "behavioral.conflict"},
		},
		{
			QuestionText: "What are your strengths and weaknesses?",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyEasy,
			SkillTags:    []string{"communication.star"},
		},
	}
}

func caseQuestions() []model.QuestionDraft {
	return []model.QuestionDraft{
		{
			QuestionText: "Design a URL shortening service like bit.ly.",
			Category:     model.CategoryCase,
			Difficulty:   model.DifficultyHard,
			SkillTags:    []string{"system_design.scaling", "system_design.architecture"},
		},
		{
			QuestionText: "How would you design a notification system for a social media app?",
			Category:     model.CategoryCase,
			Difficulty:   model.DifficultyHard,
			SkillTags:    []string{"system_design.scaling", "system_design.real_time"},
		},
	}
}

func technicalQuestions(category string, level model.Level) []model.QuestionDraft {
	var qs []model.QuestionDraft

	switch category {
	case "backend":
		restDifficulty := model.DifficultyMedium
		if level == model.LevelJunior {
			restDifficulty = model.DifficultyEasy
		}
		qs = []model.QuestionDraft{
			{
				QuestionText: "Explain how REST APIs work.",
				Category:     model.CategoryTechnical,
				Difficulty:   restDifficulty,
				SkillTags:    []string{"backend.api.rest"},
			},
			{
				QuestionText: "What is the difference between SQL and NoSQL databases?",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"backend.database"},
			},
			{
				QuestionText: "Explain authentication and authorization.",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"backend.auth"},
			},
			{
				QuestionText: "How do you handle database migrations?",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"backend.database.migrations"},
			},
			{
				QuestionText: "Explain microservices architecture.",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyHard,
				SkillTags:    []string{"backend.architecture.microservices"},
			},
		}
	case "frontend":
		qs = []model.QuestionDraft{
			{
				QuestionText: "Explain the difference between let, const, and var in JavaScript.",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyEasy,
				SkillTags:    []string{"frontend.javascript"},
			},
			{
				QuestionText: "What is React and how does it work?",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"frontend.react"},
			},
			{
				QuestionText: "Explain the virtual DOM concept.",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"frontend.react.virtual_dom"},
			},
			{
				QuestionText: "How do you optimize frontend performance?",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyHard,
				SkillTags:    []string{"frontend.performance"},
			},
		}
	case "fullstack":
		qs = []model.QuestionDraft{
			{
				QuestionText: "Explain the full-stack development workflow.",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyMedium,
				SkillTags:    []string{"fullstack.workflow"},
			},
			{
				QuestionText: "How do you handle state management in a full-stack application?",
				Category:     model.CategoryTechnical,
				Difficulty:   model.DifficultyHard,
				SkillTags:    []string{"fullstack.state_management"},
			},
		}
	}

	// Juniors never get hard questions; seniors never get easy ones.
	for i := range qs {
		if level == model.LevelJunior && qs[i].Difficulty == model.DifficultyHard {
			qs[i].Difficulty = model.DifficultyMedium
		} else if level == model.LevelSenior && qs[i].Difficulty == model.DifficultyEasy {
			qs[i].Difficulty = model.DifficultyMedium
		}
	}
	return qs
}

// distributeQuestions applies the per-type category mix and caps the
// result at 10.
func distributeQuestions(pool []model.QuestionDraft, interviewType model.InterviewType) []model.QuestionDraft {
	byCategory := func(c model.QuestionCategory) []model.QuestionDraft {
		var out []model.QuestionDraft
		for _, q := range pool {
			if q.Category == c {
				out = append(out, q)
			}
		}
		return out
	}

	var selected []model.QuestionDraft

	switch interviewType {
	case model.TypeHR:
		behavioral := byCategory(model.CategoryBehavioral)
		technical := byCategory(model.CategoryTechnical)
		selected = append(selected, head(behavioral, 4)...)
		selected = append(selected, head(technical, 3)...)
		if len(selected) < 10 && len(behavioral) > 4 {
			selected = append(selected, behavioral[4:]...)
		}

	case model.TypeTechnical:
		var easyMedium, hard []model.QuestionDraft
		for _, q := range byCategory(model.CategoryTechnical) {
			if q.Difficulty == model.DifficultyHard {
				hard = append(hard, q)
			} else {
				easyMedium = append(easyMedium, q)
			}
		}
		selected = append(selected, head(easyMedium, 5)...)
		selected = append(selected, head(hard, 3)...)
		if len(selected) < 10 && len(easyMedium) > 5 {
			selected = append(selected, easyMedium[5:]...)
		}

	case model.TypeCase:
		selected = append(selected, head(byCategory(model.CategoryCase), 6)...)
		selected = append(selected, head(byCategory(model.CategoryTechnical), 4)...)

	default: // mixed
		selected = append(selected, head(byCategory(model.CategoryBehavioral), 3)...)
		selected = append(selected, head(byCategory(model.CategoryTechnical), 4)...)
		selected = append(selected, head(byCategory(model.CategoryCase), 3)...)
	}

	if len(selected) > 10 {
		selected = selected[:10]
	}
	return selected
}

// assignFallbackTags gives untagged questions a generic tag derived
// from the role's category.
func assignFallbackTags(questions []model.QuestionDraft, role *model.RoleCatalog) []model.QuestionDraft {
	for i := range questions {
		if len(questions[i].SkillTags) == 0 {
			questions[i].SkillTags = []string{fmt.Sprintf("%s.general", role.Category)}
		}
	}
	return questions
}

func head(qs []model.QuestionDraft, n int) []model.QuestionDraft {
	if len(qs) > n {
		return qs[:n]
	}
	return qs
}
