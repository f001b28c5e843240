package service

import (
	"testing"

	"github.com/mockmate/mockmate-backend/internal/model"
)

func backendRole() *model.RoleCatalog {
	return &model.RoleCatalog{
		Name:     "Backend Engineer",
		Category: "backend",
		Keywords: []string{"python", "sql", "api"},
	}
}

func TestSelectQuestionsHR(t *testing.T) {
	qs := SelectQuestions(backendRole(), model.LevelMid, model.TypeHR)
	if len(qs) != 5 {
		t.Fatalf("len = %d, want 5", len(qs))
	}
	for _, q := range qs {
		if q.Category != model.CategoryBehavioral {
			t.Errorf("category = %s, want behavioral for hr interviews", q.Category)
		}
		if len(q.SkillTags) == 0 {
			t.Errorf("question %q has no skill tags", q.QuestionText)
		}
	}
}

func TestSelectQuestionsTechnicalBackend(t *testing.T) {
	qs := SelectQuestions(backendRole(), model.LevelMid, model.TypeTechnical)
	if len(qs) != 5 {
		t.Fatalf("len = %d, want 5", len(qs))
	}
	// Easy/medium questions lead; the single hard question trails.
	if qs[len(qs)-1].Difficulty != model.DifficultyHard {
		t.Errorf("last difficulty = %s, want hard", qs[len(qs)-1].Difficulty)
	}
	for _, q := range qs {
		if q.Category != model.CategoryTechnical {
			t.Errorf("category = %s, want technical", q.Category)
		}
	}
}

func TestSelectQuestionsLevelAdjustment(t *testing.T) {
	for _, q := range SelectQuestions(backendRole(), model.LevelJunior, model.TypeTechnical) {
		if q.Difficulty == model.DifficultyHard {
			t.Errorf("junior question %q is hard", q.QuestionText)
		}
	}
	for _, q := range SelectQuestions(backendRole(), model.LevelSenior, model.TypeTechnical) {
		if q.Difficulty == model.DifficultyEasy {
			t.Errorf("senior question %q is easy", q.QuestionText)
		}
	}
}

func TestSelectQuestionsMixed(t *testing.T) {
	qs := SelectQuestions(backendRole(), model.LevelMid, model.TypeMixed)
	if len(qs) != 10 {
		t.Fatalf("len = %d, want 10", len(qs))
	}
	counts := map[model.QuestionCategory]int{}
	for _, q := range qs {
		counts[q.Category]++
	}
	if counts[model.CategoryBehavioral] != 3 || counts[model.CategoryTechnical] != 4 || counts[model.CategoryCase] != 3 {
		t.Errorf("category mix = %v, want 3 behavioral / 4 technical / 3 case", counts)
	}
}

func TestSelectQuestionsCase(t *testing.T) {
	qs := SelectQuestions(backendRole(), model.LevelMid, model.TypeCase)
	if len(qs) != 2 {
		t.Fatalf("len = %d, want 2", len(qs))
	}
	for _, q := range qs {
		if q.Category != model.CategoryCase {
			t.Errorf("category = %s, want case", q.Category)
		}
	}
}

func TestSelectQuestionsDeterministic(t *testing.T) {
	first := SelectQuestions(backendRole(), model.LevelMid, model.TypeMixed)
	second := SelectQuestions(backendRole(), model.LevelMid, model.TypeMixed)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].QuestionText != second[i].QuestionText {
			t.Errorf("question %d differs between runs", i)
		}
	}
}

func TestAssignFallbackTags(t *testing.T) {
	role := &model.RoleCatalog{Name: "DevOps Engineer", Category: "devops"}
	qs := assignFallbackTags([]model.QuestionDraft{
		{QuestionText: "untagged"},
		{QuestionText: "tagged", SkillTags: []string{"devops.ci"}},
	}, role)

	if len(qs[0].SkillTags) != 1 || qs[0].SkillTags[0] != "devops.general" {
		t.Errorf("fallback tags = %v, want [devops.general]", qs[0].SkillTags)
	}
	if qs[1].SkillTags[0] != "devops.ci" {
		t.Errorf("existing tags overwritten: %v", qs[1].SkillTags)
	}
}
