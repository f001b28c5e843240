package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/rs/zerolog"
)

func newSuggestFixture() (*SuggestService, *fakeRoleStore, *fakeProfileStore) {
	roles := newFakeRoleStore()
	profiles := newFakeProfileStore()
	return NewSuggestService(roles, profiles, zerolog.Nop()), roles, profiles
}

func TestSuggestRolesNoProfile(t *testing.T) {
	svc, roles, _ := newSuggestFixture()
	roles.put(backendRole())

	suggestions, err := svc.SuggestRoles(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("SuggestRoles: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("suggestions = %v, want empty without a profile", suggestions)
	}
}

func TestSuggestRolesScoring(t *testing.T) {
	svc, roles, profiles := newSuggestFixture()
	roles.put(&model.RoleCatalog{
		Name:     "Backend Engineer",
		Category: "backend",
		Keywords: []string{"python", "sql", "api"},
	})
	roles.put(&model.RoleCatalog{
		Name:     "Mobile Developer",
		Category: "mobile",
		Keywords: []string{"swift", "kotlin"},
	})

	userID := uuid.New()
	profile := &model.Profile{
		UserID: userID,
		Data: model.ProfileData{
			Skills:     []string{"Python", "SQL"},
			Experience: []model.Experience{{Title: "Backend Programmer", Years: 3}},
		},
	}
	if err := profiles.Upsert(context.Background(), profile); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	suggestions, err := svc.SuggestRoles(context.Background(), userID)
	if err != nil {
		t.Fatalf("SuggestRoles: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("suggestions len = %d, want 1 (mobile role scores zero)", len(suggestions))
	}

	s := suggestions[0]
	if s.Role.Name != "Backend Engineer" {
		t.Errorf("top role = %q, want Backend Engineer", s.Role.Name)
	}
	// 0.3 title keyword + 0.3 role word + 2*0.1 skills + 2*0.05 keywords.
	if s.Score != 0.9 {
		t.Errorf("score = %v, want 0.9", s.Score)
	}

	wantReasons := []string{
		"Matched 2 skills: python, sql",
		"Relevant experience: 1 position(s)",
		"Experience matches role: Backend Programmer",
	}
	if len(s.Reasons) != len(wantReasons) {
		t.Fatalf("reasons = %v, want %v", s.Reasons, wantReasons)
	}
	for i := range wantReasons {
		if s.Reasons[i] != wantReasons[i] {
			t.Errorf("reasons[%d] = %q, want %q", i, s.Reasons[i], wantReasons[i])
		}
	}
}

func TestSuggestRolesRanking(t *testing.T) {
	svc, roles, profiles := newSuggestFixture()
	roles.put(&model.RoleCatalog{Name: "Frontend Developer", Category: "frontend", Keywords: []string{"react", "javascript"}})
	roles.put(&model.RoleCatalog{Name: "Backend Engineer", Category: "backend", Keywords: []string{"python", "sql", "api"}})

	userID := uuid.New()
	if err := profiles.Upsert(context.Background(), &model.Profile{
		UserID: userID,
		Data: model.ProfileData{
			Skills:     []string{"python", "sql", "api", "react"},
			Experience: []model.Experience{{Title: "Backend Engineer"}},
		},
	}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}

	suggestions, err := svc.SuggestRoles(context.Background(), userID)
	if err != nil {
		t.Fatalf("SuggestRoles: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions len = %d, want 2", len(suggestions))
	}
	if suggestions[0].Role.Name != "Backend Engineer" {
		t.Errorf("top suggestion = %q, want Backend Engineer first", suggestions[0].Role.Name)
	}
	if suggestions[0].Score <= suggestions[1].Score {
		t.Errorf("scores not descending: %v then %v", suggestions[0].Score, suggestions[1].Score)
	}
}

func TestRoleScoreCap(t *testing.T) {
	role := &model.RoleCatalog{
		Name:     "Backend Engineer",
		Keywords: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	keywords := map[string]bool{
		"backend": true, "engineer": true,
		"a": true, "b": true, "c": true, "d": true, "e": true, "f": true, "g": true,
	}
	if got := roleScore(keywords, role); got != 1.0 {
		t.Errorf("roleScore = %v, want capped at 1.0", got)
	}
}
