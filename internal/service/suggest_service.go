package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
	"github.com/rs/zerolog"
)

// SuggestService matches a user's profile against the role catalog and
// ranks the best-fitting roles.
type SuggestService struct {
	roles    RoleStore
	profiles ProfileStore
	log      zerolog.Logger
}

// NewSuggestService creates a new SuggestService.
func NewSuggestService(roles RoleStore, profiles ProfileStore, log zerolog.Logger) *SuggestService {
	return &SuggestService{
		roles:    roles,
		profiles: profiles,
		log:      log.With().Str("component", "suggest_service").Logger(),
	}
}

// SuggestRoles scores every catalog role against the user's profile and
// returns the top 10 with score > 0, highest first. A user without a
// profile gets an empty list, not an error.
func (s *SuggestService) SuggestRoles(ctx context.Context, userID uuid.UUID) ([]model.RoleSuggestion, error) {
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []model.RoleSuggestion{}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	keywords := extractProfileKeywords(profile.Data)

	suggestions := make([]model.RoleSuggestion, 0, len(roles))
	for _, role := range roles {
		score := roleScore(keywords, &role)
		if score <= 0 {
			continue
		}
		suggestions = append(suggestions, model.RoleSuggestion{
			Role:    role,
			Score:   score,
			Reasons: suggestionReasons(profile.Data, &role),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > 10 {
		suggestions = suggestions[:10]
	}
	return suggestions, nil
}

// extractProfileKeywords flattens a profile into a normalized keyword
// set: skills, experience title words, and project name and description
// words.
func extractProfileKeywords(data model.ProfileData) map[string]bool {
	keywords := make(map[string]bool)

	for _, skill := range data.Skills {
		if normalized := strings.ToLower(strings.TrimSpace(skill)); normalized != "" {
			keywords[normalized] = true
		}
	}
	for _, exp := range data.Experience {
		for _, word := range strings.Fields(strings.ToLower(exp.Title)) {
			keywords[word] = true
		}
	}
	for _, proj := range data.Projects {
		for _, word := range strings.Fields(strings.ToLower(proj.Name)) {
			keywords[word] = true
		}
		for _, word := range strings.Fields(strings.ToLower(proj.Description)) {
			keywords[word] = true
		}
	}
	return keywords
}

// roleScore computes a 0.0-1.0 fit: up to 0.3 per title signal,
// 0.1 per matched skill capped at 0.5, and 0.05 per matched role
// keyword capped at 0.2. Rounded to two decimals.
func roleScore(profileKeywords map[string]bool, role *model.RoleCatalog) float64 {
	score := 0.0
	roleKeywords := normalizeKeywords(role.Keywords)
	roleName := strings.ToLower(role.Name)

	for kw := range profileKeywords {
		if strings.Contains(kw, roleName) || strings.Contains(roleName, kw) {
			score += 0.3
			break
		}
	}
	for _, word := range strings.Fields(roleName) {
		if profileKeywords[word] {
			score += 0.3
			break
		}
	}

	matchedSkills := 0
	for kw := range profileKeywords {
		for _, rk := range roleKeywords {
			if kw == rk {
				matchedSkills++
				break
			}
		}
	}
	score += math.Min(float64(matchedSkills)*0.1, 0.5)

	matchedKeywords := 0
	for _, rk := range roleKeywords {
		if profileKeywords[rk] {
			matchedKeywords++
		}
	}
	score += math.Min(float64(matchedKeywords)*0.05, 0.2)

	if score > 1.0 {
		score = 1.0
	}
	return math.Round(score*100) / 100
}

// suggestionReasons builds up to 3 human-readable reasons for a match.
func suggestionReasons(data model.ProfileData, role *model.RoleCatalog) []string {
	var reasons []string
	roleKeywords := normalizeKeywords(role.Keywords)

	var matchedSkills []string
	for _, skill := range data.Skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		for _, rk := range roleKeywords {
			if normalized == rk {
				matchedSkills = append(matchedSkills, normalized)
				break
			}
		}
	}
	if len(matchedSkills) > 0 {
		shown := matchedSkills
		if len(shown) > 5 {
			shown = shown[:5]
		}
		reasons = append(reasons, fmt.Sprintf("Matched %d skills: %s", len(matchedSkills), strings.Join(shown, ", ")))
	}

	if len(data.Experience) > 0 {
		reasons = append(reasons, fmt.Sprintf("Relevant experience: %d position(s)", len(data.Experience)))
	}

	roleName := strings.ToLower(role.Name)
	roleWords := strings.Fields(roleName)
	for _, exp := range data.Experience {
		title := strings.ToLower(exp.Title)
		matched := strings.Contains(title, roleName)
		if !matched {
			for _, word := range roleWords {
				if strings.Contains(title, word) {
					matched = true
					break
				}
			}
		}
		if matched {
			reasons = append(reasons, "Experience matches role: "+exp.Title)
			break
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Partial match based on profile keywords")
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}
