package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/rs/zerolog"
)

// ReportBuilder is the slice of ReportService the analytics layer needs.
type ReportBuilder interface {
	BuildReport(ctx context.Context, sessionID uuid.UUID) (*model.Report, error)
}

// AnalyticsService aggregates cross-session skill statistics for a user.
type AnalyticsService struct {
	sessions  SessionStore
	questions QuestionStore
	answers   AnswerStore
	reports   ReportBuilder
	log       zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(sessions SessionStore, questions QuestionStore, answers AnswerStore, reports ReportBuilder, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		reports:   reports,
		log:       log.With().Str("component", "analytics_service").Logger(),
	}
}

// SkillStat is the per-tag entry of a user's skill map.
type SkillStat struct {
	SkillTag      string    `json:"skill_tag"`
	Mastery       float64   `json:"mastery"`
	Attempts      int       `json:"attempts"`
	Trend         string    `json:"trend"`
	Improvement   float64   `json:"improvement_pct"`
	LastPracticed time.Time `json:"last_practiced"`
}

// SkillMap is a user's full rolling-mastery picture. Skills preserves
// first-encountered (chronological) order.
type SkillMap struct {
	Skills      []SkillStat `json:"skills"`
	TotalSkills int         `json:"total_skills"`
}

// ScorePoint is one entry of the overall score trend series.
type ScorePoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Overview is the user-level analytics summary.
type Overview struct {
	TotalSessions     int                `json:"total_sessions"`
	CompletedSessions int                `json:"completed_sessions"`
	AverageScore      float64            `json:"average_score"`
	ScoreTrend        []ScorePoint       `json:"score_trend"`
	CategoryTrend     map[string]float64 `json:"category_trend"`
	FollowupScore     float64            `json:"followup_handling_score"`
	PressureScore     float64            `json:"pressure_score"`
}

// Trend classifications.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// skillHistory is one tag's chronological score series.
type skillHistory struct {
	scores        []float64
	lastPracticed time.Time
}

// SkillMapFor builds the user's skill map across all completed sessions.
// A user with no completed sessions gets an empty map, not an error.
func (s *AnalyticsService) SkillMapFor(ctx context.Context, userID uuid.UUID) (*SkillMap, error) {
	histories, order, err := s.collectSkillHistories(ctx, userID)
	if err != nil {
		return nil, err
	}

	skills := make([]SkillStat, 0, len(order))
	for _, tag := range order {
		h := histories[tag]
		improvement := improvementPct(h.scores)
		skills = append(skills, SkillStat{
			SkillTag:      tag,
			Mastery:       rollingMastery(h.scores),
			Attempts:      len(h.scores),
			Trend:         classifyTrend(improvement),
			Improvement:   improvement,
			LastPracticed: h.lastPracticed,
		})
	}

	return &SkillMap{Skills: skills, TotalSkills: len(skills)}, nil
}

// NextSkill picks the skill with the lowest mastery across the user's
// skill map. Ties keep the first-encountered skill. Returns nil when the
// user has no skill data.
func (s *AnalyticsService) NextSkill(ctx context.Context, userID uuid.UUID) (*SkillStat, error) {
	skillMap, err := s.SkillMapFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(skillMap.Skills) == 0 {
		return nil, nil
	}

	lowest := skillMap.Skills[0]
	for _, st := range skillMap.Skills[1:] {
		if st.Mastery < lowest.Mastery {
			lowest = st
		}
	}
	return &lowest, nil
}

// TopImproving returns up to limit skills with positive improvement,
// sorted descending by improvement percentage.
func (s *AnalyticsService) TopImproving(ctx context.Context, userID uuid.UUID, limit int) ([]SkillStat, error) {
	skillMap, err := s.SkillMapFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	improving := make([]SkillStat, 0, len(skillMap.Skills))
	for _, st := range skillMap.Skills {
		if st.Improvement > 0 {
			improving = append(improving, st)
		}
	}
	sort.SliceStable(improving, func(i, j int) bool {
		return improving[i].Improvement > improving[j].Improvement
	})

	if limit <= 0 {
		limit = 5
	}
	if len(improving) > limit {
		improving = improving[:limit]
	}
	return improving, nil
}

// TopWeak returns up to limit skills sorted ascending by mastery.
func (s *AnalyticsService) TopWeak(ctx context.Context, userID uuid.UUID, limit int) ([]SkillStat, error) {
	skillMap, err := s.SkillMapFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	weak := make([]SkillStat, len(skillMap.Skills))
	copy(weak, skillMap.Skills)
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].Mastery < weak[j].Mastery
	})

	if limit <= 0 {
		limit = 5
	}
	if len(weak) > limit {
		weak = weak[:limit]
	}
	return weak, nil
}

// OverviewFor computes session counts, average score, trends, and
// realism stats for a user. Empty history yields zero values.
func (s *AnalyticsService) OverviewFor(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	all, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	overview := &Overview{
		TotalSessions: len(all),
		ScoreTrend:    []ScorePoint{},
		CategoryTrend: map[string]float64{},
	}

	completed, err := s.sessions.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}
	overview.CompletedSessions = len(completed)

	var scoreSum float64
	var scored int
	categoryScores := map[model.InterviewType][]int{}
	for _, sess := range completed {
		if sess.OverallScore == nil {
			continue
		}
		scoreSum += float64(*sess.OverallScore)
		scored++

		date := sess.StartedAt
		if sess.EndedAt != nil {
			date = *sess.EndedAt
		}
		overview.ScoreTrend = append(overview.ScoreTrend, ScorePoint{
			Date:  date.Format("2006-01-02"),
			Score: *sess.OverallScore,
		})
		categoryScores[sess.Type] = append(categoryScores[sess.Type], *sess.OverallScore)
	}
	if scored > 0 {
		overview.AverageScore = round2(scoreSum / float64(scored))
	}

	for _, t := range []model.InterviewType{model.TypeHR, model.TypeTechnical, model.TypeCase, model.TypeMixed} {
		scores := categoryScores[t]
		if len(scores) == 0 {
			overview.CategoryTrend[string(t)] = 0
			continue
		}
		sum := 0
		for _, sc := range scores {
			sum += sc
		}
		overview.CategoryTrend[string(t)] = round2(float64(sum) / float64(len(scores)))
	}

	followup, pressure, err := s.realismStats(ctx, completed)
	if err != nil {
		return nil, err
	}
	overview.FollowupScore = followup
	overview.PressureScore = pressure

	return overview, nil
}

// realismStats averages the overall score of follow-up answers and the
// depth score of hard-question answers across completed sessions.
func (s *AnalyticsService) realismStats(ctx context.Context, completed []model.Session) (float64, float64, error) {
	var followupScores, pressureScores []float64

	for _, sess := range completed {
		questions, err := s.questions.ListBySession(ctx, sess.ID)
		if err != nil {
			return 0, 0, fmt.Errorf("list questions: %w", err)
		}
		answers, err := s.answers.ListBySession(ctx, sess.ID)
		if err != nil {
			return 0, 0, fmt.Errorf("list answers: %w", err)
		}

		byQuestion := make(map[uuid.UUID]model.Answer, len(answers))
		for _, a := range answers {
			byQuestion[a.QuestionID] = a
		}

		for _, q := range questions {
			a, answered := byQuestion[q.ID]
			if !answered {
				continue
			}
			if q.IsFollowup {
				followupScores = append(followupScores, a.Scores.Average())
			}
			if q.Difficulty == model.DifficultyHard {
				pressureScores = append(pressureScores, float64(a.Scores.Depth))
			}
		}
	}

	return mean2(followupScores), mean2(pressureScores), nil
}

// collectSkillHistories walks completed sessions chronologically and
// builds each tag's score series from the session reports.
func (s *AnalyticsService) collectSkillHistories(ctx context.Context, userID uuid.UUID) (map[string]*skillHistory, []string, error) {
	completed, err := s.sessions.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list completed sessions: %w", err)
	}

	histories := make(map[string]*skillHistory)
	var order []string

	for _, sess := range completed {
		report, err := s.reports.BuildReport(ctx, sess.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("build report for session %s: %w", sess.ID, err)
		}

		practiced := sess.StartedAt
		if sess.EndedAt != nil {
			practiced = *sess.EndedAt
		}

		for _, tag := range report.SkillTags {
			h, seen := histories[tag]
			if !seen {
				h = &skillHistory{}
				histories[tag] = h
				order = append(order, tag)
			}
			h.scores = append(h.scores, report.SkillBreakdown[tag])
			if practiced.After(h.lastPracticed) {
				h.lastPracticed = practiced
			}
		}
	}

	return histories, order, nil
}

// rollingMastery applies linear recency weighting over a chronological
// score series: weight_i = (i+1)/N. A single data point is returned
// rounded, unweighted.
func rollingMastery(scores []float64) float64 {
	switch len(scores) {
	case 0:
		return 0
	case 1:
		return round2(scores[0])
	}

	n := float64(len(scores))
	var weightedSum, totalWeight float64
	for i, score := range scores {
		w := float64(i+1) / n
		weightedSum += score * w
		totalWeight += w
	}
	return round2(weightedSum / totalWeight)
}

// improvementPct compares the mean of the first half of a score series
// against the second half. Fewer than two points, or a zero first-half
// mean, yields 0.
func improvementPct(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}

	mid := len(scores) / 2
	first := mean(scores[:mid])
	second := mean(scores[mid:])
	if first == 0 {
		return 0
	}
	return round2((second - first) / first * 100)
}

// classifyTrend buckets an improvement percentage. The ±5% boundary is
// exclusive; exactly ±5% is stable.
func classifyTrend(improvement float64) string {
	switch {
	case improvement > 5:
		return TrendImproving
	case improvement < -5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func mean2(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return round2(mean(vals))
}
