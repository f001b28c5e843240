package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/config"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const reportCacheTTL = 10 * time.Minute

// ReportService recomputes session reports from answers on demand, with
// a Redis cache in front. Reports are derived data, never stored.
type ReportService struct {
	sessions  SessionStore
	questions QuestionStore
	answers   AnswerStore
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewReportService creates a new ReportService. rdb may be nil, which
// disables caching.
func NewReportService(sessions SessionStore, questions QuestionStore, answers AnswerStore, rdb *redis.Client, log zerolog.Logger) *ReportService {
	return &ReportService{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		rdb:       rdb,
		log:       log.With().Str("component", "report_service").Logger(),
	}
}

// BuildReport computes the full report for a session. A missing session
// yields an empty report (Session nil), not an error, so dependent
// aggregations stay null-safe.
func (s *ReportService) BuildReport(ctx context.Context, sessionID uuid.UUID) (*model.Report, error) {
	if cached := s.cacheGet(ctx, sessionID); cached != nil {
		return cached, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyReport(), nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	answers, err := s.answers.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	questions, err := s.questions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questionText := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		questionText[q.ID] = q.QuestionText
	}

	report := &model.Report{
		Session:    session,
		Strengths:  rankFeedback(answers, func(f model.Feedback) []string { return f.Strengths }, 3),
		Weaknesses: rankFeedback(answers, func(f model.Feedback) []string { return f.Weaknesses }, 5),
		Rubric:     AggregateScores(answers),
		Answers:    make([]model.AnswerSummary, 0, len(answers)),
	}
	report.SkillBreakdown, report.SkillTags = SkillBreakdown(answers)

	for _, a := range answers {
		report.Answers = append(report.Answers, model.AnswerSummary{
			QuestionID:   a.QuestionID,
			QuestionText: questionText[a.QuestionID],
			AnswerText:   a.AnswerText,
			Scores:       a.Scores,
			Feedback:     a.Feedback,
			TimeSeconds:  a.TimeSeconds,
		})
	}

	s.cacheSet(ctx, sessionID, report)
	return report, nil
}

// Invalidate drops the cached report for a session. Called after answer
// submission and session completion.
func (s *ReportService) Invalidate(ctx context.Context, sessionID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SessionReportKey(sessionID.String())).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("report cache invalidation failed")
	}
}

// AggregateScores averages each rubric dimension across the answers.
// A session with no answers yields an all-zero breakdown.
func AggregateScores(answers []model.Answer) model.RubricBreakdown {
	if len(answers) == 0 {
		return model.RubricBreakdown{}
	}

	var totals model.RubricBreakdown
	for _, a := range answers {
		totals.Structure += float64(a.Scores.Structure)
		totals.Relevance += float64(a.Scores.Relevance)
		totals.TechnicalAccuracy += float64(a.Scores.TechnicalAccuracy)
		totals.Depth += float64(a.Scores.Depth)
		totals.Communication += float64(a.Scores.Communication)
	}

	n := float64(len(answers))
	return model.RubricBreakdown{
		Structure:         round2(totals.Structure / n),
		Relevance:         round2(totals.Relevance / n),
		TechnicalAccuracy: round2(totals.TechnicalAccuracy / n),
		Depth:             round2(totals.Depth / n),
		Communication:     round2(totals.Communication / n),
	}
}

// SkillBreakdown accumulates each answer's overall average into every
// skill tag it carries and averages per tag. The returned tag slice
// preserves first-seen order for deterministic downstream iteration.
func SkillBreakdown(answers []model.Answer) (map[string]float64, []string) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, a := range answers {
		avg := a.Scores.Average()
		for _, tag := range a.SkillTags {
			if _, seen := sums[tag]; !seen {
				order = append(order, tag)
			}
			sums[tag] += avg
			counts[tag]++
		}
	}

	breakdown := make(map[string]float64, len(sums))
	for _, tag := range order {
		breakdown[tag] = round2(sums[tag] / float64(counts[tag]))
	}
	return breakdown, order
}

// rankFeedback pools feedback strings across answers, counts frequency,
// and returns the top entries. Ties keep first-seen order.
func rankFeedback(answers []model.Answer, pick func(model.Feedback) []string, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, a := range answers {
		for _, s := range pick(a.Feedback) {
			if _, seen := counts[s]; !seen {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		order = []string{}
	}
	return order
}

func emptyReport() *model.Report {
	return &model.Report{
		Strengths:      []string{},
		Weaknesses:     []string{},
		SkillBreakdown: map[string]float64{},
		Answers:        []model.AnswerSummary{},
	}
}

func (s *ReportService) cacheGet(ctx context.Context, sessionID uuid.UUID) *model.Report {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, config.CacheKey.SessionReportKey(sessionID.String())).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("report cache read failed")
		}
		return nil
	}
	var report model.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		s.log.Warn().Err(err).Msg("report cache payload corrupt")
		return nil
	}
	return &report
}

func (s *ReportService) cacheSet(ctx context.Context, sessionID uuid.UUID, report *model.Report) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.SessionReportKey(sessionID.String()), raw, reportCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("report cache write failed")
	}
}

// round2 rounds half away from zero at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
