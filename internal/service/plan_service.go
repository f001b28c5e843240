package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
	"github.com/rs/zerolog"
)

const weakSkillThreshold = 3.0

// PlanService generates upgrade plans from completed sessions. A plan
// combines the session's report, the user's interview history, profile,
// and role requirements into a day-by-day curriculum.
type PlanService struct {
	sessions  SessionStore
	answers   AnswerStore
	roles     RoleStore
	profiles  ProfileStore
	templates TemplateStore
	plans     PlanStore
	reports   ReportBuilder
	log       zerolog.Logger
}

// NewPlanService creates a new PlanService.
func NewPlanService(sessions SessionStore, answers AnswerStore, roles RoleStore, profiles ProfileStore, templates TemplateStore, plans PlanStore, reports ReportBuilder, log zerolog.Logger) *PlanService {
	return &PlanService{
		sessions:  sessions,
		answers:   answers,
		roles:     roles,
		profiles:  profiles,
		templates: templates,
		plans:     plans,
		reports:   reports,
		log:       log.With().Str("component", "plan_service").Logger(),
	}
}

// GenerateUpgradePlan builds (or rebuilds) the upgrade plan for a
// completed session. Regeneration for the same (session, duration)
// replaces the stored plan instead of duplicating it.
func (s *PlanService) GenerateUpgradePlan(ctx context.Context, userID, sessionID uuid.UUID, durationDays int) (*model.UpgradePlan, error) {
	if durationDays != 7 && durationDays != 14 {
		return nil, ErrInvalidDuration
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	if session.Status != model.SessionStatusCompleted {
		return nil, ErrSessionNotCompleted
	}

	role, err := s.roles.GetByID(ctx, session.RoleID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get role: %w", err)
	}

	report, err := s.reports.BuildReport(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	gaps, err := s.identifySkillGaps(ctx, session, role, report)
	if err != nil {
		return nil, err
	}
	weakSkills := identifyWeakSkills(report)

	// Gaps take precedence over current-session weak skills; dedup
	// preserves first-seen order.
	skills := dedupeStrings(append(append([]string{}, gaps...), weakSkills...))

	profileSkills := s.profileSkills(ctx, session.UserID)
	templates, err := s.selectTemplates(ctx, skills, role, profileSkills, session.Level)
	if err != nil {
		return nil, err
	}

	content := model.PlanContent{
		Strengths:          report.Strengths,
		Weaknesses:         report.Weaknesses,
		LearningObjectives: learningObjectives(report.Weaknesses, report.SkillBreakdown, report.SkillTags),
		DailyPlans:         composeDailyPlan(templates, durationDays),
		NextInterview:      recommendNextInterview(session, report.Weaknesses),
	}

	plan := &model.UpgradePlan{
		ID:           uuid.New(),
		SessionID:    sessionID,
		DurationDays: durationDays,
		Content:      content,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.plans.Upsert(ctx, plan); err != nil {
		return nil, fmt.Errorf("upsert plan: %w", err)
	}

	s.log.Info().
		Str("session_id", sessionID.String()).
		Int("duration_days", durationDays).
		Int("templates", len(templates)).
		Msg("upgrade plan generated")
	return plan, nil
}

// GetPlan fetches a previously generated plan.
func (s *PlanService) GetPlan(ctx context.Context, userID, sessionID uuid.UUID, durationDays int) (*model.UpgradePlan, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}

	plan, err := s.plans.GetBySessionAndDuration(ctx, sessionID, durationDays)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

type skillGap struct {
	tag      string
	score    float64
	priority int // 1 current_weak, 2 history_weak, 3 missing
}

// identifySkillGaps merges three gap sources in priority order: skills
// weak in the current session, role-related skills consistently weak
// across history, and role keywords absent from both the profile and
// the gathered gaps. Returns at most 5 tags.
func (s *PlanService) identifySkillGaps(ctx context.Context, session *model.Session, role *model.RoleCatalog, report *model.Report) ([]string, error) {
	var roleKeywords []string
	if role != nil {
		roleKeywords = normalizeKeywords(role.Keywords)
	}

	profileSkills := s.profileSkills(ctx, session.UserID)

	historySkills, err := s.historySkillAverages(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	var gaps []skillGap
	seen := make(map[string]bool)

	for _, tag := range report.SkillTags {
		if score := report.SkillBreakdown[tag]; score < weakSkillThreshold {
			gaps = append(gaps, skillGap{tag: tag, score: score, priority: 1})
			seen[tag] = true
		}
	}

	for _, h := range historySkills {
		if h.score >= weakSkillThreshold || seen[h.tag] {
			continue
		}
		if tagMatchesKeywords(h.tag, roleKeywords) {
			gaps = append(gaps, skillGap{tag: h.tag, score: h.score, priority: 2})
			seen[h.tag] = true
		}
	}

	for _, keyword := range roleKeywords {
		if keywordCovered(keyword, gaps) || profileSkills[keyword] {
			continue
		}
		tmpl, err := s.templates.FindByTagContains(ctx, keyword)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("find template by keyword: %w", err)
		}
		if !seen[tmpl.SkillTag] {
			gaps = append(gaps, skillGap{tag: tmpl.SkillTag, score: 0, priority: 3})
			seen[tmpl.SkillTag] = true
		}
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].priority != gaps[j].priority {
			return gaps[i].priority < gaps[j].priority
		}
		return gaps[i].score < gaps[j].score
	})

	if len(gaps) > 5 {
		gaps = gaps[:5]
	}
	tags := make([]string, len(gaps))
	for i, g := range gaps {
		tags[i] = g.tag
	}
	return tags, nil
}

// identifyWeakSkills returns the session's skill tags scoring below the
// weak threshold, lowest first, at most 5.
func identifyWeakSkills(report *model.Report) []string {
	type weak struct {
		tag   string
		score float64
	}
	var weaks []weak
	for _, tag := range report.SkillTags {
		if score := report.SkillBreakdown[tag]; score < weakSkillThreshold {
			weaks = append(weaks, weak{tag, score})
		}
	}
	sort.SliceStable(weaks, func(i, j int) bool { return weaks[i].score < weaks[j].score })
	if len(weaks) > 5 {
		weaks = weaks[:5]
	}
	tags := make([]string, len(weaks))
	for i, w := range weaks {
		tags[i] = w.tag
	}
	return tags
}

type taggedScore struct {
	tag   string
	score float64
}

// historySkillAverages averages answer scores per skill tag across all
// of the user's completed sessions. Tags keep first-seen order.
func (s *PlanService) historySkillAverages(ctx context.Context, userID uuid.UUID) ([]taggedScore, error) {
	sessions, err := s.sessions.ListCompletedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed sessions: %w", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string

	for _, sess := range sessions {
		answers, err := s.answers.ListBySession(ctx, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("list answers: %w", err)
		}
		for _, a := range answers {
			avg := a.Scores.Average()
			for _, tag := range a.SkillTags {
				if counts[tag] == 0 {
					order = append(order, tag)
				}
				sums[tag] += avg
				counts[tag]++
			}
		}
	}

	out := make([]taggedScore, 0, len(order))
	for _, tag := range order {
		out = append(out, taggedScore{tag: tag, score: sums[tag] / float64(counts[tag])})
	}
	return out, nil
}

// profileSkills flattens a profile into a lowercase keyword set:
// declared skills, experience title words, and project technologies.
// A missing profile yields an empty set.
func (s *PlanService) profileSkills(ctx context.Context, userID uuid.UUID) map[string]bool {
	skills := make(map[string]bool)

	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("profile lookup failed")
		}
		return skills
	}

	for _, skill := range profile.Data.Skills {
		skills[strings.ToLower(strings.TrimSpace(skill))] = true
	}
	for _, exp := range profile.Data.Experience {
		for _, word := range strings.Fields(strings.ToLower(exp.Title)) {
			skills[word] = true
		}
	}
	for _, proj := range profile.Data.Projects {
		for _, tech := range proj.Technologies {
			skills[strings.ToLower(strings.TrimSpace(tech))] = true
		}
	}
	return skills
}

// selectTemplates resolves each skill tag to a template, generating one
// when none exists. Falls back to dot-prefix partial matches when fewer
// than 3 resolve, re-ranks by role and profile relevance, and balances
// difficulties before capping at 5.
func (s *PlanService) selectTemplates(ctx context.Context, skillTags []string, role *model.RoleCatalog, profileSkills map[string]bool, level model.Level) ([]*model.PlanTemplate, error) {
	var templates []*model.PlanTemplate
	matched := make(map[string]bool)

	resolve := func(tag string) (*model.PlanTemplate, error) {
		tmpl, err := s.templates.GetBySkillTag(ctx, tag)
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("get template: %w", err)
		}
		return s.templates.GetOrCreate(ctx, buildTemplateContent(tag, level))
	}

	for _, tag := range skillTags {
		if matched[tag] {
			continue
		}
		tmpl, err := resolve(tag)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
		matched[tag] = true
	}

	// Partial-prefix fallback: "backend.django.auth" can resolve to a
	// "backend.django" or "backend" template.
	if len(templates) < 3 {
		for _, tag := range skillTags {
			if matched[tag] {
				continue
			}
			parts := strings.Split(tag, ".")
			for i := len(parts); i > 0; i-- {
				partial := strings.Join(parts[:i], ".")
				tmpl, err := resolve(partial)
				if err != nil {
					return nil, err
				}
				if containsTemplate(templates, tmpl) {
					continue
				}
				templates = append(templates, tmpl)
				matched[tag] = true
				break
			}
		}
	}

	if role != nil {
		roleKeywords := normalizeKeywords(role.Keywords)
		type scored struct {
			tmpl  *model.PlanTemplate
			score int
		}
		rescored := make([]scored, 0, len(templates))
		for _, tmpl := range templates {
			score := 0
			if anyKeywordIn(tmpl.SkillTag, roleKeywords) {
				score += 2
			}
			if !tagPartsIn(tmpl.SkillTag, profileSkills) {
				score++
			}
			rescored = append(rescored, scored{tmpl, score})
		}
		sort.SliceStable(rescored, func(i, j int) bool { return rescored[i].score > rescored[j].score })
		templates = templates[:0]
		for _, r := range rescored {
			templates = append(templates, r.tmpl)
		}
	}

	templates = balanceDifficulties(templates)
	if len(templates) > 5 {
		templates = templates[:5]
	}
	return templates, nil
}

// balanceDifficulties fronts one template per difficulty tier, then
// appends the rest in their existing order.
func balanceDifficulties(templates []*model.PlanTemplate) []*model.PlanTemplate {
	if len(templates) == 0 {
		return templates
	}
	var result []*model.PlanTemplate
	for _, d := range []model.TemplateDifficulty{model.TemplateBeginner, model.TemplateIntermediate, model.TemplateAdvanced} {
		for _, tmpl := range templates {
			if tmpl.Difficulty == d {
				result = append(result, tmpl)
				break
			}
		}
	}
	for _, tmpl := range templates {
		if !containsTemplate(result, tmpl) {
			result = append(result, tmpl)
		}
	}
	return result
}

// composeDailyPlan distributes template steps across the requested
// duration: 7-day plans draw from up to 2 templates, 14-day plans from
// up to 3. Each composed day takes its topic, mini-mock, and quick-test
// from its first constituent step and unions all drills. Short content
// is padded with review days; the result always has exactly
// durationDays entries, even when no templates resolved.
func composeDailyPlan(templates []*model.PlanTemplate, durationDays int) []model.DailyPlan {
	var plans []model.DailyPlan

	limit := 2
	if durationDays == 14 {
		limit = 3
	}
	if len(templates) > limit {
		templates = templates[:limit]
	}

	var steps []model.PlanStep
	for _, tmpl := range templates {
		steps = append(steps, tmpl.Steps...)
	}

	perDay := len(steps) / durationDays
	if perDay < 1 {
		perDay = 1
	}

	day := 1
	var bucket []model.PlanStep
	for i, step := range steps {
		bucket = append(bucket, step)
		if len(bucket) < perDay && i != len(steps)-1 {
			continue
		}

		dp := model.DailyPlan{
			Day:       day,
			Topic:     bucket[0].Topic,
			MiniMock:  bucket[0].MiniMock,
			QuickTest: bucket[0].QuickTest,
		}
		for _, s := range bucket {
			dp.Drills = append(dp.Drills, s.Drills...)
		}
		plans = append(plans, dp)
		day++
		bucket = bucket[:0]

		if day > durationDays {
			break
		}
	}

	for len(plans) < durationDays {
		plans = append(plans, model.DailyPlan{
			Day:       len(plans) + 1,
			Topic:     "Review and Practice",
			Drills:    []string{"Review previous days' material", "Practice with mock questions"},
			MiniMock:  "Practice question from previous days",
			QuickTest: "Complete quick test from earlier topics",
		})
	}
	return plans[:durationDays]
}

var weaknessObjectives = []struct {
	key       string
	objective string
}{
	{"star", "Use STAR method (Situation, Task, Action, Result) in every behavioral answer"},
	{"structure", "Structure all answers with clear organization and logical flow"},
	{"auth", "Explain authentication flow including sessions, tokens, and security"},
	{"sql joins", "Solve 10 SQL join exercises and explain reasoning clearly"},
	{"depth", "Provide detailed explanations with examples and tradeoffs"},
	{"technical", "Review technical concepts and ensure accuracy in explanations"},
	{"communication", "Focus on clarity and conciseness in communication"},
}

// learningObjectives converts report weaknesses and weak skill tags into
// 3 to 5 concrete objectives.
func learningObjectives(weaknesses []string, skillBreakdown map[string]float64, skillTags []string) []string {
	var objectives []string

	lowered := make([]string, len(weaknesses))
	for i, w := range weaknesses {
		lowered[i] = strings.ToLower(w)
	}
	for _, wo := range weaknessObjectives {
		for _, w := range lowered {
			if strings.Contains(w, wo.key) {
				objectives = append(objectives, wo.objective)
				break
			}
		}
	}

	var weakTags []string
	for _, tag := range skillTags {
		if skillBreakdown[tag] < weakSkillThreshold {
			weakTags = append(weakTags, tag)
		}
	}
	if len(weakTags) > 3 {
		weakTags = weakTags[:3]
	}
	for _, tag := range weakTags {
		switch {
		case strings.Contains(tag, "communication.star"):
			objectives = append(objectives, "Master STAR method for behavioral questions")
		case strings.Contains(tag, "auth"):
			objectives = append(objectives, "Explain JWT flow and refresh tokens clearly")
		case strings.Contains(tag, "sql.joins"):
			objectives = append(objectives, "Master SQL joins and explain join logic")
		case strings.Contains(tag, "system_design"):
			objectives = append(objectives, "Design scalable systems with proper architecture")
		}
	}

	if len(objectives) < 3 {
		objectives = append(objectives,
			"Improve answer structure and organization",
			"Add more details and examples to answers",
			"Practice explaining concepts clearly",
		)
	}
	if len(objectives) > 5 {
		objectives = objectives[:5]
	}
	return objectives
}

// recommendNextInterview picks the next session's type, difficulty,
// focus topics, and timer from the weakness signals. Difficulty stays at
// the current session's level.
func recommendNextInterview(session *model.Session, weaknesses []string) model.NextInterview {
	lowered := make([]string, len(weaknesses))
	for i, w := range weaknesses {
		lowered[i] = strings.ToLower(w)
	}
	joined := strings.Join(lowered, " ")

	interviewType := model.TypeMixed
	var topics []string

	if anyContains(lowered, "star", "behavioral", "structure") {
		interviewType = model.TypeHR
		topics = append(topics, "STAR Method", "Behavioral Questions")
	}
	if anyContains(lowered, "technical", "backend", "sql", "algorithm") {
		if interviewType == model.TypeHR {
			interviewType = model.TypeMixed
		} else {
			interviewType = model.TypeTechnical
		}
		topics = append(topics, "Technical Concepts")
	}
	if anyContains(lowered, "system design", "scaling", "architecture") {
		if interviewType == model.TypeHR {
			interviewType = model.TypeMixed
		} else {
			interviewType = model.TypeCase
		}
		topics = append(topics, "System Design")
	}

	if strings.Contains(joined, "star") {
		topics = append(topics, "STAR Format")
	}
	if strings.Contains(joined, "backend") {
		topics = append(topics, "Backend Authentication")
	}
	if strings.Contains(joined, "sql") {
		topics = append(topics, "SQL Joins")
	}
	if len(topics) > 4 {
		topics = topics[:4]
	}

	timer := 120
	if interviewType == model.TypeHR {
		timer = 90
	}

	return model.NextInterview{
		Type:        interviewType,
		Difficulty:  session.Level,
		FocusTopics: topics,
		TimerSec:    timer,
	}
}

func anyContains(haystacks []string, needles ...string) bool {
	for _, h := range haystacks {
		for _, n := range needles {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// tagMatchesKeywords reports whether any dot segment of tag is a role
// keyword.
func tagMatchesKeywords(tag string, keywords []string) bool {
	for _, part := range strings.Split(tag, ".") {
		for _, kw := range keywords {
			if part == kw {
				return true
			}
		}
	}
	return false
}

// keywordCovered reports whether a role keyword is already represented
// in the gathered gaps, by substring or exact segment match.
func keywordCovered(keyword string, gaps []skillGap) bool {
	for _, g := range gaps {
		if strings.Contains(g.tag, keyword) {
			return true
		}
		for _, part := range strings.Split(g.tag, ".") {
			if part == keyword {
				return true
			}
		}
	}
	return false
}

func anyKeywordIn(tag string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(tag, kw) {
			return true
		}
	}
	return false
}

func tagPartsIn(tag string, skills map[string]bool) bool {
	for _, part := range strings.Split(tag, ".") {
		if skills[part] {
			return true
		}
	}
	return false
}

func containsTemplate(list []*model.PlanTemplate, tmpl *model.PlanTemplate) bool {
	for _, t := range list {
		if t.SkillTag == tmpl.SkillTag {
			return true
		}
	}
	return false
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
