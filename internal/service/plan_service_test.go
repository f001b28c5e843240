package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/rs/zerolog"
)

type planFixture struct {
	sessions  *fakeSessionStore
	questions *fakeQuestionStore
	answers   *fakeAnswerStore
	roles     *fakeRoleStore
	profiles  *fakeProfileStore
	templates *fakeTemplateStore
	plans     *fakePlanStore
	svc       *PlanService
	userID    uuid.UUID
}

func newPlanFixture() *planFixture {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(questions)
	roles := newFakeRoleStore()
	profiles := newFakeProfileStore()
	templates := newFakeTemplateStore()
	plans := newFakePlanStore()
	reports := newTestReportService(sessions, questions, answers)

	return &planFixture{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		roles:     roles,
		profiles:  profiles,
		templates: templates,
		plans:     plans,
		svc:       NewPlanService(sessions, answers, roles, profiles, templates, plans, reports, zerolog.Nop()),
		userID:    uuid.New(),
	}
}

// completedSession seeds a completed session whose answers score
// uniformly per tag.
func (fx *planFixture) completedSession(t *testing.T, level model.Level, role *model.RoleCatalog, tagScores map[string]int, tags []string) *model.Session {
	t.Helper()
	ctx := context.Background()

	roleID := uuid.New()
	if role != nil {
		stored := fx.roles.put(role)
		roleID = stored.ID
	}

	overall := 50
	ended := time.Now()
	session := &model.Session{
		ID:           uuid.New(),
		UserID:       fx.userID,
		RoleID:       roleID,
		Level:        level,
		Type:         model.TypeMixed,
		Status:       model.SessionStatusCompleted,
		OverallScore: &overall,
		StartedAt:    ended.Add(-time.Hour),
		EndedAt:      &ended,
	}
	if err := fx.sessions.Create(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	for i, tag := range tags {
		q := &model.Question{
			ID:           uuid.New(),
			SessionID:    session.ID,
			Order:        i + 1,
			QuestionText: "Q",
			Category:     model.CategoryBehavioral,
			Difficulty:   model.DifficultyMedium,
			SkillTags:    []string{tag},
		}
		if err := fx.questions.CreateBatch(ctx, []*model.Question{q}); err != nil {
			t.Fatalf("create question: %v", err)
		}
		if err := fx.answers.Create(ctx, &model.Answer{
			ID:         uuid.New(),
			QuestionID: q.ID,
			AnswerText: "A",
			Scores:     uniformScores(tagScores[tag]),
			SkillTags:  []string{tag},
		}); err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}
	return session
}

func TestGenerateUpgradePlanInvalidDuration(t *testing.T) {
	fx := newPlanFixture()
	for _, days := range []int{0, 5, 10, 30} {
		if _, err := fx.svc.GenerateUpgradePlan(context.Background(), fx.userID, uuid.New(), days); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: err = %v, want ErrInvalidDuration", days, err)
		}
	}
}

func TestGenerateUpgradePlanRequiresCompletedSession(t *testing.T) {
	fx := newPlanFixture()
	ctx := context.Background()

	session := &model.Session{
		ID:        uuid.New(),
		UserID:    fx.userID,
		RoleID:    uuid.New(),
		Level:     model.LevelMid,
		Type:      model.TypeHR,
		Status:    model.SessionStatusInProgress,
		StartedAt: time.Now(),
	}
	if err := fx.sessions.Create(ctx, session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	if _, err := fx.svc.GenerateUpgradePlan(ctx, fx.userID, session.ID, 7); !errors.Is(err, ErrSessionNotCompleted) {
		t.Errorf("err = %v, want ErrSessionNotCompleted", err)
	}
	if _, err := fx.svc.GenerateUpgradePlan(ctx, uuid.New(), session.ID, 7); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden for another user", err)
	}
	if _, err := fx.svc.GenerateUpgradePlan(ctx, fx.userID, uuid.New(), 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown session", err)
	}
}

func TestGenerateUpgradePlanSevenDays(t *testing.T) {
	fx := newPlanFixture()
	ctx := context.Background()

	role := &model.RoleCatalog{Name: "Backend Engineer", Category: "backend"}
	session := fx.completedSession(t, model.LevelJunior, role,
		map[string]int{"communication.star": 2}, []string{"communication.star"})

	plan, err := fx.svc.GenerateUpgradePlan(ctx, fx.userID, session.ID, 7)
	if err != nil {
		t.Fatalf("GenerateUpgradePlan: %v", err)
	}

	if plan.DurationDays != 7 || plan.SessionID != session.ID {
		t.Errorf("plan meta = %d days session %s, want 7 days for %s", plan.DurationDays, plan.SessionID, session.ID)
	}
	days := plan.Content.DailyPlans
	if len(days) != 7 {
		t.Fatalf("DailyPlans len = %d, want exactly 7", len(days))
	}
	for i, d := range days {
		if d.Day != i+1 {
			t.Errorf("DailyPlans[%d].Day = %d, want %d", i, d.Day, i+1)
		}
	}
	// A junior STAR template carries 3 days of content; the rest is
	// review filler.
	if days[0].Topic != "STAR Framework Basics" {
		t.Errorf("day 1 topic = %q, want STAR Framework Basics", days[0].Topic)
	}
	for i := 3; i < 7; i++ {
		if days[i].Topic != "Review and Practice" {
			t.Errorf("day %d topic = %q, want Review and Practice filler", i+1, days[i].Topic)
		}
	}

	ni := plan.Content.NextInterview
	if ni.Type != model.TypeMixed || ni.TimerSec != 120 || ni.Difficulty != model.LevelJunior {
		t.Errorf("NextInterview = %+v, want mixed / 120s / junior", ni)
	}

	found := false
	for _, obj := range plan.Content.LearningObjectives {
		if obj == "Master STAR method for behavioral questions" {
			found = true
		}
	}
	if !found {
		t.Errorf("LearningObjectives = %v, want STAR objective from weak tag", plan.Content.LearningObjectives)
	}
	if n := len(plan.Content.LearningObjectives); n < 3 || n > 5 {
		t.Errorf("LearningObjectives len = %d, want 3..5", n)
	}
}

func TestGenerateUpgradePlanUpserts(t *testing.T) {
	fx := newPlanFixture()
	ctx := context.Background()
	session := fx.completedSession(t, model.LevelMid, nil,
		map[string]int{"backend.sql": 2}, []string{"backend.sql"})

	if _, err := fx.svc.GenerateUpgradePlan(ctx, fx.userID, session.ID, 7); err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if _, err := fx.svc.GenerateUpgradePlan(ctx, fx.userID, session.ID, 7); err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(fx.plans.plans) != 1 {
		t.Errorf("stored plans = %d, want 1 (regeneration replaces)", len(fx.plans.plans))
	}
	if fx.plans.upserts != 2 {
		t.Errorf("upserts = %d, want 2", fx.plans.upserts)
	}

	got, err := fx.svc.GetPlan(ctx, fx.userID, session.ID, 7)
	if err != nil {
		t.Fatalf("GetPlan: %v", err)
	}
	if got.SessionID != session.ID {
		t.Errorf("GetPlan session = %s, want %s", got.SessionID, session.ID)
	}
	if _, err := fx.svc.GetPlan(ctx, fx.userID, session.ID, 14); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPlan(14) err = %v, want ErrNotFound", err)
	}
}

func TestIdentifySkillGapsPriorities(t *testing.T) {
	fx := newPlanFixture()
	ctx := context.Background()

	// History: a completed session where backend.sql scored weak.
	fx.completedSession(t, model.LevelMid, nil,
		map[string]int{"backend.sql": 2}, []string{"backend.sql"})

	// A react template exists for the missing-keyword fallback.
	fx.templates.put(&model.PlanTemplate{
		SkillTag:   "frontend.react",
		Title:      "React",
		Difficulty: model.TemplateIntermediate,
		Steps:      []model.PlanStep{{Day: 1, Topic: "React"}},
	})

	role := &model.RoleCatalog{Name: "Full-stack Developer", Category: "fullstack", Keywords: []string{"sql", "react"}}
	session := &model.Session{ID: uuid.New(), UserID: fx.userID}
	report := &model.Report{
		SkillTags:      []string{"a.x"},
		SkillBreakdown: map[string]float64{"a.x": 2.0},
	}

	gaps, err := fx.svc.identifySkillGaps(ctx, session, role, report)
	if err != nil {
		t.Fatalf("identifySkillGaps: %v", err)
	}

	want := []string{"a.x", "backend.sql", "frontend.react"}
	if len(gaps) != len(want) {
		t.Fatalf("gaps = %v, want %v", gaps, want)
	}
	for i := range want {
		if gaps[i] != want[i] {
			t.Errorf("gaps[%d] = %q, want %q (priority order)", i, gaps[i], want[i])
		}
	}
}

func TestIdentifyWeakSkills(t *testing.T) {
	report := &model.Report{
		SkillTags: []string{"b", "a", "c"},
		SkillBreakdown: map[string]float64{
			"b": 2.5,
			"a": 1.5,
			"c": 3.5,
		},
	}
	weak := identifyWeakSkills(report)
	if len(weak) != 2 || weak[0] != "a" || weak[1] != "b" {
		t.Errorf("identifyWeakSkills = %v, want [a b] lowest first", weak)
	}
}

func TestComposeDailyPlan(t *testing.T) {
	mkTemplate := func(tag string, topics ...string) *model.PlanTemplate {
		steps := make([]model.PlanStep, len(topics))
		for i, topic := range topics {
			steps[i] = model.PlanStep{
				Day:       i + 1,
				Topic:     topic,
				Drills:    []string{topic + " drill"},
				MiniMock:  topic + " mock",
				QuickTest: topic + " test",
			}
		}
		return &model.PlanTemplate{SkillTag: tag, Title: tag, Steps: steps}
	}

	t.Run("no templates still fills duration", func(t *testing.T) {
		days := composeDailyPlan(nil, 7)
		if len(days) != 7 {
			t.Fatalf("len = %d, want 7 review days", len(days))
		}
		for i, d := range days {
			if d.Day != i+1 {
				t.Errorf("day %d numbered %d", i+1, d.Day)
			}
			if d.Topic != "Review and Practice" {
				t.Errorf("day %d topic = %q, want filler", d.Day, d.Topic)
			}
		}
	})

	t.Run("short content padded", func(t *testing.T) {
		days := composeDailyPlan([]*model.PlanTemplate{mkTemplate("a", "A1", "A2", "A3")}, 7)
		if len(days) != 7 {
			t.Fatalf("len = %d, want 7", len(days))
		}
		if days[0].Topic != "A1" || days[2].Topic != "A3" {
			t.Errorf("days = %+v, want template steps first", days[:3])
		}
		if days[3].Topic != "Review and Practice" {
			t.Errorf("day 4 topic = %q, want filler", days[3].Topic)
		}
	})

	t.Run("steps grouped per day", func(t *testing.T) {
		days := composeDailyPlan([]*model.PlanTemplate{mkTemplate("a", "A1", "A2", "A3", "A4")}, 2)
		if len(days) != 2 {
			t.Fatalf("len = %d, want 2", len(days))
		}
		if days[0].Topic != "A1" || days[0].MiniMock != "A1 mock" {
			t.Errorf("day 1 = %+v, want first step's headline", days[0])
		}
		wantDrills := []string{"A1 drill", "A2 drill"}
		if len(days[0].Drills) != 2 || days[0].Drills[0] != wantDrills[0] || days[0].Drills[1] != wantDrills[1] {
			t.Errorf("day 1 drills = %v, want union %v", days[0].Drills, wantDrills)
		}
	})

	t.Run("seven day plans cap two templates", func(t *testing.T) {
		days := composeDailyPlan([]*model.PlanTemplate{
			mkTemplate("a", "A1", "A2", "A3"),
			mkTemplate("b", "B1", "B2", "B3"),
			mkTemplate("c", "C1", "C2", "C3"),
		}, 7)
		for _, d := range days {
			if d.Topic == "C1" || d.Topic == "C2" || d.Topic == "C3" {
				t.Errorf("day %d uses third template topic %q, want at most 2 templates", d.Day, d.Topic)
			}
		}
	})

	t.Run("fourteen day plans use three templates", func(t *testing.T) {
		days := composeDailyPlan([]*model.PlanTemplate{
			mkTemplate("a", "A1", "A2", "A3", "A4", "A5"),
			mkTemplate("b", "B1", "B2", "B3", "B4", "B5"),
			mkTemplate("c", "C1", "C2", "C3", "C4", "C5"),
		}, 14)
		if len(days) != 14 {
			t.Fatalf("len = %d, want 14", len(days))
		}
		seenC := false
		for _, d := range days {
			if d.Topic == "C1" {
				seenC = true
			}
		}
		if !seenC {
			t.Errorf("third template never used in a 14-day plan")
		}
	})
}

func TestLearningObjectives(t *testing.T) {
	objectives := learningObjectives(
		[]string{"Answers lack structure (no STAR format)"},
		map[string]float64{},
		nil,
	)
	if len(objectives) < 3 || len(objectives) > 5 {
		t.Fatalf("objectives len = %d, want 3..5", len(objectives))
	}
	if objectives[0] != "Use STAR method (Situation, Task, Action, Result) in every behavioral answer" {
		t.Errorf("objectives[0] = %q, want STAR objective", objectives[0])
	}
	if objectives[1] != "Structure all answers with clear organization and logical flow" {
		t.Errorf("objectives[1] = %q, want structure objective", objectives[1])
	}
}

func TestRecommendNextInterview(t *testing.T) {
	session := &model.Session{Level: model.LevelSenior}

	hr := recommendNextInterview(session, []string{"Answers lack structure (no STAR format)"})
	if hr.Type != model.TypeHR || hr.TimerSec != 90 {
		t.Errorf("hr recommendation = %+v, want hr with 90s timer", hr)
	}
	if hr.Difficulty != model.LevelSenior {
		t.Errorf("Difficulty = %s, want session level carried over", hr.Difficulty)
	}

	tech := recommendNextInterview(session, []string{"Technical accuracy needs improvement"})
	if tech.Type != model.TypeTechnical || tech.TimerSec != 120 {
		t.Errorf("technical recommendation = %+v, want technical with 120s timer", tech)
	}

	both := recommendNextInterview(session, []string{"Answers lack structure (no STAR format)", "Technical accuracy needs improvement"})
	if both.Type != model.TypeMixed {
		t.Errorf("mixed signals type = %s, want mixed", both.Type)
	}

	none := recommendNextInterview(session, nil)
	if none.Type != model.TypeMixed || len(none.FocusTopics) != 0 {
		t.Errorf("default recommendation = %+v, want mixed with no topics", none)
	}
}
