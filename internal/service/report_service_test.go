package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/rs/zerolog"
)

func newTestReportService(sessions *fakeSessionStore, questions *fakeQuestionStore, answers *fakeAnswerStore) *ReportService {
	return NewReportService(sessions, questions, answers, nil, zerolog.Nop())
}

// seedSession creates a session with n questions and returns the
// session and question IDs.
func seedSession(t *testing.T, sessions *fakeSessionStore, questions *fakeQuestionStore, userID uuid.UUID, status model.SessionStatus, n int) (*model.Session, []uuid.UUID) {
	t.Helper()
	session := &model.Session{
		ID:        uuid.New(),
		UserID:    userID,
		RoleID:    uuid.New(),
		Level:     model.LevelMid,
		Type:      model.TypeTechnical,
		Status:    status,
		StartedAt: time.Now(),
	}
	if err := sessions.Create(context.Background(), session); err != nil {
		t.Fatalf("create session: %v", err)
	}

	qs := make([]*model.Question, 0, n)
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		q := &model.Question{
			ID:           uuid.New(),
			SessionID:    session.ID,
			Order:        i + 1,
			QuestionText: "Question",
			Category:     model.CategoryTechnical,
			Difficulty:   model.DifficultyMedium,
		}
		qs = append(qs, q)
		ids = append(ids, q.ID)
	}
	if err := questions.CreateBatch(context.Background(), qs); err != nil {
		t.Fatalf("create questions: %v", err)
	}
	return session, ids
}

func uniformScores(v int) model.DimensionScores {
	return model.DimensionScores{Structure: v, Relevance: v, TechnicalAccuracy: v, Depth: v, Communication: v}
}

func TestBuildReportMissingSession(t *testing.T) {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	svc := newTestReportService(sessions, questions, newFakeAnswerStore(questions))

	report, err := svc.BuildReport(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.Session != nil {
		t.Errorf("Session = %+v, want nil for unknown session", report.Session)
	}
	if len(report.Answers) != 0 || len(report.Strengths) != 0 {
		t.Errorf("want empty report, got %+v", report)
	}
}

func TestBuildReportNoAnswers(t *testing.T) {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(questions)
	svc := newTestReportService(sessions, questions, answers)

	session, _ := seedSession(t, sessions, questions, uuid.New(), model.SessionStatusInProgress, 3)

	report, err := svc.BuildReport(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	if report.Rubric != (model.RubricBreakdown{}) {
		t.Errorf("Rubric = %+v, want all zeros with no answers", report.Rubric)
	}
	if len(report.SkillBreakdown) != 0 || len(report.Answers) != 0 {
		t.Errorf("want empty breakdown and answers, got %+v", report)
	}
}

func TestBuildReportAggregates(t *testing.T) {
	sessions := newFakeSessionStore()
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore(questions)
	svc := newTestReportService(sessions, questions, answers)

	session, qids := seedSession(t, sessions, questions, uuid.New(), model.SessionStatusInProgress, 2)

	ctx := context.Background()
	a1 := &model.Answer{
		ID:         uuid.New(),
		QuestionID: qids[0],
		AnswerText: "first",
		Scores:     model.DimensionScores{Structure: 5, Relevance: 4, TechnicalAccuracy: 3, Depth: 2, Communication: 1},
		Feedback:   model.Feedback{Strengths: []string{"S1"}, Weaknesses: []string{"W1"}},
		SkillTags:  []string{"backend.sql", "backend.api"},
	}
	a2 := &model.Answer{
		ID:         uuid.New(),
		QuestionID: qids[1],
		AnswerText: "second",
		Scores:     uniformScores(4),
		Feedback:   model.Feedback{Strengths: []string{"S1", "S2"}, Weaknesses: []string{"W2"}},
		SkillTags:  []string{"backend.api"},
	}
	for _, a := range []*model.Answer{a1, a2} {
		if err := answers.Create(ctx, a); err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	report, err := svc.BuildReport(ctx, session.ID)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	wantRubric := model.RubricBreakdown{Structure: 4.5, Relevance: 4, TechnicalAccuracy: 3.5, Depth: 3, Communication: 2.5}
	if report.Rubric != wantRubric {
		t.Errorf("Rubric = %+v, want %+v", report.Rubric, wantRubric)
	}

	// a1 averages 3.0, a2 averages 4.0.
	if got := report.SkillBreakdown["backend.sql"]; got != 3.0 {
		t.Errorf("SkillBreakdown[backend.sql] = %v, want 3.0", got)
	}
	if got := report.SkillBreakdown["backend.api"]; got != 3.5 {
		t.Errorf("SkillBreakdown[backend.api] = %v, want 3.5", got)
	}
	wantTags := []string{"backend.sql", "backend.api"}
	if len(report.SkillTags) != len(wantTags) {
		t.Fatalf("SkillTags = %v, want %v", report.SkillTags, wantTags)
	}
	for i := range wantTags {
		if report.SkillTags[i] != wantTags[i] {
			t.Errorf("SkillTags[%d] = %q, want %q (first-seen order)", i, report.SkillTags[i], wantTags[i])
		}
	}

	// S1 appears twice, S2 once: frequency decides the order.
	if len(report.Strengths) != 2 || report.Strengths[0] != "S1" || report.Strengths[1] != "S2" {
		t.Errorf("Strengths = %v, want [S1 S2]", report.Strengths)
	}
	// W1 and W2 tie at one occurrence each: first-seen order wins.
	if len(report.Weaknesses) != 2 || report.Weaknesses[0] != "W1" || report.Weaknesses[1] != "W2" {
		t.Errorf("Weaknesses = %v, want [W1 W2]", report.Weaknesses)
	}

	if len(report.Answers) != 2 {
		t.Fatalf("Answers len = %d, want 2", len(report.Answers))
	}
	if report.Answers[0].QuestionText != "Question" {
		t.Errorf("Answers[0].QuestionText = %q, want resolved question text", report.Answers[0].QuestionText)
	}
}

func TestAggregateScoresEmpty(t *testing.T) {
	if got := AggregateScores(nil); got != (model.RubricBreakdown{}) {
		t.Errorf("AggregateScores(nil) = %+v, want zero breakdown", got)
	}
}

func TestSkillBreakdownRounding(t *testing.T) {
	answers := []model.Answer{
		{Scores: model.DimensionScores{Structure: 3, Relevance: 3, TechnicalAccuracy: 3, Depth: 3, Communication: 2}, SkillTags: []string{"go.sql"}},
		{Scores: uniformScores(3), SkillTags: []string{"go.sql"}},
	}
	// (2.8 + 3.0) / 2 = 2.9
	breakdown, order := SkillBreakdown(answers)
	if got := breakdown["go.sql"]; got != 2.9 {
		t.Errorf("breakdown[go.sql] = %v, want 2.9", got)
	}
	if len(order) != 1 || order[0] != "go.sql" {
		t.Errorf("order = %v, want [go.sql]", order)
	}
}
