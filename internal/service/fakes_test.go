package service

// In-memory store fakes backing the service tests. Each fake honors the
// same sentinel contract as the pgx repositories (repository.ErrNotFound,
// repository.ErrDuplicate) so the services cannot tell them apart.

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
)

type fakeSessionStore struct {
	byID  map[uuid.UUID]*model.Session
	order []uuid.UUID
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byID: map[uuid.UUID]*model.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, s *model.Session) error {
	cp := *s
	f.byID[s.ID] = &cp
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) SetStatus(_ context.Context, id uuid.UUID, status model.SessionStatus) error {
	s, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSessionStore) Complete(_ context.Context, id uuid.UUID, overallScore int, endedAt time.Time) error {
	s, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Status = model.SessionStatusCompleted
	s.OverallScore = &overallScore
	s.EndedAt = &endedAt
	return nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Session, error) {
	var out []model.Session
	for i := len(f.order) - 1; i >= 0; i-- {
		if s := f.byID[f.order[i]]; s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) ListCompletedByUser(_ context.Context, userID uuid.UUID) ([]model.Session, error) {
	var out []model.Session
	for _, id := range f.order {
		if s := f.byID[id]; s.UserID == userID && s.Status == model.SessionStatusCompleted {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeQuestionStore struct {
	byID      map[uuid.UUID]*model.Question
	bySession map[uuid.UUID][]uuid.UUID
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		byID:      map[uuid.UUID]*model.Question{},
		bySession: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeQuestionStore) CreateBatch(_ context.Context, questions []*model.Question) error {
	for _, q := range questions {
		cp := *q
		f.byID[q.ID] = &cp
		f.bySession[q.SessionID] = append(f.bySession[q.SessionID], q.ID)
	}
	return nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	q, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestionStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.Question, error) {
	var out []model.Question
	for _, id := range f.bySession[sessionID] {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

type fakeAnswerStore struct {
	questions *fakeQuestionStore
	answered  map[uuid.UUID]bool
	bySession map[uuid.UUID][]model.Answer
}

func newFakeAnswerStore(questions *fakeQuestionStore) *fakeAnswerStore {
	return &fakeAnswerStore{
		questions: questions,
		answered:  map[uuid.UUID]bool{},
		bySession: map[uuid.UUID][]model.Answer{},
	}
}

func (f *fakeAnswerStore) Create(_ context.Context, a *model.Answer) error {
	if f.answered[a.QuestionID] {
		return repository.ErrDuplicate
	}
	q, ok := f.questions.byID[a.QuestionID]
	if !ok {
		return repository.ErrNotFound
	}
	f.answered[a.QuestionID] = true
	f.bySession[q.SessionID] = append(f.bySession[q.SessionID], *a)
	return nil
}

func (f *fakeAnswerStore) ListBySession(_ context.Context, sessionID uuid.UUID) ([]model.Answer, error) {
	return append([]model.Answer(nil), f.bySession[sessionID]...), nil
}

type fakeTemplateStore struct {
	byTag map[string]*model.PlanTemplate
	order []string
}

func newFakeTemplateStore() *fakeTemplateStore {
	return &fakeTemplateStore{byTag: map[string]*model.PlanTemplate{}}
}

func (f *fakeTemplateStore) put(t *model.PlanTemplate) *model.PlanTemplate {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	f.byTag[t.SkillTag] = &cp
	f.order = append(f.order, t.SkillTag)
	return &cp
}

func (f *fakeTemplateStore) GetBySkillTag(_ context.Context, skillTag string) (*model.PlanTemplate, error) {
	t, ok := f.byTag[skillTag]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTemplateStore) GetOrCreate(_ context.Context, t *model.PlanTemplate) (*model.PlanTemplate, error) {
	if existing, ok := f.byTag[t.SkillTag]; ok {
		cp := *existing
		return &cp, nil
	}
	return f.put(t), nil
}

func (f *fakeTemplateStore) FindByTagContains(_ context.Context, keyword string) (*model.PlanTemplate, error) {
	for _, tag := range f.order {
		if strings.Contains(tag, keyword) {
			cp := *f.byTag[tag]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type planKey struct {
	sessionID    uuid.UUID
	durationDays int
}

type fakePlanStore struct {
	plans   map[planKey]*model.UpgradePlan
	upserts int
}

func newFakePlanStore() *fakePlanStore {
	return &fakePlanStore{plans: map[planKey]*model.UpgradePlan{}}
}

func (f *fakePlanStore) Upsert(_ context.Context, p *model.UpgradePlan) error {
	cp := *p
	f.plans[planKey{p.SessionID, p.DurationDays}] = &cp
	f.upserts++
	return nil
}

func (f *fakePlanStore) GetBySessionAndDuration(_ context.Context, sessionID uuid.UUID, durationDays int) (*model.UpgradePlan, error) {
	p, ok := f.plans[planKey{sessionID, durationDays}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeRoleStore struct {
	byID  map[uuid.UUID]*model.RoleCatalog
	order []uuid.UUID
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{byID: map[uuid.UUID]*model.RoleCatalog{}}
}

func (f *fakeRoleStore) put(r *model.RoleCatalog) *model.RoleCatalog {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	f.byID[r.ID] = &cp
	f.order = append(f.order, r.ID)
	return &cp
}

func (f *fakeRoleStore) GetByID(_ context.Context, id uuid.UUID) (*model.RoleCatalog, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoleStore) List(_ context.Context) ([]model.RoleCatalog, error) {
	out := make([]model.RoleCatalog, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, *f.byID[id])
	}
	return out, nil
}

type fakeProfileStore struct {
	byID   map[uuid.UUID]*model.Profile
	byUser map[uuid.UUID]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		byID:   map[uuid.UUID]*model.Profile{},
		byUser: map[uuid.UUID]*model.Profile{},
	}
}

func (f *fakeProfileStore) Upsert(_ context.Context, p *model.Profile) error {
	if existing, ok := f.byUser[p.UserID]; ok {
		p.ID = existing.ID
	} else if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	f.byID[cp.ID] = &cp
	f.byUser[cp.UserID] = &cp
	return nil
}

func (f *fakeProfileStore) GetByUser(_ context.Context, userID uuid.UUID) (*model.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeUserStore struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[uuid.UUID]*model.User{},
		byEmail: map[string]*model.User{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeStrategy struct {
	drafts []model.QuestionDraft
	err    error
	calls  int
}

func (f *fakeStrategy) GenerateQuestions(context.Context, *model.RoleCatalog, model.Level, model.InterviewType, *model.Profile) ([]model.QuestionDraft, error) {
	f.calls++
	return f.drafts, f.err
}
