package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
	"github.com/mockmate/mockmate-backend/internal/scoring"
	"github.com/rs/zerolog"
)

// QuestionStrategy generates a question set for a new session. An
// implementation may call an external model; any error or empty result
// makes the service fall back to the built-in bank.
type QuestionStrategy interface {
	GenerateQuestions(ctx context.Context, role *model.RoleCatalog, level model.Level, interviewType model.InterviewType, profile *model.Profile) ([]model.QuestionDraft, error)
}

// ReportManager is the slice of ReportService the interview flow needs.
type ReportManager interface {
	BuildReport(ctx context.Context, sessionID uuid.UUID) (*model.Report, error)
	Invalidate(ctx context.Context, sessionID uuid.UUID)
}

// InterviewService drives the session lifecycle: creation with question
// generation, answer submission with synchronous scoring, and
// completion with overall score aggregation.
type InterviewService struct {
	sessions  SessionStore
	questions QuestionStore
	answers   AnswerStore
	roles     RoleStore
	profiles  ProfileStore
	reports   ReportManager
	strategy  QuestionStrategy
	log       zerolog.Logger
}

// NewInterviewService creates a new InterviewService. strategy may be
// nil, which always uses the built-in question bank.
func NewInterviewService(sessions SessionStore, questions QuestionStore, answers AnswerStore, roles RoleStore, profiles ProfileStore, reports ReportManager, strategy QuestionStrategy, log zerolog.Logger) *InterviewService {
	return &InterviewService{
		sessions:  sessions,
		questions: questions,
		answers:   answers,
		roles:     roles,
		profiles:  profiles,
		reports:   reports,
		strategy:  strategy,
		log:       log.With().Str("component", "interview_service").Logger(),
	}
}

// CreateSession starts a new interview: persists the session, generates
// its questions, and moves it to in_progress. Returns the session with
// its ordered questions.
func (s *InterviewService) CreateSession(ctx context.Context, userID uuid.UUID, req model.CreateSessionRequest) (*model.Session, []model.Question, error) {
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse role id: %w", err)
	}
	role, err := s.roles.GetByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get role: %w", err)
	}

	var profile *model.Profile
	var profileID *uuid.UUID
	if req.ProfileID != "" {
		pid, err := uuid.Parse(req.ProfileID)
		if err != nil {
			return nil, nil, fmt.Errorf("parse profile id: %w", err)
		}
		profile, err = s.profiles.GetByID(ctx, pid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, ErrNotFound
			}
			return nil, nil, fmt.Errorf("get profile: %w", err)
		}
		if profile.UserID != userID {
			return nil, nil, ErrForbidden
		}
		profileID = &pid
	}

	session := &model.Session{
		ID:        uuid.New(),
		UserID:    userID,
		RoleID:    roleID,
		ProfileID: profileID,
		Level:     model.Level(req.Level),
		Type:      model.InterviewType(req.Type),
		Status:    model.SessionStatusCreated,
		StartedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	drafts := s.generateDrafts(ctx, role, session, profile)
	questions := make([]*model.Question, 0, len(drafts))
	for i, d := range drafts {
		questions = append(questions, &model.Question{
			ID:           uuid.New(),
			SessionID:    session.ID,
			Order:        i + 1,
			QuestionText: d.QuestionText,
			Category:     d.Category,
			Difficulty:   d.Difficulty,
			SkillTags:    d.SkillTags,
		})
	}
	if err := s.questions.CreateBatch(ctx, questions); err != nil {
		return nil, nil, fmt.Errorf("create questions: %w", err)
	}

	if err := s.sessions.SetStatus(ctx, session.ID, model.SessionStatusInProgress); err != nil {
		return nil, nil, fmt.Errorf("start session: %w", err)
	}
	session.Status = model.SessionStatusInProgress

	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[i] = *q
	}

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("type", string(session.Type)).
		Int("questions", len(out)).
		Msg("session created")
	return session, out, nil
}

// generateDrafts runs the external strategy when configured and falls
// back to the built-in bank on any failure or empty result.
func (s *InterviewService) generateDrafts(ctx context.Context, role *model.RoleCatalog, session *model.Session, profile *model.Profile) []model.QuestionDraft {
	if s.strategy != nil {
		drafts, err := s.strategy.GenerateQuestions(ctx, role, session.Level, session.Type, profile)
		if err != nil {
			s.log.Warn().Err(err).Str("session_id", session.ID.String()).Msg("question strategy failed, using question bank")
		} else if len(drafts) > 0 {
			return drafts
		}
	}
	return SelectQuestions(role, session.Level, session.Type)
}

// GetSession fetches a session owned by the user.
func (s *InterviewService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	return s.ownedSession(ctx, userID, sessionID)
}

// ListSessions returns the user's sessions, most recent first.
func (s *InterviewService) ListSessions(ctx context.Context, userID uuid.UUID) ([]model.Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListQuestions returns a session's questions in order.
func (s *InterviewService) ListQuestions(ctx context.Context, userID, sessionID uuid.UUID) ([]model.Question, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	questions, err := s.questions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// SubmitAnswer scores an answer synchronously and persists it together
// with its generated feedback. A question can be answered exactly once.
func (s *InterviewService) SubmitAnswer(ctx context.Context, userID, sessionID uuid.UUID, req model.SubmitAnswerRequest) (*model.Answer, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("parse question id: %w", err)
	}
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.SessionID != sessionID {
		return nil, ErrNotFound
	}

	scores := scoring.ScoreAnswer(req.AnswerText, question)
	answer := &model.Answer{
		ID:          uuid.New(),
		QuestionID:  questionID,
		AnswerText:  req.AnswerText,
		TimeSeconds: req.TimeSeconds,
		Scores:      scores,
		Feedback:    scoring.GenerateFeedback(req.AnswerText, scores, question),
		SkillTags:   question.SkillTags,
		SubmittedAt: time.Now(),
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAnswerExists
		}
		return nil, fmt.Errorf("create answer: %w", err)
	}

	s.reports.Invalidate(ctx, sessionID)
	return answer, nil
}

// FinishSession completes a session: aggregates the rubric averages
// into the overall 0-100 score and stamps the end time. Completing an
// already completed session fails with ErrSessionCompleted.
func (s *InterviewService) FinishSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	answers, err := s.answers.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	breakdown := AggregateScores(answers)
	overall := scoring.OverallFromBreakdown(breakdown)
	endedAt := time.Now()

	if err := s.sessions.Complete(ctx, sessionID, overall, endedAt); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	session.Status = model.SessionStatusCompleted
	session.OverallScore = &overall
	session.EndedAt = &endedAt

	s.reports.Invalidate(ctx, sessionID)

	s.log.Info().
		Str("session_id", sessionID.String()).
		Int("overall_score", overall).
		Int("answers", len(answers)).
		Msg("session completed")
	return session, nil
}

// AbandonSession marks an unfinished session as abandoned.
func (s *InterviewService) AbandonSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}
	if err := s.sessions.SetStatus(ctx, sessionID, model.SessionStatusAbandoned); err != nil {
		return nil, fmt.Errorf("abandon session: %w", err)
	}
	session.Status = model.SessionStatusAbandoned
	return session, nil
}

// GetReport builds the session report for its owner.
func (s *InterviewService) GetReport(ctx context.Context, userID, sessionID uuid.UUID) (*model.Report, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	report, err := s.reports.BuildReport(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return report, nil
}

func (s *InterviewService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*model.Session, error) {
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
	return session, nil
}
