package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// AnswerRepository handles answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Create inserts an answer. The unique constraint on question_id makes a
// resubmission surface as ErrDuplicate; there is deliberately no upsert.
func (r *AnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	scores, err := json.Marshal(a.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	feedback, err := json.Marshal(a.Feedback)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	tags, err := json.Marshal(a.SkillTags)
	if err != nil {
		return fmt.Errorf("marshal skill tags: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`INSERT INTO interview_answers
		 (question_id, answer_text, time_seconds, scores, feedback, skill_tags)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, submitted_at`,
		a.QuestionID, a.AnswerText, a.TimeSeconds, scores, feedback, tags,
	).Scan(&a.ID, &a.SubmittedAt)
	return translate(err)
}

// GetByQuestion retrieves the answer for a question, if any.
func (r *AnswerRepository) GetByQuestion(ctx context.Context, questionID uuid.UUID) (*model.Answer, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, question_id, answer_text, time_seconds, scores, feedback, skill_tags, submitted_at
		 FROM interview_answers WHERE question_id = $1`, questionID)
	return scanAnswer(row)
}

// ListBySession retrieves all answers in a session in submission order.
func (r *AnswerRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.question_id, a.answer_text, a.time_seconds, a.scores, a.feedback, a.skill_tags, a.submitted_at
		 FROM interview_answers a
		 JOIN interview_questions q ON a.question_id = q.id
		 WHERE q.session_id = $1
		 ORDER BY a.submitted_at ASC`, sessionID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		a, err := scanAnswerRow(rows)
		if err != nil {
			return nil, err
		}
		answers = append(answers, *a)
	}
	return answers, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAnswer(row scannable) (*model.Answer, error) {
	a, err := scanAnswerRow(row)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

func scanAnswerRow(row scannable) (*model.Answer, error) {
	a := &model.Answer{}
	var scores, feedback, tags []byte
	if err := row.Scan(&a.ID, &a.QuestionID, &a.AnswerText, &a.TimeSeconds,
		&scores, &feedback, &tags, &a.SubmittedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scores, &a.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	if err := json.Unmarshal(feedback, &a.Feedback); err != nil {
		return nil, fmt.Errorf("unmarshal feedback: %w", err)
	}
	if err := json.Unmarshal(tags, &a.SkillTags); err != nil {
		return nil, fmt.Errorf("unmarshal skill tags: %w", err)
	}
	return a, nil
}
