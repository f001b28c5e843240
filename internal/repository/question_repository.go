package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockmate/mockmate-backend/internal/model"
)

// QuestionRepository handles interview question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// CreateBatch inserts a session's generated questions in order.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []*model.Question) error {
	for _, q := range questions {
		tags, err := json.Marshal(q.SkillTags)
		if err != nil {
			return fmt.Errorf("marshal skill tags: %w", err)
		}
		err = r.pool.QueryRow(ctx,
			`INSERT INTO interview_questions
			 (session_id, ord, question_text, category, difficulty, skill_tags, is_followup, parent_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			q.SessionID, q.Order, q.QuestionText, q.Category, q.Difficulty,
			tags, q.IsFollowup, q.ParentID,
		).Scan(&q.ID)
		if err != nil {
			return translate(err)
		}
	}
	return nil
}

// GetByID retrieves a question by ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	var tags []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, ord, question_text, category, difficulty, skill_tags, is_followup, parent_id
		 FROM interview_questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.SessionID, &q.Order, &q.QuestionText, &q.Category,
		&q.Difficulty, &tags, &q.IsFollowup, &q.ParentID)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(tags, &q.SkillTags); err != nil {
		return nil, fmt.Errorf("unmarshal skill tags: %w", err)
	}
	return q, nil
}

// ListBySession retrieves all questions of a session ordered by position.
func (r *QuestionRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, ord, question_text, category, difficulty, skill_tags, is_followup, parent_id
		 FROM interview_questions
		 WHERE session_id = $1
		 ORDER BY ord ASC`, sessionID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var tags []byte
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Order, &q.QuestionText,
			&q.Category, &q.Difficulty, &tags, &q.IsFollowup, &q.ParentID); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &q.SkillTags); err != nil {
			return nil, fmt.Errorf("unmarshal skill tags: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
