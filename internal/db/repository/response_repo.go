package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mbecker/reloquiz/internal/quiz"
)

const insertResponseSQL = `
INSERT INTO responses
  (user_id, openid, answers_json, total_score, recommendation, recommendation_text, extreme_choices, extreme_feedback)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

const responseByIDSQL = `
SELECT id, user_id, openid, answers_json, total_score, recommendation, recommendation_text, extreme_choices, extreme_feedback, created_at
FROM responses
WHERE id = $1 AND user_id = $2`

// ResponseRepository persists submission results.
type ResponseRepository struct {
	db Querier
}

var _ quiz.ResponseStore = (*ResponseRepository)(nil)

func NewResponseRepository(db Querier) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// Insert stores a scored submission and returns its id.
func (r *ResponseRepository) Insert(ctx context.Context, rec *quiz.ResponseRecord) (int64, error) {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return 0, fmt.Errorf("marshal answers: %w", err)
	}
	extremes, err := json.Marshal(rec.ExtremeChoices)
	if err != nil {
		return 0, fmt.Errorf("marshal extreme choices: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, insertResponseSQL,
		rec.UserID,
		rec.OpenID,
		answers,
		rec.TotalScore,
		rec.RecommendationCode,
		rec.RecommendationText,
		extremes,
		rec.ExtremeFeedback,
	).Scan(&id)
	if err != nil {
		return 0, wrapTransient(fmt.Errorf("insert response: %w", err))
	}
	return id, nil
}

// GetByID fetches a response scoped to its owner.
func (r *ResponseRepository) GetByID(ctx context.Context, id, userID int64) (*quiz.ResponseRecord, error) {
	var (
		rec      quiz.ResponseRecord
		answers  []byte
		extremes []byte
	)
	err := r.db.QueryRow(ctx, responseByIDSQL, id, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.OpenID,
		&answers,
		&rec.TotalScore,
		&rec.RecommendationCode,
		&rec.RecommendationText,
		&extremes,
		&rec.ExtremeFeedback,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, quiz.ErrResponseNotFound
		}
		return nil, wrapTransient(fmt.Errorf("get response: %w", err))
	}

	if err := json.Unmarshal(answers, &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for response %d: %w", id, err)
	}
	if err := json.Unmarshal(extremes, &rec.ExtremeChoices); err != nil {
		return nil, fmt.Errorf("decode extreme choices for response %d: %w", id, err)
	}
	return &rec, nil
}
