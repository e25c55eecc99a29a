package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mbecker/reloquiz/internal/quiz"
)

const activeQuestionsSQL = `
SELECT id, q_text, weight, cat, cat_label
FROM questions
WHERE status = 1
ORDER BY id`

// QuestionRepository reads the active question bank. Weight text is
// normalized here so the rest of the system only ever sees canonical
// decimals.
type QuestionRepository struct {
	db Querier
}

var _ quiz.QuestionSource = (*QuestionRepository)(nil)

func NewQuestionRepository(db Querier) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// FetchActive returns every enabled question. A weight that fails to
// parse is a data fault and fails the whole fetch rather than silently
// shrinking the pool.
func (r *QuestionRepository) FetchActive(ctx context.Context) ([]quiz.Question, error) {
	rows, err := r.db.Query(ctx, activeQuestionsSQL)
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("query active questions: %w", err))
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var (
			q         quiz.Question
			rawWeight string
			label     pgtype.Text
		)
		if err := rows.Scan(&q.ID, &q.Text, &rawWeight, &q.Category, &label); err != nil {
			return nil, wrapTransient(fmt.Errorf("scan question: %w", err))
		}
		weight, err := quiz.ParseWeight(rawWeight)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", q.ID, err)
		}
		q.Weight = weight
		q.CategoryLabel = label.String
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapTransient(fmt.Errorf("iterate questions: %w", err))
	}
	return questions, nil
}
