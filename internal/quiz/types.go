package quiz

import (
	"context"
	"time"
)

// SelectionSize is the fixed number of questions served per questionnaire.
const SelectionSize = 30

// Answer scale bounds.
const (
	AnswerMin = 1
	AnswerMax = 5
)

// Question is a single questionnaire item as served to clients.
// Weight is already normalized to a canonical decimal by the repository
// boundary; handlers and the core never see comma-decimal text.
type Question struct {
	ID            int64   `json:"id"`
	Text          string  `json:"text"`
	Weight        float64 `json:"weight"`
	Category      int     `json:"category"`
	CategoryLabel string  `json:"category_label,omitempty"`
}

// Answer is one respondent answer, matched back to a question by id.
type Answer struct {
	QuestionID int64 `json:"question_id"`
	Value      int   `json:"answer"`
}

// ExtremeChoice is an answer at either end of the 1-5 scale.
type ExtremeChoice struct {
	QuestionID int64   `json:"question_id"`
	Value      int     `json:"answer"`
	Category   int     `json:"category"`
	Weight     float64 `json:"weight"`
}

// CategoryExtremes aggregates sign-adjusted extreme signals per category.
// A question with negative weight rewards low raw answers, so its raw "5"
// counts as felt-low and its raw "1" as felt-high.
type CategoryExtremes struct {
	HasLow  bool
	HasHigh bool
	Label   string
}

// QuestionSource fetches the active question pool.
type QuestionSource interface {
	FetchActive(ctx context.Context) ([]Question, error)
}

// RuleSource fetches scoring/feedback rules of one type, ordered by
// priority descending.
type RuleSource interface {
	FetchRules(ctx context.Context, ruleType RuleType) ([]Rule, error)
}

// ResponseRecord is a persisted submission result.
type ResponseRecord struct {
	ID                 int64
	UserID             int64
	OpenID             string
	Answers            []Answer
	TotalScore         float64
	RecommendationCode string
	RecommendationText string
	ExtremeChoices     []ExtremeChoice
	ExtremeFeedback    string
	CreatedAt          time.Time
}

// ResponseStore persists and retrieves submission results.
type ResponseStore interface {
	Insert(ctx context.Context, rec *ResponseRecord) (int64, error)
	GetByID(ctx context.Context, id, userID int64) (*ResponseRecord, error)
}
