package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// AttemptStatus reports whether a respondent may take the questionnaire
// right now and how many attempts remain.
type AttemptStatus struct {
	CanAnswer bool   `json:"canAnswer"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}

// AttemptLimiter gates submissions per respondent. Implementations must
// degrade open on their own infrastructure failures; the quiz flow never
// blocks on a broken counter.
type AttemptLimiter interface {
	Check(ctx context.Context, openid string) (AttemptStatus, error)
	Consume(ctx context.Context, openid string) error
}

// ServiceOptions carries already-resolved runtime decisions. Quota
// toggles live here, not in ambient globals.
type ServiceOptions struct {
	RetryAttempts int           // total attempts against stores, default 3
	RetryBackoff  time.Duration // fixed delay between attempts, default 1s
}

// Service runs the full questionnaire pipeline: selection, validation,
// scoring, recommendation, extreme analysis, feedback and persistence.
type Service struct {
	questions   QuestionSource
	responses   ResponseStore
	limiter     AttemptLimiter
	recommender *Recommender
	composer    *Composer
	opts        ServiceOptions
	logger      zerolog.Logger
}

func NewService(questions QuestionSource, rules RuleSource, responses ResponseStore, limiter AttemptLimiter, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}
	return &Service{
		questions:   questions,
		responses:   responses,
		limiter:     limiter,
		recommender: NewRecommender(rules, logger),
		composer:    NewComposer(rules, logger),
		opts:        opts,
		logger:      logger.With().Str("component", "quiz_service").Logger(),
	}
}

// SubmissionResult is the assembled outcome of one submission.
type SubmissionResult struct {
	ResponseID         int64           `json:"response_id"`
	TotalScore         float64         `json:"total_score"`
	Level              int             `json:"level"`
	RecommendationCode string          `json:"recommendation_code"`
	RecommendationText string          `json:"recommendation_text"`
	ExtremeFeedback    string          `json:"extreme_feedback"`
	ExtremeChoices     []ExtremeChoice `json:"extreme_choices"`
}

// SelectQuestions fetches the active pool and draws a fresh stratified
// 30-question selection.
func (s *Service) SelectQuestions(ctx context.Context) ([]Question, error) {
	pool, err := s.fetchActive(ctx)
	if err != nil {
		return nil, err
	}
	selection, err := Select(pool)
	if err != nil {
		var exhausted *PoolExhaustedError
		if errors.As(err, &exhausted) {
			poolExhaustedTotal.Inc()
			s.logger.Error().Str("detail", exhausted.Error()).Msg("question bank cannot satisfy selection constraints")
		}
		return nil, err
	}
	return selection, nil
}

// CheckPermission reports remaining attempts for a respondent.
func (s *Service) CheckPermission(ctx context.Context, openid string) (AttemptStatus, error) {
	return s.limiter.Check(ctx, openid)
}

// Submit validates and scores a completed questionnaire, resolves the
// recommendation tier and extreme feedback, persists the result and
// consumes one attempt. Recommendation text and feedback degrade to
// fallbacks on rule store trouble; everything else fails loudly.
func (s *Service) Submit(ctx context.Context, userID int64, openid string, answers []Answer) (*SubmissionResult, error) {
	status, err := s.limiter.Check(ctx, openid)
	if err != nil {
		return nil, fmt.Errorf("check attempt limit: %w", err)
	}
	if !status.CanAnswer {
		submissionsTotal.WithLabelValues("limited").Inc()
		return nil, ErrDailyLimitReached
	}

	questions, err := s.fetchActive(ctx)
	if err != nil {
		submissionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := ValidateAnswers(answers, questions); err != nil {
		submissionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	score := CalculateScore(answers, questions)
	level := RecommendationLevel(score)
	text := s.recommender.Text(ctx, level)

	extremes := FindExtremeChoices(answers, questions)
	categories := ExtremeCategories(extremes, questions)
	feedback := s.composer.Compose(ctx, categories)

	rec := &ResponseRecord{
		UserID:             userID,
		OpenID:             openid,
		Answers:            answers,
		TotalScore:         score,
		RecommendationCode: fmt.Sprintf("level_%d", level),
		RecommendationText: text,
		ExtremeChoices:     extremes,
		ExtremeFeedback:    feedback,
	}

	var responseID int64
	err = s.withRetry(ctx, func(ctx context.Context) error {
		id, err := s.responses.Insert(ctx, rec)
		if err != nil {
			return err
		}
		responseID = id
		return nil
	})
	if err != nil {
		submissionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persist response: %w", err)
	}

	if err := s.limiter.Consume(ctx, openid); err != nil {
		// The response is saved; losing one counter tick is acceptable.
		s.logger.Warn().Err(err).Str("openid", openid).Msg("failed to consume attempt")
	}

	submissionsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().
		Int64("response_id", responseID).
		Float64("total_score", score).
		Int("level", level).
		Int("extreme_choices", len(extremes)).
		Msg("submission scored")

	return &SubmissionResult{
		ResponseID:         responseID,
		TotalScore:         score,
		Level:              level,
		RecommendationCode: rec.RecommendationCode,
		RecommendationText: text,
		ExtremeFeedback:    feedback,
		ExtremeChoices:     extremes,
	}, nil
}

// Response fetches a stored result scoped to its owner.
func (s *Service) Response(ctx context.Context, id, userID int64) (*ResponseRecord, error) {
	var rec *ResponseRecord
	err := s.withRetry(ctx, func(ctx context.Context) error {
		r, err := s.responses.GetByID(ctx, id, userID)
		if err != nil {
			return err
		}
		rec = r
		return nil
	})
	return rec, err
}

// GenerateFeedback exposes the CSV form of the feedback composer for
// callers that carry felt-low/felt-high category lists instead of
// analyzer output.
func (s *Service) GenerateFeedback(ctx context.Context, lowCSV, highCSV string) string {
	return s.composer.GenerateFeedback(ctx, lowCSV, highCSV)
}

func (s *Service) fetchActive(ctx context.Context) ([]Question, error) {
	var pool []Question
	err := s.withRetry(ctx, func(ctx context.Context) error {
		qs, err := s.questions.FetchActive(ctx)
		if err != nil {
			return err
		}
		pool = qs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch active questions: %w", err)
	}
	return pool, nil
}

// withRetry runs op up to RetryAttempts times with fixed backoff,
// retrying only errors the repositories marked transient.
func (s *Service) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(s.opts.RetryAttempts-1), retry.NewConstant(s.opts.RetryBackoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}
