package quiz

import (
	"context"
	"fmt"
)

type stubQuestionSource struct {
	fetch func(ctx context.Context) ([]Question, error)
}

func (s *stubQuestionSource) FetchActive(ctx context.Context) ([]Question, error) {
	return s.fetch(ctx)
}

type stubRuleSource struct {
	rules map[RuleType][]Rule
	err   error
	calls int
}

func (s *stubRuleSource) FetchRules(_ context.Context, ruleType RuleType) ([]Rule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rules[ruleType], nil
}

type stubResponseStore struct {
	insert   func(ctx context.Context, rec *ResponseRecord) (int64, error)
	getByID  func(ctx context.Context, id, userID int64) (*ResponseRecord, error)
	inserted []*ResponseRecord
}

func (s *stubResponseStore) Insert(ctx context.Context, rec *ResponseRecord) (int64, error) {
	s.inserted = append(s.inserted, rec)
	if s.insert != nil {
		return s.insert(ctx, rec)
	}
	return int64(len(s.inserted)), nil
}

func (s *stubResponseStore) GetByID(ctx context.Context, id, userID int64) (*ResponseRecord, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

type stubLimiter struct {
	status   AttemptStatus
	checkErr error
	consumed []string
}

func (s *stubLimiter) Check(_ context.Context, openid string) (AttemptStatus, error) {
	return s.status, s.checkErr
}

func (s *stubLimiter) Consume(_ context.Context, openid string) error {
	s.consumed = append(s.consumed, openid)
	return nil
}

func allowAll() *stubLimiter {
	return &stubLimiter{status: AttemptStatus{CanAnswer: true, Remaining: 1}}
}

// balancedPool builds a bank of 6 categories x 6 questions whose weight
// mix (-1, 1, 1, 1.5, 1.5, 2 per category) comfortably satisfies the
// bucket and coverage minima.
func balancedPool() []Question {
	weights := []float64{-1, 1, 1, 1.5, 1.5, 2}
	var pool []Question
	id := int64(0)
	for cat := 1; cat <= 6; cat++ {
		for _, w := range weights {
			id++
			pool = append(pool, Question{
				ID:            id,
				Text:          fmt.Sprintf("question %d", id),
				Weight:        w,
				Category:      cat,
				CategoryLabel: fmt.Sprintf("area %d", cat),
			})
		}
	}
	return pool
}
