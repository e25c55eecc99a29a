package quota

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/quiz"
)

// shareStore is the slice of the user repository the reward flow needs.
type shareStore interface {
	IncrementShareCount(ctx context.Context, id int64) (first bool, err error)
}

// bonusGranter is the slice of the limiter the reward flow needs.
type bonusGranter interface {
	AddBonus(ctx context.Context, openid string, n int) error
	Check(ctx context.Context, openid string) (quiz.AttemptStatus, error)
}

// ShareRewarder grants a one-time bonus attempt for sharing the result.
// The users.share_count column is the idempotency guard; the increment
// reports whether this share was the first.
type ShareRewarder struct {
	users   shareStore
	limiter bonusGranter
	logger  zerolog.Logger
}

func NewShareRewarder(users shareStore, limiter bonusGranter, logger zerolog.Logger) *ShareRewarder {
	return &ShareRewarder{
		users:   users,
		limiter: limiter,
		logger:  logger.With().Str("component", "share_rewarder").Logger(),
	}
}

// RewardResult reports the outcome of a share reward request.
type RewardResult struct {
	Rewarded bool               `json:"rewarded"`
	Status   quiz.AttemptStatus `json:"status"`
	Message  string             `json:"message"`
}

// Reward grants one bonus attempt for the user's first share. Repeat
// shares are acknowledged but grant nothing.
func (s *ShareRewarder) Reward(ctx context.Context, userID int64, openid string) (*RewardResult, error) {
	first, err := s.users.IncrementShareCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("record share: %w", err)
	}

	result := &RewardResult{}
	if first {
		if err := s.limiter.AddBonus(ctx, openid, 1); err != nil {
			return nil, fmt.Errorf("grant share bonus: %w", err)
		}
		result.Rewarded = true
		result.Message = "share recorded, one extra attempt granted"
	} else {
		result.Message = "share bonus already claimed"
	}

	status, err := s.limiter.Check(ctx, openid)
	if err == nil {
		result.Status = status
	}
	s.logger.Info().Int64("user_id", userID).Bool("rewarded", result.Rewarded).Msg("share reward processed")
	return result, nil
}
