package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/quiz"
)

// Options carries the already-resolved quota decisions. The toggle is
// wired in at construction; nothing here reads environment state at
// request time.
type Options struct {
	Enabled       bool
	DailyAttempts int
}

// Limiter tracks per-respondent daily attempts in Redis: a per-day used
// counter that expires at midnight UTC plus a persistent bonus credit
// balance earned through share rewards. Redis trouble degrades open -
// a broken counter must never lock respondents out.
type Limiter struct {
	client *redis.Client
	opts   Options
	logger zerolog.Logger
}

var _ quiz.AttemptLimiter = (*Limiter)(nil)

func NewLimiter(client *redis.Client, opts Options, logger zerolog.Logger) *Limiter {
	if opts.DailyAttempts <= 0 {
		opts.DailyAttempts = 1
	}
	return &Limiter{
		client: client,
		opts:   opts,
		logger: logger.With().Str("component", "quota_limiter").Logger(),
	}
}

func usedKey(openid string, now time.Time) string {
	return fmt.Sprintf("quota:used:%s:%s", openid, now.UTC().Format("2006-01-02"))
}

func bonusKey(openid string) string {
	return "quota:bonus:" + openid
}

// Check reports whether the respondent may answer now and how many
// attempts remain today.
func (l *Limiter) Check(ctx context.Context, openid string) (quiz.AttemptStatus, error) {
	if !l.opts.Enabled {
		return quiz.AttemptStatus{CanAnswer: true, Remaining: l.opts.DailyAttempts, Message: "daily limit disabled"}, nil
	}

	now := time.Now()
	used, err := l.client.Get(ctx, usedKey(openid, now)).Int()
	if err != nil && err != redis.Nil {
		l.logger.Warn().Err(err).Str("openid", openid).Msg("quota check failed, allowing attempt")
		return quiz.AttemptStatus{CanAnswer: true, Remaining: 1, Message: "quota check unavailable"}, nil
	}

	bonus, err := l.client.Get(ctx, bonusKey(openid)).Int()
	if err != nil && err != redis.Nil {
		bonus = 0
	}

	remaining := l.opts.DailyAttempts + bonus - used
	if remaining < 0 {
		remaining = 0
	}
	status := quiz.AttemptStatus{
		CanAnswer: remaining > 0,
		Remaining: remaining,
	}
	if status.CanAnswer {
		status.Message = fmt.Sprintf("%d attempt(s) remaining today", remaining)
	} else {
		status.Message = "you have used up today's attempts, come back tomorrow"
	}
	return status, nil
}

// Consume records one used attempt. The daily counter expires at the
// next midnight UTC.
func (l *Limiter) Consume(ctx context.Context, openid string) error {
	if !l.opts.Enabled {
		return nil
	}

	now := time.Now()
	key := usedKey(openid, now)
	if err := l.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("increment attempt counter: %w", err)
	}

	midnight := now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	if err := l.client.ExpireAt(ctx, key, midnight).Err(); err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("failed to set counter expiry")
	}
	return nil
}

// AddBonus grants extra attempts that persist across days.
func (l *Limiter) AddBonus(ctx context.Context, openid string, n int) error {
	if err := l.client.IncrBy(ctx, bonusKey(openid), int64(n)).Err(); err != nil {
		return fmt.Errorf("add bonus attempts: %w", err)
	}
	return nil
}
