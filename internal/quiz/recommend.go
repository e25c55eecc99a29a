package quiz

import (
	"context"
	"math"

	"github.com/rs/zerolog"
)

// FallbackRecommendation is returned whenever no score_interval rule
// matches or the rule store cannot be reached. Recommendation text is
// advisory, so store trouble degrades here instead of failing the
// submission.
const FallbackRecommendation = "Based on your answers, we suggest taking a closer look at what relocating to Germany would involve for you."

// levelIntervals are the canonical score intervals per recommendation
// level. Rule rows are matched against these exact bounds; the seed
// migration inserts one row per interval.
var levelIntervals = [6]ScoreInterval{
	{Min: 0, Max: 10},
	{Min: 11, Max: 50},
	{Min: 51, Max: 90},
	{Min: 91, Max: 130},
	{Min: 131, Max: 169},
	{Min: 170, Max: 999},
}

// RecommendationLevel maps a total score to a discrete 0-5 tier. The
// ceiling is applied first; out-of-range scores clamp to the outermost
// levels. The boundaries are a fixed contract: 10 is still level 0, 11
// through 50 is level 1, and so on up to 170 and above at level 5.
func RecommendationLevel(score float64) int {
	c := int(math.Ceil(score))
	switch {
	case c <= 10:
		return 0
	case c <= 50:
		return 1
	case c <= 90:
		return 2
	case c <= 130:
		return 3
	case c <= 169:
		return 4
	default:
		return 5
	}
}

// Recommender resolves level text against the rule store.
type Recommender struct {
	rules  RuleSource
	logger zerolog.Logger
}

func NewRecommender(rules RuleSource, logger zerolog.Logger) *Recommender {
	return &Recommender{
		rules:  rules,
		logger: logger.With().Str("component", "recommender").Logger(),
	}
}

// Text returns the stored recommendation for a level, or the fixed
// fallback when no rule matches the level's canonical interval or the
// store is unreachable.
func (r *Recommender) Text(ctx context.Context, level int) string {
	if level < 0 || level >= len(levelIntervals) {
		return FallbackRecommendation
	}
	interval := levelIntervals[level]

	rules, err := r.rules.FetchRules(ctx, RuleScoreInterval)
	if err != nil {
		r.logger.Warn().Err(err).Int("level", level).Msg("rule store unavailable, using fallback recommendation")
		ruleFallbacks.WithLabelValues("recommendation").Inc()
		return FallbackRecommendation
	}

	for _, rule := range rules {
		if rule.Interval == nil {
			continue
		}
		if rule.Interval.Min == interval.Min && rule.Interval.Max == interval.Max {
			return rule.Text
		}
	}
	return FallbackRecommendation
}
