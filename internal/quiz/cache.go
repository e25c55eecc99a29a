package quiz

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultRuleCacheTTL = 5 * time.Minute

// RuleCache is a Redis-backed read-through cache in front of a
// RuleSource. Rules change rarely but are consulted on every submission,
// so a short TTL takes the rule table off the hot path. Any cache
// failure falls through to the underlying source.
type RuleCache struct {
	source RuleSource
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

var _ RuleSource = (*RuleCache)(nil)

func NewRuleCache(source RuleSource, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RuleCache {
	if ttl <= 0 {
		ttl = defaultRuleCacheTTL
	}
	return &RuleCache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "rule_cache").Logger(),
	}
}

func (c *RuleCache) key(ruleType RuleType) string {
	return "rules:" + string(ruleType)
}

func (c *RuleCache) FetchRules(ctx context.Context, ruleType RuleType) ([]Rule, error) {
	if data, err := c.client.Get(ctx, c.key(ruleType)).Bytes(); err == nil {
		var rules []Rule
		if err := json.Unmarshal(data, &rules); err == nil {
			return rules, nil
		}
		c.logger.Warn().Str("rule_type", string(ruleType)).Msg("discarding undecodable cached rules")
	} else if err != redis.Nil {
		c.logger.Warn().Err(err).Str("rule_type", string(ruleType)).Msg("rule cache read failed")
	}

	rules, err := c.source.FetchRules(ctx, ruleType)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rules); err == nil {
		if err := c.client.Set(ctx, c.key(ruleType), data, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Str("rule_type", string(ruleType)).Msg("rule cache write failed")
		}
	}
	return rules, nil
}
