package quiz

import (
	"encoding/json"
	"fmt"
)

// RuleType discriminates the two rule families served by the rule store.
type RuleType string

const (
	RuleScoreInterval   RuleType = "score_interval"
	RuleExtremeFeedback RuleType = "extreme_feedback"
)

// ExtremeDirection is the sign-adjusted side of the answer scale an
// extreme_feedback rule speaks to.
type ExtremeDirection string

const (
	ExtremeLow  ExtremeDirection = "low"
	ExtremeHigh ExtremeDirection = "high"
)

// ScoreInterval is the condition payload of a score_interval rule.
type ScoreInterval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ExtremeCondition is the condition payload of an extreme_feedback rule.
type ExtremeCondition struct {
	Category  int              `json:"category"`
	Direction ExtremeDirection `json:"extreme_type"`
}

// Rule is one row of the external rule store. Exactly one of Interval and
// Extreme is set, keyed by Type; the store boundary rejects rows that do
// not decode into that shape, so the composer and resolver never deal
// with malformed condition documents.
type Rule struct {
	ID       int64
	Type     RuleType
	Interval *ScoreInterval
	Extreme  *ExtremeCondition
	Priority int
	Text     string
}

// DecodeRuleCondition parses a raw condition document against the shape
// its rule type requires.
func DecodeRuleCondition(ruleType RuleType, raw []byte) (*ScoreInterval, *ExtremeCondition, error) {
	switch ruleType {
	case RuleScoreInterval:
		var iv ScoreInterval
		if err := strictUnmarshal(raw, &iv); err != nil {
			return nil, nil, fmt.Errorf("score_interval condition: %w", err)
		}
		if iv.Min > iv.Max {
			return nil, nil, fmt.Errorf("score_interval condition: min %v exceeds max %v", iv.Min, iv.Max)
		}
		return &iv, nil, nil
	case RuleExtremeFeedback:
		var ec ExtremeCondition
		if err := strictUnmarshal(raw, &ec); err != nil {
			return nil, nil, fmt.Errorf("extreme_feedback condition: %w", err)
		}
		if ec.Direction != ExtremeLow && ec.Direction != ExtremeHigh {
			return nil, nil, fmt.Errorf("extreme_feedback condition: unknown extreme_type %q", ec.Direction)
		}
		return nil, &ec, nil
	default:
		return nil, nil, fmt.Errorf("unknown rule type %q", ruleType)
	}
}

func strictUnmarshal(raw []byte, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty condition document")
	}
	return json.Unmarshal(raw, v)
}
