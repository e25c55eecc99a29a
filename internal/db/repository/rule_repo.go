package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mbecker/reloquiz/internal/quiz"
)

const rulesByTypeSQL = `
SELECT id, rule_type, condition_json, priority, result_text
FROM score_rules
WHERE rule_type = $1 AND status = 1
ORDER BY priority DESC, id`

// RuleRepository reads score and feedback rules. Condition documents are
// decoded and validated here; rows that do not match their rule type's
// shape are dropped with a warning instead of surfacing deep inside the
// composer.
type RuleRepository struct {
	db     Querier
	logger zerolog.Logger
}

var _ quiz.RuleSource = (*RuleRepository)(nil)

func NewRuleRepository(db Querier, logger zerolog.Logger) *RuleRepository {
	return &RuleRepository{
		db:     db,
		logger: logger.With().Str("component", "rule_repository").Logger(),
	}
}

// FetchRules returns active rules of one type ordered by priority
// descending.
func (r *RuleRepository) FetchRules(ctx context.Context, ruleType quiz.RuleType) ([]quiz.Rule, error) {
	rows, err := r.db.Query(ctx, rulesByTypeSQL, string(ruleType))
	if err != nil {
		return nil, wrapTransient(fmt.Errorf("query rules: %w", err))
	}
	defer rows.Close()

	var rules []quiz.Rule
	for rows.Next() {
		var (
			rule      quiz.Rule
			rawType   string
			condition []byte
		)
		if err := rows.Scan(&rule.ID, &rawType, &condition, &rule.Priority, &rule.Text); err != nil {
			return nil, wrapTransient(fmt.Errorf("scan rule: %w", err))
		}
		rule.Type = quiz.RuleType(rawType)

		interval, extreme, err := quiz.DecodeRuleCondition(rule.Type, condition)
		if err != nil {
			r.logger.Warn().Err(err).Int64("rule_id", rule.ID).Msg("dropping malformed rule")
			continue
		}
		rule.Interval = interval
		rule.Extreme = extreme
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapTransient(fmt.Errorf("iterate rules: %w", err))
	}
	return rules, nil
}
