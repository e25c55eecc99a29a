package quiz

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SegmentSeparator joins feedback segments. The client splits on it to
// render one segment per visual block.
const SegmentSeparator = " ||| "

// NeutralFeedback is returned when no category carries an extreme signal
// or no rule produced a segment.
const NeutralFeedback = "Your answers stay close to the middle of the scale; nothing stands out as particularly strong or weak."

const contradictionTemplate = "Your answers about %s pull in both directions - some very positive, some very negative. It may be worth revisiting how you really feel about this area."

// Composer renders ordered natural-language feedback from per-category
// extreme signals, using extreme_feedback rules for the one-sided cases.
type Composer struct {
	rules  RuleSource
	logger zerolog.Logger
}

func NewComposer(rules RuleSource, logger zerolog.Logger) *Composer {
	return &Composer{
		rules:  rules,
		logger: logger.With().Str("component", "feedback_composer").Logger(),
	}
}

// Compose turns category extremes into a segmented feedback string.
// Contradictory categories (both flags) get a fixed templated sentence
// naming the category; one-sided categories get the first matching
// extreme_feedback rule text, or nothing if no rule matches. Segments
// are ordered by category id, with contradiction before high before low.
// Rule store failure degrades to the neutral message - feedback is
// advisory and never blocks a submission.
func (c *Composer) Compose(ctx context.Context, extremes map[int]CategoryExtremes) string {
	if len(extremes) == 0 {
		return NeutralFeedback
	}

	flagged := false
	for _, e := range extremes {
		if e.HasLow || e.HasHigh {
			flagged = true
			break
		}
	}
	if !flagged {
		return NeutralFeedback
	}

	var rules []Rule
	needRules := false
	for _, e := range extremes {
		if e.HasLow != e.HasHigh {
			needRules = true
			break
		}
	}
	if needRules {
		var err error
		rules, err = c.rules.FetchRules(ctx, RuleExtremeFeedback)
		if err != nil {
			c.logger.Warn().Err(err).Msg("rule store unavailable, using neutral feedback")
			ruleFallbacks.WithLabelValues("feedback").Inc()
			return NeutralFeedback
		}
	}

	categories := make([]int, 0, len(extremes))
	for cat := range extremes {
		categories = append(categories, cat)
	}
	sort.Ints(categories)

	var segments []string
	for _, cat := range categories {
		e := extremes[cat]
		switch {
		case e.HasLow && e.HasHigh:
			segments = append(segments, fmt.Sprintf(contradictionTemplate, categoryName(cat, e.Label)))
		case e.HasHigh:
			if text, ok := lookupExtremeRule(rules, cat, ExtremeHigh); ok {
				segments = append(segments, text)
			}
		case e.HasLow:
			if text, ok := lookupExtremeRule(rules, cat, ExtremeLow); ok {
				segments = append(segments, text)
			}
		}
	}

	if len(segments) == 0 {
		return NeutralFeedback
	}
	return strings.Join(segments, SegmentSeparator)
}

// GenerateFeedback is the CSV form of Compose: each argument is a
// comma-separated list of category codes that showed felt-low or
// felt-high extremes. A category present in both lists is treated as
// contradictory. Labels are not carried in this form, so contradiction
// sentences fall back to the numeric category name.
func (c *Composer) GenerateFeedback(ctx context.Context, lowCSV, highCSV string) string {
	extremes := make(map[int]CategoryExtremes)
	for _, cat := range parseCategoryCSV(lowCSV) {
		entry := extremes[cat]
		entry.HasLow = true
		extremes[cat] = entry
	}
	for _, cat := range parseCategoryCSV(highCSV) {
		entry := extremes[cat]
		entry.HasHigh = true
		extremes[cat] = entry
	}
	return c.Compose(ctx, extremes)
}

func lookupExtremeRule(rules []Rule, category int, direction ExtremeDirection) (string, bool) {
	// Rules arrive ordered by priority descending; first match wins.
	for _, rule := range rules {
		if rule.Extreme == nil {
			continue
		}
		if rule.Extreme.Category == category && rule.Extreme.Direction == direction {
			return rule.Text, true
		}
	}
	return "", false
}

func categoryName(category int, label string) string {
	if label != "" {
		return label
	}
	return "category " + strconv.Itoa(category)
}

func parseCategoryCSV(csv string) []int {
	var cats []int
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		cat, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		cats = append(cats, cat)
	}
	return cats
}
