package quiz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_submissions_total",
		Help: "Questionnaire submissions by outcome.",
	}, []string{"outcome"})

	poolExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiz_pool_exhausted_total",
		Help: "Selection attempts that failed because the question bank cannot satisfy the distribution constraints.",
	})

	ruleFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiz_rule_fallback_total",
		Help: "Rule store lookups that degraded to fallback text.",
	}, []string{"kind"})
)
