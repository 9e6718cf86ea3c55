package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	findingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "subjuntivo",
		Name:      "findings_total",
		Help:      "Subjunctive verbs found, by strategy that produced them.",
	}, []string{"strategy"})

	degradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "subjuntivo",
		Name:      "degraded_responses_total",
		Help:      "Responses that carry warnings, such as a remote fallback.",
	}, []string{"strategy"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "subjuntivo",
		Name:      "cache_lookups_total",
		Help:      "Result cache lookups by outcome.",
	}, []string{"outcome"})
)
