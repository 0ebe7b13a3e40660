package flux

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dosewatch",
		Subsystem: "flux",
		Name:      "fetch_total",
		Help:      "Flux fetches by outcome (live or fallback) and failure kind.",
	}, []string{"outcome", "kind"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "dosewatch",
		Subsystem: "flux",
		Name:      "fetch_duration_seconds",
		Help:      "Wall time of flux fetches including failures.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)
