// Package metrics holds the Prometheus collectors for the scanner pipeline.
package metrics

import (
	"net/http"
	"time"

	"token-scanner/src/helpers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the scanner's own registry so tests and embedders are not tied to
// the global default one.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// ProviderFetchTotal counts upstream fetches by source and outcome
	ProviderFetchTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_provider_fetch_total",
		Help: "Upstream report fetches by source and outcome",
	}, []string{"source", "outcome"})

	// ProviderFetchDuration tracks upstream latency
	ProviderFetchDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scanner_provider_fetch_duration_seconds",
		Help:    "Upstream report fetch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.025, 2, 10), // 25ms to ~13s
	}, []string{"source"})

	// AnalysisTotal counts finished analyses by tier
	AnalysisTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_analysis_total",
		Help: "Finished analyses by risk tier",
	}, []string{"tier"})

	// AnalysisDegradedTotal counts analyses built without one or both reports
	AnalysisDegradedTotal = factory.NewCounter(prometheus.CounterOpts{
		Name: "scanner_analysis_degraded_total",
		Help: "Analyses where at least one upstream report was absent",
	})

	// AnalysisDuration tracks end-to-end analyze latency
	AnalysisDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "scanner_analysis_duration_seconds",
		Help:    "Analyze duration in seconds, fan-out included",
		Buckets: prometheus.ExponentialBuckets(0.025, 2, 10),
	})

	// NarrativeTotal counts narrative generations by result
	NarrativeTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "scanner_narrative_total",
		Help: "Narrative generations by backend and result",
	}, []string{"backend", "result"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the scanner registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// ObserveFetch records one upstream fetch. A nil err counts as "ok".
func ObserveFetch(source string, start time.Time, err error) {
	ProviderFetchTotal.WithLabelValues(source, helpers.Outcome(err)).Inc()
	ProviderFetchDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}
