package provider

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CompletionMetricsRecorder defines the interface for recording completion
// call metrics. Abstracting the recorder keeps Prometheus out of unit tests:
// inject a mock recorder instead.
type CompletionMetricsRecorder interface {
	// RecordDuration records the time taken by one completion call.
	RecordDuration(backend string, duration time.Duration)

	// RecordOutputUnits records the estimated unit length of a completion.
	RecordOutputUnits(units int)

	// RecordCall counts a completion attempt, successful or not.
	RecordCall(backend string)

	// RecordFailure counts a failed completion by error class.
	RecordFailure(backend, class string)
}

// PrometheusCompletionMetrics implements CompletionMetricsRecorder using
// Prometheus metrics. This is the production implementation.
type PrometheusCompletionMetrics struct {
	durationHistogram *prometheus.HistogramVec
	outputHistogram   prometheus.Histogram
	callCounter       *prometheus.CounterVec
	failureCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusCompletionMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogramVec gets an existing histogram vec or registers a new one.
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// getOrCreateHistogram gets an existing histogram or registers a new one.
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounterVec gets an existing counter vec or registers a new one.
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusCompletionMetrics creates the Prometheus-based recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusCompletionMetrics() *PrometheusCompletionMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusCompletionMetrics{
			durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "llm_completion_duration_seconds",
				Help:    "Time taken by one LLM completion call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"backend"}),
			outputHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "llm_completion_output_units",
				Help:    "Distribution of completion lengths in estimated units",
				Buckets: []float64{50, 100, 250, 500, 1000, 1500, 2500, 5000},
			}),
			callCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "llm_completion_calls_total",
				Help: "Total LLM completion attempts by backend",
			}, []string{"backend"}),
			failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "llm_completion_failures_total",
				Help: "Total failed LLM completions by backend and error class",
			}, []string{"backend", "class"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordDuration implements CompletionMetricsRecorder.RecordDuration
func (p *PrometheusCompletionMetrics) RecordDuration(backend string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordOutputUnits implements CompletionMetricsRecorder.RecordOutputUnits
func (p *PrometheusCompletionMetrics) RecordOutputUnits(units int) {
	p.outputHistogram.Observe(float64(units))
}

// RecordCall implements CompletionMetricsRecorder.RecordCall
func (p *PrometheusCompletionMetrics) RecordCall(backend string) {
	p.callCounter.WithLabelValues(backend).Inc()
}

// RecordFailure implements CompletionMetricsRecorder.RecordFailure
func (p *PrometheusCompletionMetrics) RecordFailure(backend, class string) {
	p.failureCounter.WithLabelValues(backend, class).Inc()
}

// errorClass maps a normalized error onto a metrics label.
func errorClass(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, ErrTransient):
		return "transient"
	default:
		return "other"
	}
}
