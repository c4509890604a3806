// Package metrics provides Prometheus metrics for the rental-yield pipeline.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the outcome label of the runs counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePanic   = "panic"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Run outcome
	runs            *prometheus.CounterVec
	lastRunDuration prometheus.Gauge
	peakHeapBytes   prometheus.Gauge

	// Data volume per stage
	rowsLoaded     prometheus.Gauge
	rowsQualifying prometheus.Gauge
	suburbsRanked  prometheus.Gauge

	// Stage timings
	stageDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "rentyield",
		subsystem: "pipeline",
		// Stages run from microseconds (rank) to tens of seconds (load of a large file).
		histogramBuckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "runs_total",
			Help:        "Total number of pipeline runs by outcome",
			ConstLabels: m.constLabels,
		},
		[]string{"outcome"},
	)

	m.lastRunDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_duration_seconds",
		Help:        "Wall time of the most recent run",
		ConstLabels: m.constLabels,
	})

	m.peakHeapBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "peak_heap_bytes",
		Help:        "Highest heap allocation sampled during the most recent run",
		ConstLabels: m.constLabels,
	})

	m.rowsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_loaded",
		Help:        "Listings read from the input table in the most recent run",
		ConstLabels: m.constLabels,
	})

	m.rowsQualifying = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_qualifying",
		Help:        "Listings above the yield threshold in the most recent run",
		ConstLabels: m.constLabels,
	})

	m.suburbsRanked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "suburbs_ranked",
		Help:        "Suburbs written to the report in the most recent run",
		ConstLabels: m.constLabels,
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "stage_duration_seconds",
			Help:        "Duration of each pipeline stage",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"stage"},
	)
}

// RecordRun counts a finished run and its wall time.
func (m *Manager) RecordRun(outcome string, elapsed time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	m.lastRunDuration.Set(elapsed.Seconds())
}

// ObserveStage records the duration of one stage.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// SetPeakHeap sets the peak heap gauge.
func (m *Manager) SetPeakHeap(bytes uint64) { m.peakHeapBytes.Set(float64(bytes)) }

// SetRowsLoaded sets the loaded rows gauge.
func (m *Manager) SetRowsLoaded(n int) { m.rowsLoaded.Set(float64(n)) }

// SetRowsQualifying sets the qualifying rows gauge.
func (m *Manager) SetRowsQualifying(n int) { m.rowsQualifying.Set(float64(n)) }

// SetSuburbsRanked sets the ranked suburbs gauge.
func (m *Manager) SetSuburbsRanked(n int) { m.suburbsRanked.Set(float64(n)) }

// RecordRun counts a finished run on the global manager.
func RecordRun(outcome string, elapsed time.Duration) {
	globalManager.RecordRun(outcome, elapsed)
}

// ObserveStage records a stage duration on the global manager.
func ObserveStage(stage string, d time.Duration) {
	globalManager.ObserveStage(stage, d)
}

// SetPeakHeap sets the peak heap gauge on the global manager.
func SetPeakHeap(bytes uint64) {
	globalManager.SetPeakHeap(bytes)
}

// SetRowsLoaded sets the loaded rows gauge on the global manager.
func SetRowsLoaded(n int) {
	globalManager.SetRowsLoaded(n)
}

// SetRowsQualifying sets the qualifying rows gauge on the global manager.
func SetRowsQualifying(n int) {
	globalManager.SetRowsQualifying(n)
}

// SetSuburbsRanked sets the ranked suburbs gauge on the global manager.
func SetSuburbsRanked(n int) {
	globalManager.SetSuburbsRanked(n)
}

// Global returns the process-wide manager registered on GetRegistry.
func Global() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the custom registry to path in the text exposition
// format read by the node exporter's textfile collector. The file is replaced
// atomically.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(customRegistry, path)
}

// WriteTextfileFrom writes the metrics gathered from g to path.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTextfile, path, err)
	}
	return nil
}
