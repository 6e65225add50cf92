package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Reactor metrics
	ActionsTotal    *prometheus.CounterVec
	MutationsTotal  *prometheus.CounterVec
	EffectsInFlight *prometheus.GaugeVec
	EffectDuration  *prometheus.HistogramVec
	EffectPanics    *prometheus.CounterVec
	ReactorsActive  prometheus.Gauge

	// Error accumulation metrics
	ErrorsCaptured *prometheus.CounterVec

	// API metrics
	APICalls    *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	// Snapshot for the CLI summary - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values
type Snapshot struct {
	Actions   int64
	Mutations int64
	Effects   int64
	Errors    int64
	APICalls  int64
	APIErrors int64
}

// NewMetrics creates a new metrics collector registered on reg.
// A nil reg uses a private registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Reactor metrics
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waos_reactor_actions_total",
				Help: "Total number of actions dispatched to reactors",
			},
			[]string{"reactor", "action"},
		),
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waos_reactor_mutations_total",
				Help: "Total number of mutations folded into reactor state",
			},
			[]string{"reactor", "mutation"},
		),
		EffectsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "waos_reactor_effects_in_flight",
				Help: "Number of asynchronous effects currently running",
			},
			[]string{"reactor"},
		),
		EffectDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waos_reactor_effect_duration_seconds",
				Help:    "Asynchronous effect duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"reactor"},
		),
		EffectPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waos_reactor_effect_panics_total",
				Help: "Total number of recovered effect panics",
			},
			[]string{"reactor"},
		),
		ReactorsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "waos_reactors_active",
				Help: "Number of live reactors",
			},
		),

		// Error accumulation metrics
		ErrorsCaptured: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waos_errors_captured_total",
				Help: "Total number of effect errors captured for display",
			},
			[]string{"kind"},
		),

		// API metrics
		APICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waos_api_calls_total",
				Help: "Total number of API calls",
			},
			[]string{"method", "path", "status"},
		),
		APIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "waos_api_duration_seconds",
				Help:    "API call duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
	}
}

// RecordAction records one dispatched action
func (m *Metrics) RecordAction(reactor, action string) {
	m.ActionsTotal.WithLabelValues(reactor, action).Inc()
	m.mu.Lock()
	m.snapshot.Actions++
	m.mu.Unlock()
}

// RecordMutation records one folded mutation
func (m *Metrics) RecordMutation(reactor, mutation string) {
	m.MutationsTotal.WithLabelValues(reactor, mutation).Inc()
	m.mu.Lock()
	m.snapshot.Mutations++
	m.mu.Unlock()
}

// EffectStarted marks an effect as in flight
func (m *Metrics) EffectStarted(reactor string) {
	m.EffectsInFlight.WithLabelValues(reactor).Inc()
}

// EffectFinished marks an effect as done and records its duration
func (m *Metrics) EffectFinished(reactor string, duration time.Duration) {
	m.EffectsInFlight.WithLabelValues(reactor).Dec()
	m.EffectDuration.WithLabelValues(reactor).Observe(duration.Seconds())
	m.mu.Lock()
	m.snapshot.Effects++
	m.mu.Unlock()
}

// RecordPanic records a recovered effect panic
func (m *Metrics) RecordPanic(reactor string) {
	m.EffectPanics.WithLabelValues(reactor).Inc()
}

// ReactorStarted increments the live reactor gauge
func (m *Metrics) ReactorStarted() {
	m.ReactorsActive.Inc()
}

// ReactorDisposed decrements the live reactor gauge
func (m *Metrics) ReactorDisposed() {
	m.ReactorsActive.Dec()
}

// RecordError records an error captured for display
func (m *Metrics) RecordError(kind string) {
	m.ErrorsCaptured.WithLabelValues(kind).Inc()
	m.mu.Lock()
	m.snapshot.Errors++
	m.mu.Unlock()
}

// RecordAPICall records an API call
func (m *Metrics) RecordAPICall(method, path, status string, duration time.Duration) {
	m.APICalls.WithLabelValues(method, path, status).Inc()
	m.APIDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.APICalls++
	if status == "error" || (len(status) > 0 && (status[0] == '4' || status[0] == '5')) {
		m.snapshot.APIErrors++
	}
	m.mu.Unlock()
}

// Snapshot returns a copy of the current values
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
