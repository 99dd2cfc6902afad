// Package metrics exposes Prometheus counters for play activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	XPAwarded       *prometheus.CounterVec
	LevelsSolved    *prometheus.CounterVec
	Answers         *prometheus.CounterVec
	PersistFailures prometheus.Counter
	ContentErrors   *prometheus.CounterVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		XPAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playarcade_xp_awarded_total",
			Help: "Experience points awarded, by reason.",
		}, []string{"reason"}),
		LevelsSolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playarcade_levels_solved_total",
			Help: "Levels solved, by mode and grade.",
		}, []string{"mode", "grade"}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playarcade_answers_total",
			Help: "Submitted answers, by mode and result.",
		}, []string{"mode", "result"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "playarcade_persist_failures_total",
			Help: "Progress writes that failed and were kept in memory only.",
		}),
		ContentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "playarcade_content_errors_total",
			Help: "Content loads that failed, by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.XPAwarded,
		m.LevelsSolved,
		m.Answers,
		m.PersistFailures,
		m.ContentErrors,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nil-safe recording helpers, so components can run without metrics.

func (m *Metrics) AddXP(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.XPAwarded.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) LevelSolved(mode, grade string) {
	if m == nil {
		return
	}
	m.LevelsSolved.WithLabelValues(mode, grade).Inc()
}

func (m *Metrics) Answer(mode string, correct bool) {
	if m == nil {
		return
	}
	result := "wrong"
	if correct {
		result = "correct"
	}
	m.Answers.WithLabelValues(mode, result).Inc()
}

func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) ContentError(kind string) {
	if m == nil {
		return
	}
	m.ContentErrors.WithLabelValues(kind).Inc()
}
