// Package metrics exposes Prometheus collectors for tunnels sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry, so tests and several
// servers in one process never collide on the default registry.
type Metrics struct {
	registry *prometheus.Registry

	Presses        *prometheus.CounterVec
	Strikes        *prometheus.CounterVec
	StagesCleared  *prometheus.CounterVec
	RunsFinished   *prometheus.CounterVec
	SolverRuns     *prometheus.CounterVec
	SolverDuration prometheus.Histogram
	SolutionLength prometheus.Histogram
	ActiveSessions *prometheus.GaugeVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Presses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnels",
			Name:      "presses_total",
			Help:      "Button presses, by mode and button.",
		}, []string{"mode", "button"}),
		Strikes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnels",
			Name:      "strikes_total",
			Help:      "Strikes, by mode and reason.",
		}, []string{"mode", "reason"}),
		StagesCleared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnels",
			Name:      "stages_cleared_total",
			Help:      "Targets identified.",
		}, []string{"mode"}),
		RunsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnels",
			Name:      "runs_finished_total",
			Help:      "Finished runs, by mode and result.",
		}, []string{"mode", "result"}),
		SolverRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tunnels",
			Name:      "solver_runs_total",
			Help:      "Path solver invocations, by outcome.",
		}, []string{"outcome"}),
		SolverDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tunnels",
			Name:      "solver_duration_seconds",
			Help:      "Time spent in the path solver.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		SolutionLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tunnels",
			Name:      "solution_length_presses",
			Help:      "Length of solver plans.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		}),
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tunnels",
			Name:      "active_sessions",
			Help:      "Sessions in progress, by transport.",
		}, []string{"transport"}),
	}
	m.registry.MustRegister(
		m.Presses, m.Strikes, m.StagesCleared, m.RunsFinished,
		m.SolverRuns, m.SolverDuration, m.SolutionLength, m.ActiveSessions,
	)
	return m
}

// ObserveSolve records one solver call.
func (m *Metrics) ObserveSolve(d time.Duration, length int, err error) {
	if m == nil {
		return
	}
	m.SolverDuration.Observe(d.Seconds())
	if err != nil {
		m.SolverRuns.WithLabelValues("exhausted").Inc()
		return
	}
	m.SolverRuns.WithLabelValues("found").Inc()
	m.SolutionLength.Observe(float64(length))
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
