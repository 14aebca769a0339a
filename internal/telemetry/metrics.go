// Package telemetry exposes run progress as Prometheus metrics over an
// optional HTTP listener. It is observability only: the annealing loop
// neither blocks on nor reads from it.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lemmaandrew/anneal-image/internal/anneal"
)

// Metrics bundles the run's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	iterations  prometheus.Counter
	temperature prometheus.Gauge
	currentCost prometheus.Gauge
	accepted    prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anneal",
			Name:      "iterations_total",
			Help:      "Completed annealing iterations.",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anneal",
			Name:      "temperature",
			Help:      "Current annealing temperature.",
		}),
		currentCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anneal",
			Name:      "current_cost",
			Help:      "Committed cost of the working canvas.",
		}),
		accepted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anneal",
			Name:      "accepted_shapes",
			Help:      "Number of committed shapes.",
		}),
	}
	m.registry.MustRegister(m.iterations, m.temperature, m.currentCost, m.accepted)
	return m
}

// Observer wraps next (which may be nil) into an observer that also updates
// the collectors each iteration.
func (m *Metrics) Observer(next anneal.Observer) anneal.Observer {
	return func(iteration int, temperature, currentCost float64) {
		m.iterations.Inc()
		m.temperature.Set(temperature)
		m.currentCost.Set(currentCost)
		if next != nil {
			next(iteration, temperature, currentCost)
		}
	}
}

// RecordResult publishes the final counts once the run completes.
func (m *Metrics) RecordResult(res *anneal.Result) {
	m.accepted.Set(float64(res.Accepted))
	m.currentCost.Set(res.FinalCost)
}
