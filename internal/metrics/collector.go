// Package metrics exposes Prometheus collectors for evaluation runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "screener"

// Collector records evaluation outcomes, stage latencies and decisions
type Collector struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	stages      *prometheus.HistogramVec
	decisions   *prometheus.CounterVec
	inFlight    prometheus.Gauge
}

// NewCollector registers the evaluation metrics on a fresh registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Total number of candidate evaluations by outcome and error kind",
			},
			[]string{"outcome", "kind"},
		),
		stages: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"stage", "result"},
		),
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of hiring decisions by band",
			},
			[]string{"decision"},
		),
		inFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "evaluations_in_flight",
				Help:      "Number of candidate evaluations currently running",
			},
		),
	}
}

// ObserveStage records how long a stage took and whether it failed
func (c *Collector) ObserveStage(stage string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.stages.WithLabelValues(stage, result).Observe(d.Seconds())
}

// ObserveOutcome counts a finished evaluation and, when it produced a result, its decision
func (c *Collector) ObserveOutcome(o types.Outcome) {
	outcome, kind := "success", "none"
	if !o.Success {
		outcome, kind = "failure", string(o.ErrorKind)
	}
	c.evaluations.WithLabelValues(outcome, kind).Inc()

	if o.Result != nil && o.Result.Decision != "" {
		c.decisions.WithLabelValues(string(o.Result.Decision)).Inc()
	}
}

// Started marks an evaluation as running and returns the func that marks it done
func (c *Collector) Started() func() {
	c.inFlight.Inc()
	return c.inFlight.Dec
}

// Registry returns the registry the collectors live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
