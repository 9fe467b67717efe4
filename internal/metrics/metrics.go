// Package metrics defines the Recorder interface the cache reports
// admission/eviction/fullness events through, plus a Prometheus-backed
// implementation in the same promauto style as the wider toolkit's
// infra/queue/asynq metrics. Components take a Recorder, defaulting to
// Noop(), so tests never need a live Prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives the cache's operational counters. Implementations
// must be safe for concurrent use.
type Recorder interface {
	IncAdmitted()
	IncEvicted()
	IncFull()
	ObserveWeight(w float64)
}

type noop struct{}

func (noop) IncAdmitted()          {}
func (noop) IncEvicted()           {}
func (noop) IncFull()              {}
func (noop) ObserveWeight(float64) {}

// Noop returns a Recorder that discards everything.
func Noop() Recorder { return noop{} }

// Prometheus is a Recorder backed by a prometheus.Registerer. Construct
// it once per process; it registers its collectors with promauto.
type Prometheus struct {
	admitted prometheus.Counter
	evicted  prometheus.Counter
	full     prometheus.Counter
	weight   prometheus.Gauge
}

// NewPrometheus registers the cache's collectors against reg and returns
// a Recorder backed by them. Pass prometheus.DefaultRegisterer to use
// the global registry.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		admitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priocache_admitted_total",
			Help:      "Total number of entries admitted into the cache store.",
		}),
		evicted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priocache_evicted_total",
			Help:      "Total number of entries evicted to make room for a new one.",
		}),
		full: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "priocache_full_total",
			Help:      "Total number of Put calls rejected because the cache was full.",
		}),
		weight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "priocache_weight",
			Help:      "Current total weight of stored entries.",
		}),
	}
}

func (p *Prometheus) IncAdmitted()       { p.admitted.Inc() }
func (p *Prometheus) IncEvicted()        { p.evicted.Inc() }
func (p *Prometheus) IncFull()           { p.full.Inc() }
func (p *Prometheus) ObserveWeight(w float64) { p.weight.Set(w) }
