// Package prom exports cache counters to Prometheus.
package prom

import (
	"github.com/IvanBrykalov/textcache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cache.Metrics and exports Prometheus counters.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits      *prometheus.CounterVec
	misses    prometheus.Counter
	evictions *prometheus.CounterVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
//
// Use one adapter per pool, told apart by sub or constLabels.
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "hits_total",
				Help:        "Cache hits by tier",
				ConstLabels: constLabels,
			},
			[]string{"tier"},
		),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Lookups that found nothing in either tier",
			ConstLabels: constLabels,
		}),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "evictions_total",
				Help:        "Entries overwritten by unrelated keys, by tier",
				ConstLabels: constLabels,
			},
			[]string{"tier"},
		),
	}
	reg.MustRegister(a.hits, a.misses, a.evictions)
	return a
}

// Hits adds n to the hit counter of tier.
func (a *Adapter) Hits(tier cache.Tier, n uint64) {
	a.hits.WithLabelValues(tier.String()).Add(float64(n))
}

// Misses adds n to the miss counter.
func (a *Adapter) Misses(n uint64) { a.misses.Add(float64(n)) }

// Evictions adds n to the eviction counter of tier.
func (a *Adapter) Evictions(tier cache.Tier, n uint64) {
	a.evictions.WithLabelValues(tier.String()).Add(float64(n))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
