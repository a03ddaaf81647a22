// SPDX-License-Identifier: MIT

package ibf

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/fosgen/swapper"
)

// Metrics exposes generation counters. A nil *Metrics records nothing.
type Metrics struct {
	inserts    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	draws      *prometheus.HistogramVec
	unused     prometheus.Gauge
	solutions  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fos_insert_total",
			Help: "Insert attempts into the result set by phase and outcome.",
		}, []string{"phase", "status"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fos_filter_rejections_total",
			Help: "Candidates and combinations refused by filter predicates.",
		}, []string{"phase", "predicate"}),
		draws: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fos_phase_draws",
			Help:    "Combinations drawn per generation phase.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"phase"}),
		unused: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fos_unused_sops",
			Help: "SOPs not used by any accepted combination yet.",
		}),
		solutions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fos_solutions",
			Help: "Combinations currently held in the result set.",
		}),
	}

	for _, c := range []prometheus.Collector{m.inserts, m.rejections, m.draws, m.unused, m.solutions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) insert(phase string, status swapper.Status) {
	if m == nil {
		return
	}
	m.inserts.WithLabelValues(phase, status.String()).Inc()
}

func (m *Metrics) rejected(phase, predicate string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(phase, predicate).Inc()
}

func (m *Metrics) phaseDone(phase string, draws int) {
	if m == nil {
		return
	}
	m.draws.WithLabelValues(phase).Observe(float64(draws))
}

func (m *Metrics) state(unused, solutions int) {
	if m == nil {
		return
	}
	m.unused.Set(float64(unused))
	m.solutions.Set(float64(solutions))
}
