// SPDX-License-Identifier: MIT

package ibf

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/filter"
)

// Option configures a Manager's collaborators.
type Option func(*Manager)

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithMetrics enables metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

// WithValidator replaces the catalog-based schedule validator. Panics on nil.
func WithValidator(v filter.Validator) Option {
	if v == nil {
		panic("ibf: WithValidator(nil)")
	}
	return func(m *Manager) { m.validator = v }
}

// WithObserver adds an observer to every generation pipeline. Panics on nil.
func WithObserver(o filter.Observer) Option {
	if o == nil {
		panic("ibf: WithObserver(nil)")
	}
	return func(m *Manager) { m.observers = append(m.observers, o) }
}

// WithTracerProvider sets where phase spans go; the global provider is the default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) {
		if tp != nil {
			m.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(m *Manager) {
		if id != "" {
			m.session = id
		}
	}
}
