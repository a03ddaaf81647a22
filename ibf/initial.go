// SPDX-License-Identifier: MIT

package ibf

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/sop"
)

// PerformInitialTasks prepares the session: it collects the valid SOPs,
// loads the RCO generator, either prepares the all-direct generator or runs
// the initial direct phase, and estimates the RCO target.
func (m *Manager) PerformInitialTasks(ctx context.Context) (err error) {
	if m.initialized {
		return ErrAlreadyInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := m.tracer.Start(ctx, "ibf.PerformInitialTasks",
		trace.WithAttributes(
			attribute.String("session", m.session),
			attribute.Int("requested", m.cfg.RequestedSolutions),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "initial tasks failed")
		}
		span.End()
	}()

	if err = m.collectValidSops(); err != nil {
		return err
	}

	m.log.Debug("fetching RC online generator")
	if err = m.load(m.rco.pipe); err != nil {
		return fmt.Errorf("PerformInitialTasks: %w", err)
	}

	if m.cfg.AllDirectRequired {
		if err = m.initDirectGenerator(); err != nil {
			return err
		}
	} else if err = m.generateInitialDirectFos(ctx); err != nil {
		return err
	}

	if err = m.estimateRcOnlinesDesiredCount(); err != nil {
		return err
	}

	m.req.Swapper().ResetNoProgress()
	m.initialized = true

	return nil
}

// collectValidSops keeps the non-dummy, cabin-valid SOPs and tracks their usage.
func (m *Manager) collectValidSops() error {
	m.log.Info("collecting valid sops")
	cabin := filter.CabinValid{Validator: m.validator}
	for _, c := range m.catalog.Candidates() {
		if !cabin.Accept(c) {
			m.log.Debug("sop rejected", zap.Int("leg", c.Leg), zap.Int("sop", c.Sop), zap.String("by", cabin.Name()))
			m.metrics.rejected(phaseInitial, cabin.Name())
			continue
		}
		m.valid = append(m.valid, c)
		if err := m.usage.Track(c.Leg, c.Sop); err != nil {
			return fmt.Errorf("collectValidSops: %w", err)
		}
	}

	if m.cfg.ContextShopping {
		if leg := m.catalog.ReturnAllFlightsLeg(); leg >= 0 {
			if err := m.usage.TrackOnlyLeg(leg); err != nil {
				return fmt.Errorf("collectValidSops: %w", err)
			}
			m.log.Info("tracking coverage of the return-all-flights leg only", zap.Int("leg", leg))
		}
	}
	m.log.Info("valid sops collected", zap.Int("count", len(m.valid)))

	return nil
}

// initDirectGenerator prepares the all-direct generator and the direct target.
func (m *Manager) initDirectGenerator() error {
	m.log.Info("initializing generator for direct FOS solutions")
	m.direct = m.newPenalizedGenerator(phaseDirect,
		[]filter.CandidatePredicate{filter.IsDirect{}},
		filter.MinimumConnectTime, filter.InterlineTicketingAgreement)
	if err := m.load(m.direct.pipe); err != nil {
		return fmt.Errorf("initDirectGenerator: %w", err)
	}

	counts := make([]int, m.catalog.LegCount())
	for leg := range counts {
		counts[leg] = m.direct.pipe.SopsOnLeg(leg)
	}
	m.req.SetDirectTarget(counts)
	m.log.Info("direct FOS target", zap.Ints("direct_per_leg", counts), zap.Int("target", m.req.DirectTarget()))

	return nil
}

// generateInitialDirectFos fills the result set with unique direct
// combinations until it is full or the generator is exhausted.
func (m *Manager) generateInitialDirectFos(ctx context.Context) error {
	m.log.Info("generating initial direct FOS solutions")
	g := m.newPenalizedGenerator(phaseInitial,
		[]filter.CandidatePredicate{filter.IsDirect{}},
		filter.MinimumConnectTime, filter.InterlineTicketingAgreement)
	defer g.close()
	if err := m.load(g.pipe); err != nil {
		return fmt.Errorf("generateInitialDirectFos: %w", err)
	}

	seen := make(map[string]struct{})
	draws, err := m.drain(ctx, phaseInitial, g.pipe, func(c sop.Combination) bool {
		if _, dup := seen[c.Key()]; dup {
			return false
		}
		seen[c.Key()] = struct{}{}
		if m.insertNewOption(phaseInitial, c, nil).Status.Accepted() {
			m.directFos = append(m.directFos, c.Clone())
		}

		return m.req.Swapper().IsFull()
	})
	m.log.Info("initial direct FOS generated",
		zap.Int("count", len(m.directFos)),
		zap.Int("draws", draws),
		zap.Int("unused_sops", m.usage.UnusedCount()),
		zap.Int("total_sops", m.usage.Count()),
	)

	return err
}

// estimateRcOnlinesDesiredCount sets the RCO target to the current RCO count
// plus the estimated remainder, clamped to Q.
func (m *Manager) estimateRcOnlinesDesiredCount() error {
	m.log.Info("estimating initial RC onlines count")
	legs := m.catalog.LegCount()
	e := m.estimator
	e.SetLegCount(legs)
	e.SetRequested(m.cfg.RequestedSolutions)
	e.SetDirectCount(len(m.directFos))
	e.SetRcoDirectCount(m.req.RcoCount())
	for leg := 0; leg < legs; leg++ {
		if err := e.SetUnusedCount(leg, m.usage.UnusedCountOnLeg(leg)); err != nil {
			return err
		}
		if err := e.SetRcoCount(leg, m.rco.pipe.SopsOnLeg(leg)); err != nil {
			return err
		}
	}
	if err := e.Estimate(); err != nil {
		return fmt.Errorf("estimateRcOnlinesDesiredCount: %w", err)
	}
	m.log.Info("estimation results", zap.Stringer("estimate", e))

	total := m.req.RcoCount() + e.RemainingRco()
	if total > m.cfg.RequestedSolutions {
		m.log.Error("RC onlines estimate greater than requested solutions, reducing",
			zap.Int("estimated", total),
			zap.Int("requested", m.cfg.RequestedSolutions),
		)
		total = m.cfg.RequestedSolutions
	}
	m.req.SetRcoTarget(total)
	m.log.Info("estimated total number of RC onlines", zap.Int("target", total))

	return nil
}
