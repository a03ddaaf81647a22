// SPDX-License-Identifier: MIT

package ibf

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
)

// Phase names, used as log fields and metric labels.
const (
	phaseInitial = "initial-direct"
	phaseAsr     = "asr"
	phaseDirect  = "direct"
	phaseRco     = "rco"
	phaseNonMct  = "asr-non-mct"
	phaseQ0s     = "q0s"
	phaseQueue   = "queue"
	phaseNgs     = "ngs-direct"
)

var phasePrefix = map[string]string{
	phaseInitial: "[DIRECT] Sop combination",
	phaseDirect:  "[DIRECT] Sop combination",
	phaseAsr:     "[ASR] Sop combination",
	phaseNonMct:  "[ASR] Sop combination",
	phaseRco:     "[RCO] Sop combination",
	phaseQ0s:     "[Q0S] Sop combination",
	phaseNgs:     "[NGS] Sop combination",
}

// GenerateFinalFosSolutions runs the generation phases in order: all sops
// represented, all direct options, RC onlines, non-MCT all sops represented
// and quota filling. A phase whose requirement already holds is skipped.
// Aborted or exhausted phases end quietly; the result set is always valid.
// It runs once per session.
func (m *Manager) GenerateFinalFosSolutions(ctx context.Context) (err error) {
	if !m.initialized {
		return ErrNotInitialized
	}
	if m.generated {
		return ErrAlreadyGenerated
	}
	m.generated = true
	ctx, span := m.tracer.Start(ctx, "ibf.GenerateFinalFosSolutions",
		trace.WithAttributes(attribute.String("session", m.session)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "generation failed")
		}
		span.End()
	}()
	m.log.Info("starting to generate final FOS solutions")

	if !m.req.IsAllSopsRepresentedSatisfied() {
		if err = m.runPhase(ctx, phaseAsr, func(ctx context.Context) error { return m.generateAsrFos(ctx, phaseAsr) }); err != nil {
			return err
		}
	} else {
		m.log.Info("'all sops represented' satisfied, no FOS needed for it")
	}

	if m.cfg.AllDirectRequired {
		if !m.req.IsAllDirectOptionsSatisfied() {
			if err = m.runPhase(ctx, phaseDirect, m.generateDirectFos); err != nil {
				return err
			}
		} else {
			m.log.Info("'all direct options present' satisfied, no FOS needed for it")
		}
	}

	if !m.req.IsRcOnlinesSatisfied() {
		if err = m.runPhase(ctx, phaseRco, m.generateRcoFos); err != nil {
			return err
		}
	} else {
		m.log.Info("'RC onlines preferred' satisfied, no FOS needed for it")
	}
	m.rco.close()

	if m.cfg.AllowIllogical {
		if !m.req.HasRequestedCount() {
			m.log.Info("non-MCT options allowed and requested count not reached, generating non-MCT FOS")
			if err = m.runPhase(ctx, phaseNonMct, func(ctx context.Context) error { return m.generateAsrFos(ctx, phaseNonMct) }); err != nil {
				return err
			}
		} else {
			m.log.Info("non-MCT options allowed but requested count reached, no FOS needed")
		}
	}

	if !m.isResultSetDone() {
		if err = m.runPhase(ctx, phaseQ0s, m.generateQ0sFos); err != nil {
			return err
		}
	} else {
		m.log.Info("requested count reached and SRL not violated, no further FOS needed")
	}

	return nil
}

func (m *Manager) runPhase(ctx context.Context, phase string, fn func(context.Context) error) error {
	ctx, span := m.tracer.Start(ctx, "ibf.phase."+phase,
		trace.WithAttributes(attribute.String("phase", phase)),
	)
	defer span.End()

	before := m.req.Swapper().Len()
	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, phase+" failed")
	}
	span.SetAttributes(
		attribute.Int("solutions.before", before),
		attribute.Int("solutions.after", m.req.Swapper().Len()),
	)

	return err
}

// generateAsrFos draws combinations holding unused SOPs until every SOP is
// used or the full result set refuses one. phaseNonMct relaxes the minimum
// connect time to a positive connect time.
func (m *Manager) generateAsrFos(ctx context.Context, phase string) error {
	log := m.log.With(zap.String("phase", phase))
	log.Info("starting to generate FOS for requirement: all sops represented")

	connect := filter.MinimumConnectTime
	if phase == phaseNonMct {
		connect = filter.PositiveConnectTime
	}
	progressOpts := []combgen.ProgressOption{combgen.WithSkipLimit(m.cfg.ProgressSkipLimit)}
	if m.cfg.ScheduleRepeatLimit > 0 {
		progressOpts = append(progressOpts, combgen.WithSrl(m.cfg.ScheduleRepeatLimit))
	}
	gen := combgen.NewProgress(m.catalog.LegCount(), progressOpts...)
	opts := append([]filter.PipelineOption{
		filter.WithCombinationPredicates(filter.Combinations(m.validator, connect, filter.InterlineTicketingAgreement)...),
		filter.WithRetryLimit(m.cfg.PipelineRetryLimit),
	}, m.phaseObservers(phase)...)
	pipe := filter.NewPipeline(gen, opts...)

	log.Info("fetching SOP usage progress generator")
	for _, e := range m.usage.Entries() {
		if err := pipe.AddSop(e.Leg, e.Sop); err != nil {
			return err
		}
		if err := gen.SopUsed(e.Leg, e.Sop, m.usage.UsageCount(e.Leg, e.Sop)); err != nil {
			return err
		}
	}

	_, err := m.drain(ctx, phase, pipe, func(c sop.Combination) bool {
		if _, ok := m.matrix[c.Key()]; ok {
			return false
		}
		if res := m.insertNewOption(phase, c, nil); !res.Status.Accepted() {
			if m.outOfSpace(res) {
				log.Debug("no more space, aborting")
				return true
			}
			return false
		}
		for leg, id := range c {
			_ = gen.SopUsed(leg, id, m.usage.UsageCount(leg, id))
		}
		if m.req.IsAllSopsRepresentedSatisfied() {
			log.Info("all sops represented satisfied")
			return true
		}
		return false
	})

	return err
}

// generateDirectFos draws from the all-direct generator until the direct
// target is reached or the full result set refuses a combination.
func (m *Manager) generateDirectFos(ctx context.Context) error {
	log := m.log.With(zap.String("phase", phaseDirect))
	log.Info("starting to generate FOS for requirement: all direct sop combinations")
	defer m.direct.close()

	_, err := m.drain(ctx, phaseDirect, m.direct.pipe, func(c sop.Combination) bool {
		if _, ok := m.matrix[c.Key()]; ok {
			return false
		}
		if res := m.insertNewOption(phaseDirect, c, nil); !res.Status.Accepted() {
			if m.outOfSpace(res) {
				log.Debug("no more space, aborting")
				return true
			}
			return false
		}
		return m.req.IsAllDirectOptionsSatisfied()
	})

	return err
}

// generateRcoFos draws combinations online for the requesting carrier until
// the RCO target is reached or the full result set refuses one.
func (m *Manager) generateRcoFos(ctx context.Context) error {
	log := m.log.With(zap.String("phase", phaseRco))
	log.Info("starting to generate FOS for requirement: RC online flights preferred")

	_, err := m.drain(ctx, phaseRco, m.rco.pipe, func(c sop.Combination) bool {
		if _, ok := m.matrix[c.Key()]; ok {
			return false
		}
		if res := m.insertNewOption(phaseRco, c, nil); !res.Status.Accepted() {
			if m.outOfSpace(res) {
				log.Debug("no more space, aborting")
				return true
			}
			return false
		}
		if m.req.IsRcOnlinesSatisfied() {
			log.Info("RC online flights preferred satisfied")
			return true
		}
		return false
	})

	return err
}

// generateQ0sFos fills the result set up to Q while respecting the SRL.
// Refused combinations do not stop it; the no-progress thresholds do.
func (m *Manager) generateQ0sFos(ctx context.Context) error {
	log := m.log.With(zap.String("phase", phaseQ0s))
	log.Info("starting to generate FOS to collect the requested number of solutions and satisfy SRL")

	g := m.newPenalizedGenerator(phaseQ0s, nil, filter.MinimumConnectTime, filter.InterlineTicketingAgreement)
	defer g.close()
	if err := m.load(g.pipe); err != nil {
		return err
	}

	set := m.req.Swapper()
	_, err := m.drain(ctx, phaseQ0s, g.pipe, func(c sop.Combination) bool {
		if _, ok := m.matrix[c.Key()]; ok {
			log.Debug("combination already in matrix", zap.Stringer("combination", c))
			return false
		}
		if m.insertNewOption(phaseQ0s, c, nil).Status.Accepted() {
			if m.isResultSetDone() {
				log.Info("requested count and SRL reached")
				return true
			}
		} else {
			m.accumulatedNoProgress++
		}

		if n := set.NoProgress(); n >= m.cfg.NoProgressAbort {
			log.Info("aborted Q0S generation without progress", zap.Int("iterations", n))
			return true
		}
		if m.accumulatedNoProgress >= m.cfg.AccumulatedNoProgressAbort {
			log.Info("aborted Q0S generation after accumulated iterations without progress",
				zap.Int("iterations", m.accumulatedNoProgress))
			return true
		}
		return false
	})

	return err
}

// outOfSpace reports whether a refused insert came from a full result set.
func (m *Manager) outOfSpace(res swapper.Result) bool {
	return !res.Status.Accepted() && m.req.Swapper().IsFull()
}

// drain pulls from p and hands every combination to visit until visit
// returns true, p is exhausted or aborts, or PhaseDrawLimit draws were made.
// Only faults and context errors are returned.
func (m *Manager) drain(ctx context.Context, phase string, p combgen.Generator, visit func(sop.Combination) bool) (draws int, err error) {
	defer func() { m.metrics.phaseDone(phase, draws) }()

	for draws < m.cfg.PhaseDrawLimit {
		if err = ctx.Err(); err != nil {
			return draws, err
		}
		c, err := p.Next()
		if errors.Is(err, filter.ErrGenerationAborted) {
			m.log.Info("generation aborted", zap.String("phase", phase), zap.Error(err))
			return draws, nil
		}
		if err != nil {
			return draws, err
		}
		if c.Empty() {
			return draws, nil
		}
		draws++
		if visit(c) {
			return draws, nil
		}
	}
	m.log.Info("phase draw limit reached", zap.String("phase", phase), zap.Int("draws", draws))

	return draws, nil
}
