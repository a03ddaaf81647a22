// SPDX-License-Identifier: MIT

package filter

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/sop"
)

// DefaultRetryLimit bounds consecutive rejected draws in Pipeline.Next.
const DefaultRetryLimit = 20000

// ErrGenerationAborted is returned by Pipeline.Next after RetryLimit
// consecutive rejections. It is recoverable: the current phase ends.
var ErrGenerationAborted = errors.New("filter: generation aborted")

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithCandidatePredicates appends candidate predicates.
func WithCandidatePredicates(ps ...CandidatePredicate) PipelineOption {
	return func(p *Pipeline) { p.candidates = append(p.candidates, ps...) }
}

// WithCombinationPredicates appends combination predicates.
func WithCombinationPredicates(ps ...CombinationPredicate) PipelineOption {
	return func(p *Pipeline) { p.combinations = append(p.combinations, ps...) }
}

// WithObserver registers an observer. Panics on nil.
func WithObserver(o Observer) PipelineOption {
	if o == nil {
		panic("filter: WithObserver(nil)")
	}
	return func(p *Pipeline) { p.observers = append(p.observers, o) }
}

// WithRetryLimit overrides DefaultRetryLimit. Panics on n <= 0.
func WithRetryLimit(n int) PipelineOption {
	if n <= 0 {
		panic("filter: WithRetryLimit(non-positive)")
	}
	return func(p *Pipeline) { p.retryLimit = n }
}

// WithLookup lets AddSop resolve candidates, so candidate predicates apply
// to it too. Without a lookup AddSop forwards unfiltered.
func WithLookup(l sop.Lookup) PipelineOption {
	return func(p *Pipeline) { p.lookup = l }
}

// Pipeline is a filtering combgen.Generator.
type Pipeline struct {
	inner        combgen.Generator
	lookup       sop.Lookup
	candidates   []CandidatePredicate
	combinations []CombinationPredicate
	observers    []Observer
	retryLimit   int

	accepted int // SOPs forwarded to inner
	rejected int // combinations refused since construction
}

var _ combgen.Generator = (*Pipeline)(nil)

// NewPipeline wraps inner. Panics on nil inner.
func NewPipeline(inner combgen.Generator, opts ...PipelineOption) *Pipeline {
	if inner == nil {
		panic("filter: NewPipeline(nil generator)")
	}
	p := &Pipeline{inner: inner, retryLimit: DefaultRetryLimit}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddObserver registers an observer after construction.
func (p *Pipeline) AddObserver(o Observer) {
	if o != nil {
		p.observers = append(p.observers, o)
	}
}

// SetLegs forwards to the wrapped generator.
func (p *Pipeline) SetLegs(n int) error {
	p.accepted = 0
	return p.inner.SetLegs(n)
}

// AddCandidate applies candidate predicates and forwards c on success.
// It reports whether c was forwarded.
func (p *Pipeline) AddCandidate(c sop.Candidate) (bool, error) {
	for _, pred := range p.candidates {
		if !pred.Accept(c) {
			for _, o := range p.observers {
				o.CandidateRejected(c, pred.Name())
			}
			return false, nil
		}
	}
	if err := p.inner.AddSop(c.Leg, c.Sop); err != nil {
		return false, err
	}
	p.accepted++

	return true, nil
}

// AddSop resolves (leg, id) through the lookup and calls AddCandidate.
func (p *Pipeline) AddSop(leg, id int) error {
	if p.lookup == nil {
		if err := p.inner.AddSop(leg, id); err != nil {
			return err
		}
		p.accepted++
		return nil
	}
	c, err := p.lookup.Candidate(leg, id)
	if err != nil {
		return fmt.Errorf("AddSop(leg=%d, sop=%d): %w", leg, id, err)
	}
	_, err = p.AddCandidate(c)

	return err
}

// Legs returns the wrapped generator's leg count.
func (p *Pipeline) Legs() int { return p.inner.Legs() }

// SopsOnLeg returns how many SOPs survived the candidate predicates on leg.
func (p *Pipeline) SopsOnLeg(leg int) int { return p.inner.SopsOnLeg(leg) }

// Accepted returns the number of SOPs forwarded since SetLegs.
func (p *Pipeline) Accepted() int { return p.accepted }

// Rejected returns the number of combinations refused so far.
func (p *Pipeline) Rejected() int { return p.rejected }

// Reset restarts the wrapped generator.
func (p *Pipeline) Reset() { p.inner.Reset() }

// Next returns the next combination every combination predicate accepts.
func (p *Pipeline) Next() (sop.Combination, error) {
	for streak := 0; streak < p.retryLimit; {
		c, err := p.inner.Next()
		if err != nil || c.Empty() {
			return nil, err
		}
		by, ok := p.check(c)
		if ok {
			return c, nil
		}
		p.rejected++
		streak++
		for _, o := range p.observers {
			o.CombinationRejected(c, by)
		}
	}

	return nil, fmt.Errorf("Next(): %d consecutive rejections: %w", p.retryLimit, ErrGenerationAborted)
}

func (p *Pipeline) check(c sop.Combination) (string, bool) {
	for _, pred := range p.combinations {
		if !pred.Accept(c) {
			return pred.Name(), false
		}
	}

	return "", true
}
