// SPDX-License-Identifier: MIT

// Package combgen - usage-penalty reordered enumeration.
//
// Penalized keeps the registered SOPs and a usage source. Whenever it is
// invalidated (new SOP, Reset, or a swapper event) the next draw rebuilds a
// fresh Ranked generator over legs sorted by PenaltyRecord.Rank. Rebuilding
// is lazy but synchronous: no draw ever sees stale usage.
package combgen

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
)

// PenalizedOption configures a Penalized generator.
type PenalizedOption func(*Penalized)

// WithPenaltyPolicy overrides the default penalty policy.
// Panics on non-positive fields.
func WithPenaltyPolicy(p PenaltyPolicy) PenalizedOption {
	if p.Exponent < 1 || p.Threshold < 1 || p.Ceiling < 1 {
		panic("combgen: WithPenaltyPolicy(non-positive field)")
	}
	return func(g *Penalized) { g.policy = p }
}

// WithReturnAllFlightsLeg marks leg as the return-all-flights leg.
// A negative leg disables the special case.
func WithReturnAllFlightsLeg(leg int) PenalizedOption {
	return func(g *Penalized) { g.returnAllLeg = leg }
}

// WithEvents subscribes the generator to src at construction; Close
// unsubscribes. Panics on nil.
func WithEvents(src EventSource) PenalizedOption {
	if src == nil {
		panic("combgen: WithEvents(nil)")
	}
	return func(g *Penalized) { g.events = src }
}

// Penalized draws combinations favouring under-used SOPs.
type Penalized struct {
	legs         []legSet
	usage        UsageSource
	policy       PenaltyPolicy
	returnAllLeg int

	events EventSource
	unsub  func()

	inner   *Ranked
	records [][]PenaltyRecord // per leg, in draw order
	dirty   bool
}

var _ Generator = (*Penalized)(nil)

// NewPenalized returns a penalized generator over legs legs reading usage
// from usage (nil means "never used").
func NewPenalized(legs int, usage UsageSource, opts ...PenalizedOption) *Penalized {
	g := &Penalized{
		usage:        usage,
		policy:       DefaultPenaltyPolicy(),
		returnAllLeg: -1,
		dirty:        true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if legs > 0 {
		_ = g.SetLegs(legs)
	}
	if g.events != nil {
		g.unsub = g.events.Subscribe(g.HandleEvent)
	}

	return g
}

// SetLegs configures n legs, dropping registered SOPs.
func (g *Penalized) SetLegs(n int) error {
	if n <= 0 {
		return ErrBadLegCount
	}
	g.legs = newLegSets(n)
	g.inner = nil
	g.records = nil
	g.dirty = true

	return nil
}

// AddSop registers id on leg.
func (g *Penalized) AddSop(leg, id int) error {
	if leg < 0 || leg >= len(g.legs) {
		return fmt.Errorf("AddSop(leg=%d, sop=%d): %w", leg, id, ErrLegOutOfRange)
	}
	if g.legs[leg].add(id) {
		g.dirty = true
	}

	return nil
}

// Legs returns the configured leg count.
func (g *Penalized) Legs() int { return len(g.legs) }

// SopsOnLeg returns the number of SOPs registered on leg.
func (g *Penalized) SopsOnLeg(leg int) int {
	if leg < 0 || leg >= len(g.legs) {
		return 0
	}

	return len(g.legs[leg].ids)
}

// Reset forces a re-rank on the next draw.
func (g *Penalized) Reset() { g.dirty = true }

// HandleEvent reacts to a result-set mutation by invalidating the order.
func (g *Penalized) HandleEvent(ev swapper.Event) {
	switch ev.Kind {
	case swapper.EventAdded, swapper.EventRemoved:
		g.dirty = true
	}
}

// Close unsubscribes from the event source, if any. Safe to call twice.
func (g *Penalized) Close() {
	if g.unsub != nil {
		g.unsub()
		g.unsub = nil
	}
}

// Next returns the next combination in penalty order.
func (g *Penalized) Next() (sop.Combination, error) {
	if len(g.legs) == 0 {
		return nil, ErrNotSeeded
	}
	if g.dirty {
		g.rebuild()
	}

	return g.inner.Next()
}

// Records returns the penalty records of leg in current draw order.
// It re-ranks first when the generator is invalidated.
func (g *Penalized) Records(leg int) []PenaltyRecord {
	if leg < 0 || leg >= len(g.legs) {
		return nil
	}
	if g.dirty {
		g.rebuild()
	}

	return append([]PenaltyRecord(nil), g.records[leg]...)
}

// rebuild re-sorts every leg by rank and seeds a fresh Ranked generator.
//
// Complexity: O(Σ k_i log k_i) for k_i SOPs on leg i.
func (g *Penalized) rebuild() {
	g.inner = NewRanked(len(g.legs))
	g.records = make([][]PenaltyRecord, len(g.legs))

	for leg := range g.legs {
		recs := make([]PenaltyRecord, 0, len(g.legs[leg].ids))
		for _, id := range g.legs[leg].ids {
			used := 0
			if g.usage != nil {
				used = g.usage.UsageCount(leg, id)
			}
			recs = append(recs, g.policy.Record(id, used, leg == g.returnAllLeg))
		}
		sort.SliceStable(recs, func(i, j int) bool {
			if recs[i].Rank != recs[j].Rank {
				return recs[i].Rank < recs[j].Rank
			}
			return recs[i].Sop < recs[j].Sop
		})
		for _, r := range recs {
			_ = g.inner.AddSop(leg, r.Sop)
		}
		g.records[leg] = recs
	}
	g.dirty = false
}
