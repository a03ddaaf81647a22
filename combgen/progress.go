// SPDX-License-Identifier: MIT

package combgen

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/fosgen/sop"
)

// DefaultSkipLimit bounds consecutive non-qualifying draws of Progress.
const DefaultSkipLimit = 1000

// ProgressOption configures a Progress generator.
type ProgressOption func(*Progress)

// WithSrl excludes SOPs whose usage reached srl. Zero disables the limit.
// Panics on a negative value.
func WithSrl(srl int) ProgressOption {
	if srl < 0 {
		panic("combgen: WithSrl(negative)")
	}
	return func(g *Progress) { g.srl = srl }
}

// WithSkipLimit sets how many consecutive non-qualifying draws Progress
// tolerates before giving up. Panics on a non-positive value.
func WithSkipLimit(n int) ProgressOption {
	if n <= 0 {
		panic("combgen: WithSkipLimit(non-positive)")
	}
	return func(g *Progress) { g.skipLimit = n }
}

// Progress yields only combinations that still contain at least one SOP
// never used before. Each leg is ordered by (usage, id), so unused SOPs of
// every leg are paired first. Usage is fed back with SopUsed; any change
// re-orders the legs and restarts the enumeration on the next draw.
type Progress struct {
	legs  []legSet
	usage []map[int]int
	srl   int

	skipLimit int
	skipped   int

	inner     *Ranked
	exhausted bool // no leg has an unused SOP left
	dirty     bool
}

var _ Generator = (*Progress)(nil)

// NewProgress returns a progress generator for legs legs.
func NewProgress(legs int, opts ...ProgressOption) *Progress {
	g := &Progress{skipLimit: DefaultSkipLimit, dirty: true}
	for _, opt := range opts {
		opt(g)
	}
	if legs > 0 {
		_ = g.SetLegs(legs)
	}

	return g
}

// SetLegs configures n legs, dropping registered SOPs and their usage.
func (g *Progress) SetLegs(n int) error {
	if n <= 0 {
		return ErrBadLegCount
	}
	g.legs = newLegSets(n)
	g.usage = make([]map[int]int, n)
	for i := range g.usage {
		g.usage[i] = make(map[int]int)
	}
	g.inner = nil
	g.dirty = true

	return nil
}

// AddSop registers id on leg with usage 0.
func (g *Progress) AddSop(leg, id int) error {
	if leg < 0 || leg >= len(g.legs) {
		return fmt.Errorf("AddSop(leg=%d, sop=%d): %w", leg, id, ErrLegOutOfRange)
	}
	if g.legs[leg].add(id) {
		g.dirty = true
	}

	return nil
}

// SopUsed sets the usage of a registered SOP. Unknown SOPs are ignored.
func (g *Progress) SopUsed(leg, id, count int) error {
	if leg < 0 || leg >= len(g.legs) {
		return fmt.Errorf("SopUsed(leg=%d, sop=%d): %w", leg, id, ErrLegOutOfRange)
	}
	if _, ok := g.legs[leg].seen[id]; !ok {
		return nil
	}
	if g.usage[leg][id] != count {
		g.usage[leg][id] = count
		g.dirty = true
	}

	return nil
}

// Legs returns the configured leg count.
func (g *Progress) Legs() int { return len(g.legs) }

// SopsOnLeg returns the number of SOPs registered on leg.
func (g *Progress) SopsOnLeg(leg int) int {
	if leg < 0 || leg >= len(g.legs) {
		return 0
	}

	return len(g.legs[leg].ids)
}

// Reset restarts the enumeration under the current usage.
func (g *Progress) Reset() { g.dirty = true }

// Next returns the next combination holding an unused SOP, or the empty
// sentinel when none is left or the skip limit was hit.
func (g *Progress) Next() (sop.Combination, error) {
	if len(g.legs) == 0 {
		return nil, ErrNotSeeded
	}
	if g.dirty {
		g.rebuild()
	}
	if g.exhausted {
		return nil, nil
	}

	for g.skipped < g.skipLimit {
		c, err := g.inner.Next()
		if err != nil || c.Empty() {
			return nil, err
		}
		if g.qualifies(c) {
			g.skipped = 0
			return c, nil
		}
		g.skipped++
	}

	return nil, nil
}

func (g *Progress) qualifies(c sop.Combination) bool {
	for leg, id := range c {
		if g.usage[leg][id] == 0 {
			return true
		}
	}

	return false
}

// rebuild orders every leg by (usage, id), drops SOPs at the repeat limit
// and seeds a fresh Ranked generator.
func (g *Progress) rebuild() {
	g.inner = NewRanked(len(g.legs))
	g.exhausted = true
	g.skipped = 0

	for leg := range g.legs {
		used := g.usage[leg]
		ids := make([]int, 0, len(g.legs[leg].ids))
		for _, id := range g.legs[leg].ids {
			if g.srl > 0 && used[id] >= g.srl {
				continue
			}
			if used[id] == 0 {
				g.exhausted = false
			}
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if used[ids[i]] != used[ids[j]] {
				return used[ids[i]] < used[ids[j]]
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids {
			_ = g.inner.AddSop(leg, id)
		}
	}
	g.dirty = false
}
