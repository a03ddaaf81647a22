// SPDX-License-Identifier: MIT

// Package combgen - plain ranked Cartesian enumeration.
//
// The counter idx holds one position per leg. Combinations are visited by
// increasing rank r = Σ idx[i] and, inside one rank, in lexicographic order
// of idx. Stepping inside a rank moves one unit from the suffix into the
// rightmost position that can still grow, then refills the suffix with its
// lexicographically smallest distribution. When no such position exists the
// counter jumps to the smallest vector of rank r+1.
//
// Complexity: O(legs) per Next; O(legs) memory beyond the SOP lists.
package combgen

import (
	"fmt"

	"github.com/katalvlaran/fosgen/sop"
)

// Ranked enumerates the full Cartesian product of its per-leg SOP lists.
// The zero value is unseeded; use NewRanked or SetLegs.
type Ranked struct {
	dims []legSet

	// Enumeration state.
	idx     []int
	caps    []int // caps[i] = Σ_{j≥i} (len(dims[j])−1); caps[len] = 0
	rank    int
	started bool
	done    bool
}

var _ Generator = (*Ranked)(nil)

// NewRanked returns a generator for legs legs. legs <= 0 leaves it unseeded.
func NewRanked(legs int) *Ranked {
	g := &Ranked{}
	if legs > 0 {
		_ = g.SetLegs(legs)
	}

	return g
}

// SetLegs configures n legs, dropping registered SOPs.
func (g *Ranked) SetLegs(n int) error {
	if n <= 0 {
		return ErrBadLegCount
	}
	g.dims = newLegSets(n)
	g.idx = make([]int, n)
	g.caps = make([]int, n+1)
	g.Reset()

	return nil
}

// AddSop registers id on leg and restarts the enumeration when it changes
// the space. Duplicates are ignored.
func (g *Ranked) AddSop(leg, id int) error {
	if leg < 0 || leg >= len(g.dims) {
		return fmt.Errorf("AddSop(leg=%d, sop=%d): %w", leg, id, ErrLegOutOfRange)
	}
	if g.dims[leg].add(id) {
		g.Reset()
	}

	return nil
}

// Legs returns the configured leg count.
func (g *Ranked) Legs() int { return len(g.dims) }

// SopsOnLeg returns the number of SOPs on leg (0 when out of range).
func (g *Ranked) SopsOnLeg(leg int) int {
	if leg < 0 || leg >= len(g.dims) {
		return 0
	}

	return len(g.dims[leg].ids)
}

// Reset restarts the enumeration.
func (g *Ranked) Reset() {
	g.started = false
	g.done = false
	g.rank = 0
}

// Next returns the next combination, or nil once exhausted.
func (g *Ranked) Next() (sop.Combination, error) {
	// 1) Unseeded is a fault; exhaustion is not.
	if len(g.dims) == 0 {
		return nil, ErrNotSeeded
	}
	if g.done {
		return nil, nil
	}

	// 2) First call: an empty leg ends the enumeration, otherwise start at
	// the all-zero vector of rank 0.
	if !g.started {
		g.started = true
		if !g.computeCaps() {
			g.done = true
			return nil, nil
		}
		g.rank = 0
		g.fill(0, 0)

		return g.current(), nil
	}

	// 3) Step inside the rank, or open the next rank at its smallest vector.
	if !g.advance() {
		g.rank++
		if g.rank > g.caps[0] {
			g.done = true
			return nil, nil
		}
		g.fill(0, g.rank)
	}

	return g.current(), nil
}

// computeCaps fills suffix capacities; false when some leg is empty.
func (g *Ranked) computeCaps() bool {
	n := len(g.dims)
	g.caps[n] = 0
	for i := n - 1; i >= 0; i-- {
		size := len(g.dims[i].ids)
		if size == 0 {
			return false
		}
		g.caps[i] = g.caps[i+1] + size - 1
	}

	return true
}

// fill writes the lexicographically smallest suffix idx[from:] summing to remaining.
// Precondition: remaining <= caps[from].
func (g *Ranked) fill(from, remaining int) {
	// Each position takes only what the legs after it cannot absorb.
	for j := from; j < len(g.idx); j++ {
		v := remaining - g.caps[j+1]
		if v < 0 {
			v = 0
		}
		g.idx[j] = v
		remaining -= v
	}
}

// advance steps to the next vector of the same rank; false when none is left.
func (g *Ranked) advance() bool {
	// 1) Walk right to left, summing the suffix after i.
	// 2) The first i that can grow while the suffix can give up one unit
	// takes it; the suffix is refilled with what is left.
	suffix := 0
	for i := len(g.idx) - 2; i >= 0; i-- {
		suffix += g.idx[i+1]
		if suffix >= 1 && g.idx[i] < len(g.dims[i].ids)-1 {
			g.idx[i]++
			g.fill(i+1, suffix-1)
			return true
		}
	}

	return false
}

func (g *Ranked) current() sop.Combination {
	out := make(sop.Combination, len(g.idx))
	for leg, pos := range g.idx {
		out[leg] = g.dims[leg].ids[pos]
	}

	return out
}
