// SPDX-License-Identifier: MIT

package usage

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/fosgen/sop"
)

var (
	// ErrLegOutOfRange is returned for a leg outside [0, Legs()).
	ErrLegOutOfRange = errors.New("usage: leg out of range")

	// ErrUntrackedSop is returned by RecordUse for a SOP never tracked.
	ErrUntrackedSop = errors.New("usage: sop not tracked")
)

// Tracker maps (leg, sop) to a use count.
type Tracker struct {
	counts  []map[int]int
	order   [][]int // tracked ids per leg, insertion order
	unused  []int   // per-leg number of tracked SOPs with count 0
	onlyLeg int     // -1: every leg counts towards coverage
}

// New returns a tracker for legs legs.
func New(legs int) *Tracker {
	if legs < 0 {
		legs = 0
	}
	t := &Tracker{
		counts:  make([]map[int]int, legs),
		order:   make([][]int, legs),
		unused:  make([]int, legs),
		onlyLeg: -1,
	}
	for i := range t.counts {
		t.counts[i] = make(map[int]int)
	}

	return t
}

// Legs returns the leg count.
func (t *Tracker) Legs() int { return len(t.counts) }

// Track registers a valid SOP with count 0. Tracking twice is a no-op.
func (t *Tracker) Track(leg, id int) error {
	if err := t.check(leg); err != nil {
		return fmt.Errorf("Track(leg=%d, sop=%d): %w", leg, id, err)
	}
	if _, ok := t.counts[leg][id]; ok {
		return nil
	}
	t.counts[leg][id] = 0
	t.order[leg] = append(t.order[leg], id)
	t.unused[leg]++

	return nil
}

// RecordUse increments the count of a tracked SOP.
func (t *Tracker) RecordUse(leg, id int) error {
	if err := t.check(leg); err != nil {
		return fmt.Errorf("RecordUse(leg=%d, sop=%d): %w", leg, id, err)
	}
	n, ok := t.counts[leg][id]
	if !ok {
		return fmt.Errorf("RecordUse(leg=%d, sop=%d): %w", leg, id, ErrUntrackedSop)
	}
	if n == 0 {
		t.unused[leg]--
	}
	t.counts[leg][id] = n + 1

	return nil
}

// RecordCombination records one use of every SOP of c. Nothing is recorded
// when any SOP is unknown.
func (t *Tracker) RecordCombination(c sop.Combination) error {
	for leg, id := range c {
		if !t.IsTracked(leg, id) {
			return fmt.Errorf("RecordCombination(%s): %w", c, ErrUntrackedSop)
		}
	}
	for leg, id := range c {
		_ = t.RecordUse(leg, id)
	}

	return nil
}

// UsageCount returns the count of (leg, id); 0 when unknown.
func (t *Tracker) UsageCount(leg, id int) int {
	if leg < 0 || leg >= len(t.counts) {
		return 0
	}

	return t.counts[leg][id]
}

// IsTracked reports whether (leg, id) was tracked.
func (t *Tracker) IsTracked(leg, id int) bool {
	if leg < 0 || leg >= len(t.counts) {
		return false
	}
	_, ok := t.counts[leg][id]

	return ok
}

// UnusedOnLeg returns the never-used SOPs of leg in ascending id order.
func (t *Tracker) UnusedOnLeg(leg int) []int {
	if leg < 0 || leg >= len(t.counts) {
		return nil
	}
	out := make([]int, 0, t.unused[leg])
	for _, id := range t.order[leg] {
		if t.counts[leg][id] == 0 {
			out = append(out, id)
		}
	}
	sort.Ints(out)

	return out
}

// UnusedCountOnLeg returns the number of never-used SOPs on leg.
func (t *Tracker) UnusedCountOnLeg(leg int) int {
	if leg < 0 || leg >= len(t.counts) {
		return 0
	}

	return t.unused[leg]
}

// UnusedCount returns the number of never-used SOPs on the covered legs.
func (t *Tracker) UnusedCount() int {
	if t.onlyLeg >= 0 {
		return t.unused[t.onlyLeg]
	}
	total := 0
	for _, n := range t.unused {
		total += n
	}

	return total
}

// Count returns the number of tracked SOPs on the covered legs.
func (t *Tracker) Count() int {
	if t.onlyLeg >= 0 {
		return len(t.order[t.onlyLeg])
	}
	total := 0
	for _, ids := range t.order {
		total += len(ids)
	}

	return total
}

// Entries returns every tracked SOP ordered by leg, then insertion.
func (t *Tracker) Entries() []sop.Entry {
	var out []sop.Entry
	for leg, ids := range t.order {
		for _, id := range ids {
			out = append(out, sop.Entry{Leg: leg, Sop: id})
		}
	}

	return out
}

// TrackOnlyLeg restricts coverage queries to leg; a negative leg lifts the
// restriction.
func (t *Tracker) TrackOnlyLeg(leg int) error {
	if leg < 0 {
		t.onlyLeg = -1
		return nil
	}
	if err := t.check(leg); err != nil {
		return fmt.Errorf("TrackOnlyLeg(leg=%d): %w", leg, err)
	}
	t.onlyLeg = leg

	return nil
}

// OnlyLeg returns the leg set by TrackOnlyLeg, or -1.
func (t *Tracker) OnlyLeg() int { return t.onlyLeg }

func (t *Tracker) check(leg int) error {
	if leg < 0 || leg >= len(t.counts) {
		return ErrLegOutOfRange
	}

	return nil
}
