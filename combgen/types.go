// SPDX-License-Identifier: MIT

package combgen

import (
	"errors"

	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
)

var (
	// ErrNotSeeded is returned by Next when the generator was never told its leg count.
	ErrNotSeeded = errors.New("combgen: generator not seeded")

	// ErrLegOutOfRange is returned when a SOP is added to a leg the generator does not have.
	ErrLegOutOfRange = errors.New("combgen: leg out of range")

	// ErrBadLegCount is returned by SetLegs for a non-positive leg count.
	ErrBadLegCount = errors.New("combgen: leg count must be positive")
)

// Generator is the contract of every combination source, including the
// filter pipeline that wraps them.
type Generator interface {
	// SetLegs configures the number of legs and clears registered SOPs.
	SetLegs(n int) error

	// AddSop registers SOP id on leg.
	AddSop(leg, id int) error

	// Legs returns the configured number of legs (0 before SetLegs).
	Legs() int

	// SopsOnLeg returns how many SOPs were registered on leg.
	SopsOnLeg(leg int) int

	// Next returns the next combination or the empty sentinel.
	Next() (sop.Combination, error)

	// Reset restarts the enumeration from the first combination.
	Reset()
}

// UsageSource reports how many accepted combinations used a SOP so far.
// *usage.Tracker implements it.
type UsageSource interface {
	UsageCount(leg, id int) int
}

// EventSource publishes mutation events of the result set.
// *swapper.Swapper implements it.
type EventSource interface {
	Subscribe(fn func(swapper.Event)) (unsubscribe func())
}

// legSet is an insertion-ordered set of SOP ids on one leg.
type legSet struct {
	ids  []int
	seen map[int]struct{}
}

func (s *legSet) add(id int) bool {
	if s.seen == nil {
		s.seen = make(map[int]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return false
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)

	return true
}

func newLegSets(n int) []legSet {
	if n <= 0 {
		return nil
	}

	return make([]legSet, n)
}
