// SPDX-License-Identifier: MIT

package requirements

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
	"github.com/katalvlaran/fosgen/usage"
)

var (
	// ErrBadRequested is returned for Requested <= 0.
	ErrBadRequested = errors.New("requirements: requested count must be positive")

	// ErrBadRepeatLimit is returned for a negative schedule repeat limit.
	ErrBadRepeatLimit = errors.New("requirements: repeat limit must be non-negative")

	// ErrNilDependency is returned when the lookup or usage tracker is nil.
	ErrNilDependency = errors.New("requirements: nil dependency")
)

// Config selects the requirements of a session.
type Config struct {
	// Requested is Q, the capacity of the result set.
	Requested int

	// RepeatLimit is the SRL; 0 disables it.
	RepeatLimit int

	// AllDirect asks for every direct combination.
	AllDirect bool

	// Carrier is the requesting carrier for RCO scoring; empty disables it.
	Carrier string
}

// Tracker binds the result set to the requirements.
type Tracker struct {
	cfg    Config
	lookup sop.Lookup
	usage  *usage.Tracker
	set    *swapper.Swapper
	idx    *entryIndex

	directTarget int
	rcoTarget    int
	direct       int // residents direct on every leg
	online       int // residents online for cfg.Carrier
}

// New builds the swapper with the requirement appraisers and returns the
// tracker owning it.
func New(lookup sop.Lookup, u *usage.Tracker, cfg Config) (*Tracker, error) {
	switch {
	case lookup == nil || u == nil:
		return nil, ErrNilDependency
	case cfg.Requested <= 0:
		return nil, fmt.Errorf("New(requested=%d): %w", cfg.Requested, ErrBadRequested)
	case cfg.RepeatLimit < 0:
		return nil, fmt.Errorf("New(srl=%d): %w", cfg.RepeatLimit, ErrBadRepeatLimit)
	}

	t := &Tracker{cfg: cfg, lookup: lookup, usage: u, idx: newEntryIndex()}

	appraisers := []swapper.Appraiser{&allSopsRepresented{idx: t.idx}}
	if cfg.AllDirect {
		appraisers = append(appraisers, &allDirectOptions{t: t})
	}
	if cfg.RepeatLimit > 0 {
		appraisers = append(appraisers, &scheduleRepeatLimit{idx: t.idx, srl: cfg.RepeatLimit})
	}
	appraisers = append(appraisers, &rcOnlines{t: t})

	set, err := swapper.New(cfg.Requested, appraisers...)
	if err != nil {
		return nil, err
	}
	t.set = set
	set.Subscribe(t.onEvent)

	return t, nil
}

// Config returns the session requirements.
func (t *Tracker) Config() Config { return t.cfg }

// Swapper returns the owned result set.
func (t *Tracker) Swapper() *swapper.Swapper { return t.set }

// Usage returns the owned usage tracker.
func (t *Tracker) Usage() *usage.Tracker { return t.usage }

// Insert offers c to the result set and records usage when it is accepted.
// SOPs the usage tracker does not know are not counted.
func (t *Tracker) Insert(c sop.Combination) swapper.Result {
	res := t.set.Insert(c)
	if res.Status.Accepted() {
		for leg, id := range c {
			if t.usage.IsTracked(leg, id) {
				_ = t.usage.RecordUse(leg, id)
			}
		}
	}

	return res
}

// Remove drops a resident combination.
func (t *Tracker) Remove(c sop.Combination) error { return t.set.Remove(c) }

// SetDirectTarget sets the direct target to min(Q, Π counts), where counts
// holds the number of direct SOPs per leg.
func (t *Tracker) SetDirectTarget(counts []int) {
	target := 1
	if len(counts) == 0 {
		target = 0
	}
	for _, n := range counts {
		if n <= 0 {
			target = 0
			break
		}
		if target > t.cfg.Requested/n {
			target = t.cfg.Requested
			break
		}
		target *= n
	}
	t.directTarget = min(target, t.cfg.Requested)
}

// DirectTarget returns the direct target.
func (t *Tracker) DirectTarget() int { return t.directTarget }

// SetRcoTarget sets how many online residents are wanted, clamped to [0, Q].
func (t *Tracker) SetRcoTarget(n int) {
	t.rcoTarget = max(0, min(n, t.cfg.Requested))
}

// RcoTarget returns the RCO target.
func (t *Tracker) RcoTarget() int { return t.rcoTarget }

// DirectCount returns the number of residents direct on every leg.
func (t *Tracker) DirectCount() int { return t.direct }

// RcoCount returns the number of residents online for the requesting carrier.
func (t *Tracker) RcoCount() int { return t.online }

// IsAllDirect reports whether every SOP of c is direct.
func (t *Tracker) IsAllDirect(c sop.Combination) bool {
	return t.every(c, func(cand sop.Candidate) bool { return cand.Direct })
}

// IsOnline reports whether every SOP of c is operated by the requesting carrier.
func (t *Tracker) IsOnline(c sop.Combination) bool {
	if t.cfg.Carrier == "" {
		return false
	}

	return t.every(c, func(cand sop.Candidate) bool { return cand.Carrier == t.cfg.Carrier })
}

// IsAllSopsRepresentedSatisfied reports whether every tracked SOP was used.
func (t *Tracker) IsAllSopsRepresentedSatisfied() bool { return t.usage.UnusedCount() == 0 }

// IsAllDirectOptionsSatisfied reports whether the direct target is reached.
func (t *Tracker) IsAllDirectOptionsSatisfied() bool {
	return !t.cfg.AllDirect || t.direct >= t.directTarget
}

// IsRcOnlinesSatisfied reports whether the RCO target is reached.
func (t *Tracker) IsRcOnlinesSatisfied() bool { return t.online >= t.rcoTarget }

// IsSrlSatisfied reports whether no SOP is held by more than SRL residents.
func (t *Tracker) IsSrlSatisfied() bool {
	return t.cfg.RepeatLimit == 0 || t.idx.maxCount() <= t.cfg.RepeatLimit
}

// HasRequestedCount reports whether the result set holds Q combinations.
func (t *Tracker) HasRequestedCount() bool { return t.set.Len() >= t.cfg.Requested }

// AllRequirementsMet reports whether every requirement is satisfied.
func (t *Tracker) AllRequirementsMet() bool {
	return t.IsAllSopsRepresentedSatisfied() &&
		t.IsAllDirectOptionsSatisfied() &&
		t.IsRcOnlinesSatisfied() &&
		t.IsSrlSatisfied() &&
		t.HasRequestedCount()
}

func (t *Tracker) every(c sop.Combination, ok func(sop.Candidate) bool) bool {
	if len(c) == 0 {
		return false
	}
	for leg, id := range c {
		cand, err := t.lookup.Candidate(leg, id)
		if err != nil || !ok(cand) {
			return false
		}
	}

	return true
}

func (t *Tracker) onEvent(ev swapper.Event) {
	delta := 1
	if ev.Kind == swapper.EventRemoved {
		delta = -1
	}
	if t.IsAllDirect(ev.Combination) {
		t.direct += delta
	}
	if t.IsOnline(ev.Combination) {
		t.online += delta
	}
}
