// SPDX-License-Identifier: MIT

package swapper

import (
	"errors"

	"github.com/katalvlaran/fosgen/sop"
)

var (
	// ErrBadCapacity is returned by New for a non-positive capacity.
	ErrBadCapacity = errors.New("swapper: capacity must be positive")

	// ErrNotFound is returned by Remove for a combination that is not resident.
	ErrNotFound = errors.New("swapper: combination not found")
)

// Category is the coarse part of a Score; higher is better.
type Category int

const (
	Discard Category = iota
	Ignore
	NiceToHave
	WantToHave
	MustHave
)

func (c Category) String() string {
	switch c {
	case Discard:
		return "DISCARD"
	case Ignore:
		return "IGNORE"
	case NiceToHave:
		return "NICE_TO_HAVE"
	case WantToHave:
		return "WANT_TO_HAVE"
	case MustHave:
		return "MUST_HAVE"
	}

	return "UNKNOWN"
}

// Score is one appraiser's judgement of a combination.
type Score struct {
	Category Category
	Value    int
}

// Compare returns -1, 0 or +1 as s is worse than, equal to or better than o.
func (s Score) Compare(o Score) int {
	switch {
	case s.Category != o.Category:
		if s.Category < o.Category {
			return -1
		}
		return 1
	case s.Value < o.Value:
		return -1
	case s.Value > o.Value:
		return 1
	}

	return 0
}

// Scores holds one Score per appraiser, in registration order.
type Scores []Score

// Compare compares two vectors lexicographically.
func (s Scores) Compare(o Scores) int {
	for i := 0; i < len(s) && i < len(o); i++ {
		if c := s[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s) < len(o):
		return -1
	case len(s) > len(o):
		return 1
	}

	return 0
}

// Discarded reports whether any score is Discard.
func (s Scores) Discarded() bool {
	for _, sc := range s {
		if sc.Category == Discard {
			return true
		}
	}

	return false
}

// Appraiser scores combinations for one requirement.
type Appraiser interface {
	// Name identifies the appraiser in diagnostics.
	Name() string

	// Score rates c: for a resident its current score, for a newcomer the
	// score it would get once added.
	Score(c sop.Combination) Score

	// Added and Removed report a membership change and return the other
	// residents whose score changed because of it.
	Added(c sop.Combination) []sop.Combination
	Removed(c sop.Combination) []sop.Combination
}

// Status is the outcome of Insert.
type Status int

const (
	Added Status = iota
	Swapped
	Rejected
	Duplicate
)

func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Swapped:
		return "swapped"
	case Rejected:
		return "rejected"
	case Duplicate:
		return "duplicate"
	}

	return "unknown"
}

// Accepted reports whether the combination became resident.
func (s Status) Accepted() bool { return s == Added || s == Swapped }

// Result describes one Insert.
type Result struct {
	Status  Status
	Evicted sop.Combination // set for Swapped
	Scores  Scores          // newcomer scores at decision time
}

// EventKind tells what happened to the set.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
)

// Event is published for every membership change.
type Event struct {
	Kind        EventKind
	Combination sop.Combination
}
