// SPDX-License-Identifier: MIT

package sop

import (
	"errors"
	"time"
)

// Sentinel errors for catalog operations.
var (
	// ErrLegOutOfRange indicates a leg index or active position outside the catalog.
	ErrLegOutOfRange = errors.New("sop: leg out of range")

	// ErrDuplicateSop indicates that a SOP id was added twice to the same leg.
	ErrDuplicateSop = errors.New("sop: duplicate sop id on leg")

	// ErrSopNotFound indicates that a requested SOP does not exist on the leg.
	ErrSopNotFound = errors.New("sop: sop not found")
)

// Leg is one travel segment slot of the request.
type Leg struct {
	// Index is the stable position of the leg in the request (0-based).
	Index int

	// AcrossStopover marks legs excluded from core leg counting.
	AcrossStopover bool

	// ReturnAllFlights marks the leg whose options must each be returned once;
	// the penalty scoring never reuses its options.
	ReturnAllFlights bool
}

// Segment is one flight inside a scheduling option.
type Segment struct {
	Carrier   string
	Departure time.Time
	Arrival   time.Time
}

// Option is one concrete flight candidate (SOP) for a leg.
type Option struct {
	// ID is unique within its leg.
	ID int

	// Carrier is the governing carrier code.
	Carrier string

	// Segments are ordered by departure.
	Segments []Segment

	// Direct marks single-flight options.
	Direct bool

	// Dummy marks synthetic placeholders; they never enter generation.
	Dummy bool
}

// OnlineCarrier returns the carrier operating every segment of o, or "" when
// the segments are operated by different carriers. Options without segments
// fall back to the governing carrier.
func (o Option) OnlineCarrier() string {
	if len(o.Segments) == 0 {
		return o.Carrier
	}
	c := o.Segments[0].Carrier
	for _, s := range o.Segments[1:] {
		if s.Carrier != c {
			return ""
		}
	}

	return c
}

// Departure returns the departure of the first segment (zero when none).
func (o Option) Departure() time.Time {
	if len(o.Segments) == 0 {
		return time.Time{}
	}

	return o.Segments[0].Departure
}

// Arrival returns the arrival of the last segment (zero when none).
func (o Option) Arrival() time.Time {
	if len(o.Segments) == 0 {
		return time.Time{}
	}

	return o.Segments[len(o.Segments)-1].Arrival
}

// Entry references one SOP on one active leg. It is comparable and is used
// as a map key across the module.
type Entry struct {
	Leg int
	Sop int
}

// Candidate is the lightweight projection of an Option consumed by
// predicates, so they never dereference full schedule data.
type Candidate struct {
	Leg    int
	Sop    int
	Direct bool

	// Carrier is the carrier operating the whole option; empty for interline options.
	Carrier string
}

// Entry returns the {Leg, Sop} reference of c.
func (c Candidate) Entry() Entry { return Entry{Leg: c.Leg, Sop: c.Sop} }
