// SPDX-License-Identifier: MIT

package filter

import (
	"time"

	"github.com/katalvlaran/fosgen/sop"
)

// DefaultMinConnectTime is the connection time ScheduleValidator requires
// between consecutive legs.
const DefaultMinConnectTime = 30 * time.Minute

// InterlineFunc reports whether the distinct carriers of a combination,
// in leg order, may be ticketed together.
type InterlineFunc func(carriers []string) bool

// CabinFunc reports whether a SOP offers a valid cabin.
type CabinFunc func(c sop.Candidate) bool

// ValidatorOption configures a ScheduleValidator.
type ValidatorOption func(*ScheduleValidator)

// WithMinConnectTime overrides DefaultMinConnectTime. Panics on d < 0.
func WithMinConnectTime(d time.Duration) ValidatorOption {
	if d < 0 {
		panic("filter: WithMinConnectTime(negative)")
	}
	return func(v *ScheduleValidator) { v.minConnect = d }
}

// WithInterline sets the interline agreement check; without it every
// carrier mix is accepted.
func WithInterline(fn InterlineFunc) ValidatorOption {
	return func(v *ScheduleValidator) { v.interline = fn }
}

// WithCabin sets the cabin check; without it every SOP is valid.
func WithCabin(fn CabinFunc) ValidatorOption {
	return func(v *ScheduleValidator) { v.cabin = fn }
}

// ScheduleValidator answers Validator questions from a catalog.
// Options without schedule times pass the connect time checks.
type ScheduleValidator struct {
	catalog    *sop.Catalog
	minConnect time.Duration
	interline  InterlineFunc
	cabin      CabinFunc
}

var _ Validator = (*ScheduleValidator)(nil)

// NewScheduleValidator returns a validator over catalog. Panics on nil.
func NewScheduleValidator(catalog *sop.Catalog, opts ...ValidatorOption) *ScheduleValidator {
	if catalog == nil {
		panic("filter: NewScheduleValidator(nil catalog)")
	}
	v := &ScheduleValidator{catalog: catalog, minConnect: DefaultMinConnectTime}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Valid implements Validator. Combinations referencing unknown SOPs fail.
func (v *ScheduleValidator) Valid(kind Kind, c sop.Combination) bool {
	opts, ok := v.resolve(c)
	if !ok {
		return false
	}

	switch kind {
	case MinimumConnectTime:
		return connects(opts, v.minConnect, false)
	case PositiveConnectTime:
		return connects(opts, 0, true)
	case InterlineTicketingAgreement:
		return v.interlineOK(opts)
	case CabinClassValidity:
		for leg, id := range c {
			cand, err := v.catalog.Candidate(leg, id)
			if err != nil || !v.CabinValid(cand) {
				return false
			}
		}
		return true
	}

	return false
}

// CabinValid implements Validator.
func (v *ScheduleValidator) CabinValid(c sop.Candidate) bool {
	return v.cabin == nil || v.cabin(c)
}

func (v *ScheduleValidator) resolve(c sop.Combination) ([]sop.Option, bool) {
	if len(c) != v.catalog.LegCount() {
		return nil, false
	}
	out := make([]sop.Option, len(c))
	for leg, id := range c {
		o, err := v.catalog.Option(leg, id)
		if err != nil {
			return nil, false
		}
		out[leg] = o
	}

	return out, true
}

func (v *ScheduleValidator) interlineOK(opts []sop.Option) bool {
	var carriers []string
	seen := make(map[string]struct{})
	for _, o := range opts {
		cs := []string{o.Carrier}
		if len(o.Segments) > 0 {
			cs = cs[:0]
			for _, s := range o.Segments {
				cs = append(cs, s.Carrier)
			}
		}
		for _, cr := range cs {
			if _, ok := seen[cr]; ok || cr == "" {
				continue
			}
			seen[cr] = struct{}{}
			carriers = append(carriers, cr)
		}
	}
	if len(carriers) <= 1 || v.interline == nil {
		return true
	}

	return v.interline(carriers)
}

// connects checks that every leg departs at least gap after the previous
// leg arrives (strictly after when strict is set).
func connects(opts []sop.Option, gap time.Duration, strict bool) bool {
	for i := 1; i < len(opts); i++ {
		arr, dep := opts[i-1].Arrival(), opts[i].Departure()
		if arr.IsZero() || dep.IsZero() {
			continue
		}
		diff := dep.Sub(arr)
		if diff < gap || (strict && diff <= 0) {
			return false
		}
	}

	return true
}
