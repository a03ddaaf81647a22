// SPDX-License-Identifier: MIT

package filter

import (
	"fmt"

	"github.com/katalvlaran/fosgen/sop"
)

// Kind selects a combination predicate.
type Kind int

const (
	MinimumConnectTime Kind = iota
	PositiveConnectTime
	InterlineTicketingAgreement
	CabinClassValidity
)

func (k Kind) String() string {
	switch k {
	case MinimumConnectTime:
		return "MinimumConnectTime"
	case PositiveConnectTime:
		return "PositiveConnectTime"
	case InterlineTicketingAgreement:
		return "InterlineTicketingAgreement"
	case CabinClassValidity:
		return "CabinClassValidity"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Validator answers the schedule questions predicates ask.
type Validator interface {
	// Valid reports whether c passes the check selected by kind.
	Valid(kind Kind, c sop.Combination) bool

	// CabinValid reports whether a single SOP offers a valid cabin.
	CabinValid(c sop.Candidate) bool
}

// CandidatePredicate accepts or refuses one SOP. The set of implementations
// is closed to this package.
type CandidatePredicate interface {
	Name() string
	Accept(c sop.Candidate) bool
	candidatePredicate()
}

// IsDirect accepts direct SOPs.
type IsDirect struct{}

func (IsDirect) Name() string                { return "IsDirect" }
func (IsDirect) Accept(c sop.Candidate) bool { return c.Direct }
func (IsDirect) candidatePredicate()         {}

// OnlineForCarrier accepts SOPs operated end to end by Carrier.
type OnlineForCarrier struct {
	Carrier string
}

func (p OnlineForCarrier) Name() string { return "OnlineForCarrier(" + p.Carrier + ")" }

func (p OnlineForCarrier) Accept(c sop.Candidate) bool {
	return p.Carrier != "" && c.Carrier == p.Carrier
}

func (OnlineForCarrier) candidatePredicate() {}

// CabinValid accepts SOPs the validator finds a valid cabin for.
type CabinValid struct {
	Validator Validator
}

func (CabinValid) Name() string { return "CabinValid" }

func (p CabinValid) Accept(c sop.Candidate) bool {
	return p.Validator == nil || p.Validator.CabinValid(c)
}

func (CabinValid) candidatePredicate() {}

// CombinationPredicate accepts or refuses a whole combination.
type CombinationPredicate struct {
	kind      Kind
	validator Validator
}

// NewCombinationPredicate binds kind to v. Panics on a nil validator.
func NewCombinationPredicate(kind Kind, v Validator) CombinationPredicate {
	if v == nil {
		panic("filter: NewCombinationPredicate(nil validator)")
	}

	return CombinationPredicate{kind: kind, validator: v}
}

// Kind returns the selected check.
func (p CombinationPredicate) Kind() Kind { return p.kind }

// Name returns the kind name.
func (p CombinationPredicate) Name() string { return p.kind.String() }

// Accept evaluates the check on c.
func (p CombinationPredicate) Accept(c sop.Combination) bool {
	return p.validator.Valid(p.kind, c)
}

// Combinations builds one predicate per kind, in order.
func Combinations(v Validator, kinds ...Kind) []CombinationPredicate {
	out := make([]CombinationPredicate, len(kinds))
	for i, k := range kinds {
		out[i] = NewCombinationPredicate(k, v)
	}

	return out
}
