// SPDX-License-Identifier: MIT

package sop

import "fmt"

// Lookup resolves SOP references into candidates. *Catalog implements it;
// appraisers and validators depend on this interface only.
type Lookup interface {
	// LegCount returns the number of active legs.
	LegCount() int

	// Candidate projects the SOP id on active leg pos.
	Candidate(pos, id int) (Candidate, error)
}

// Catalog is the per-session arena of legs and options.
// Options keep their insertion order, which is the upstream ranking.
type Catalog struct {
	legs    []Leg
	active  []int         // active position -> index into legs
	options [][]Option    // leg index -> options in insertion order
	byID    []map[int]int // leg index -> sop id -> position in options
}

var _ Lookup = (*Catalog)(nil)

// NewCatalog creates an empty catalog for legs. Leg.Index is overwritten with
// the leg's position so that it is always stable and dense.
//
// Complexity: O(len(legs)).
func NewCatalog(legs ...Leg) *Catalog {
	c := &Catalog{
		legs:    make([]Leg, len(legs)),
		options: make([][]Option, len(legs)),
		byID:    make([]map[int]int, len(legs)),
	}
	for i, l := range legs {
		l.Index = i
		c.legs[i] = l
		c.byID[i] = make(map[int]int)
		if !l.AcrossStopover {
			c.active = append(c.active, i)
		}
	}

	return c
}

// Add appends o to the leg with the given request index (not active position).
//
// Errors: ErrLegOutOfRange, ErrDuplicateSop.
// Complexity: O(1) amortized.
func (c *Catalog) Add(leg int, o Option) error {
	if leg < 0 || leg >= len(c.legs) {
		return fmt.Errorf("Add(leg=%d): %w", leg, ErrLegOutOfRange)
	}
	if _, ok := c.byID[leg][o.ID]; ok {
		return fmt.Errorf("Add(leg=%d, sop=%d): %w", leg, o.ID, ErrDuplicateSop)
	}
	o.Segments = append([]Segment(nil), o.Segments...)
	c.byID[leg][o.ID] = len(c.options[leg])
	c.options[leg] = append(c.options[leg], o)

	return nil
}

// LegCount returns the number of active (not across-stopover) legs.
func (c *Catalog) LegCount() int { return len(c.active) }

// Legs returns the active legs in order.
func (c *Catalog) Legs() []Leg {
	out := make([]Leg, len(c.active))
	for pos, idx := range c.active {
		out[pos] = c.legs[idx]
	}

	return out
}

// ReturnAllFlightsLeg returns the active position of the first leg flagged
// ReturnAllFlights, or -1 when there is none.
func (c *Catalog) ReturnAllFlightsLeg() int {
	for pos, idx := range c.active {
		if c.legs[idx].ReturnAllFlights {
			return pos
		}
	}

	return -1
}

// Options returns the options of active leg pos in upstream order.
// The returned slice must not be modified.
func (c *Catalog) Options(pos int) ([]Option, error) {
	if pos < 0 || pos >= len(c.active) {
		return nil, fmt.Errorf("Options(leg=%d): %w", pos, ErrLegOutOfRange)
	}

	return c.options[c.active[pos]], nil
}

// Option returns the SOP id on active leg pos.
//
// Errors: ErrLegOutOfRange, ErrSopNotFound.
func (c *Catalog) Option(pos, id int) (Option, error) {
	if pos < 0 || pos >= len(c.active) {
		return Option{}, fmt.Errorf("Option(leg=%d): %w", pos, ErrLegOutOfRange)
	}
	leg := c.active[pos]
	i, ok := c.byID[leg][id]
	if !ok {
		return Option{}, fmt.Errorf("Option(leg=%d, sop=%d): %w", pos, id, ErrSopNotFound)
	}

	return c.options[leg][i], nil
}

// Candidate projects the SOP id on active leg pos.
func (c *Catalog) Candidate(pos, id int) (Candidate, error) {
	o, err := c.Option(pos, id)
	if err != nil {
		return Candidate{}, err
	}

	return project(pos, o), nil
}

// Candidates returns every non-dummy option of every active leg, ordered by
// leg position then upstream order.
//
// Complexity: O(total options).
func (c *Catalog) Candidates() []Candidate {
	var out []Candidate
	for pos, leg := range c.active {
		for _, o := range c.options[leg] {
			if o.Dummy {
				continue
			}
			out = append(out, project(pos, o))
		}
	}

	return out
}

// Contains reports whether comb has one SOP per active leg and every id
// exists in its leg.
func (c *Catalog) Contains(comb Combination) bool {
	if len(comb) != len(c.active) {
		return false
	}
	for pos, id := range comb {
		if _, ok := c.byID[c.active[pos]][id]; !ok {
			return false
		}
	}

	return true
}

func project(pos int, o Option) Candidate {
	return Candidate{
		Leg:     pos,
		Sop:     o.ID,
		Direct:  o.Direct,
		Carrier: o.OnlineCarrier(),
	}
}
