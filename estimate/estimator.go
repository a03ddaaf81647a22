// SPDX-License-Identifier: MIT

package estimate

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrMissingInput is returned by Estimate when an input was never set.
	ErrMissingInput = errors.New("estimate: missing input")

	// ErrInconsistentInput is returned by Estimate for contradictory inputs.
	ErrInconsistentInput = errors.New("estimate: inconsistent input")

	// ErrLegOutOfRange is returned by per-leg setters.
	ErrLegOutOfRange = errors.New("estimate: leg out of range")
)

// Estimator collects inputs and computes AS, RcoMax and RRco.
type Estimator struct {
	legs   int
	q      int
	df     int
	dfRco  int
	unused []int
	rco    []int

	set struct {
		legs, q, df, dfRco bool
		unused, rco        []bool
	}

	as, rcoMax, rRco int
	done             bool
}

// New returns an estimator with no inputs.
func New() *Estimator { return &Estimator{} }

// SetLegCount sizes the per-leg inputs, clearing them.
func (e *Estimator) SetLegCount(n int) {
	e.legs = n
	if n < 0 {
		n = 0
	}
	e.unused = make([]int, n)
	e.rco = make([]int, n)
	e.set.unused = make([]bool, n)
	e.set.rco = make([]bool, n)
	e.set.legs = true
	e.done = false
}

// SetRequested sets Q.
func (e *Estimator) SetRequested(q int) { e.q, e.set.q, e.done = q, true, false }

// SetDirectCount sets DF.
func (e *Estimator) SetDirectCount(df int) { e.df, e.set.df, e.done = df, true, false }

// SetRcoDirectCount sets DFrco.
func (e *Estimator) SetRcoDirectCount(n int) { e.dfRco, e.set.dfRco, e.done = n, true, false }

// SetUnusedCount sets the unused SOP count of leg.
func (e *Estimator) SetUnusedCount(leg, n int) error {
	if leg < 0 || leg >= len(e.unused) {
		return fmt.Errorf("SetUnusedCount(leg=%d): %w", leg, ErrLegOutOfRange)
	}
	e.unused[leg], e.set.unused[leg], e.done = n, true, false

	return nil
}

// SetRcoCount sets the RCO-eligible SOP count of leg.
func (e *Estimator) SetRcoCount(leg, n int) error {
	if leg < 0 || leg >= len(e.rco) {
		return fmt.Errorf("SetRcoCount(leg=%d): %w", leg, ErrLegOutOfRange)
	}
	e.rco[leg], e.set.rco[leg], e.done = n, true, false

	return nil
}

// Estimate validates the inputs and computes the outputs.
func (e *Estimator) Estimate() error {
	if err := e.validate(); err != nil {
		return err
	}

	e.as = 0
	for _, n := range e.unused {
		if n > e.as {
			e.as = n
		}
	}

	e.rcoMax = 1
	for _, n := range e.rco {
		e.rcoMax = mulSat(e.rcoMax, n)
	}

	e.rRco = min(e.q-e.df-e.as, e.rcoMax-e.dfRco)
	if e.rRco < 0 {
		e.rRco = 0
	}
	e.done = true

	return nil
}

func (e *Estimator) validate() error {
	var missing []string
	if !e.set.legs || e.legs <= 0 {
		missing = append(missing, "legs")
	}
	if !e.set.q {
		missing = append(missing, "Q")
	}
	if !e.set.df {
		missing = append(missing, "DF")
	}
	if !e.set.dfRco {
		missing = append(missing, "DFrco")
	}
	for leg := range e.set.unused {
		if !e.set.unused[leg] {
			missing = append(missing, fmt.Sprintf("unused[%d]", leg))
		}
		if !e.set.rco[leg] {
			missing = append(missing, fmt.Sprintf("rco[%d]", leg))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("Estimate(): %s: %w", strings.Join(missing, ", "), ErrMissingInput)
	}

	switch {
	case e.q <= 0:
		return fmt.Errorf("Estimate(): Q=%d: %w", e.q, ErrInconsistentInput)
	case e.df < 0 || e.dfRco < 0:
		return fmt.Errorf("Estimate(): DF=%d DFrco=%d: %w", e.df, e.dfRco, ErrInconsistentInput)
	case e.dfRco > e.df:
		return fmt.Errorf("Estimate(): DFrco=%d > DF=%d: %w", e.dfRco, e.df, ErrInconsistentInput)
	case e.df > e.q:
		return fmt.Errorf("Estimate(): DF=%d > Q=%d: %w", e.df, e.q, ErrInconsistentInput)
	}
	for leg := range e.unused {
		if e.unused[leg] < 0 || e.rco[leg] < 0 {
			return fmt.Errorf("Estimate(): leg %d has a negative count: %w", leg, ErrInconsistentInput)
		}
	}

	return nil
}

// AS returns the coverage estimate; 0 before a successful Estimate.
func (e *Estimator) AS() int { return e.as }

// RcoMax returns the RCO upper bound.
func (e *Estimator) RcoMax() int { return e.rcoMax }

// RemainingRco returns RRco.
func (e *Estimator) RemainingRco() int { return e.rRco }

// Done reports whether the outputs reflect the current inputs.
func (e *Estimator) Done() bool { return e.done }

// String renders inputs and outputs on one line.
func (e *Estimator) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Q=%d DF=%d DFrco=%d unused=%v rco=%v", e.q, e.df, e.dfRco, e.unused, e.rco)
	if e.done {
		fmt.Fprintf(&b, " => AS=%d RcoMax=%d RRco=%d", e.as, e.rcoMax, e.rRco)
	}

	return b.String()
}

// mulSat multiplies non-negative a and b, saturating at math.MaxInt.
func mulSat(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}

	return a * b
}
