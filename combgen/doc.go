// SPDX-License-Identifier: MIT

// Package combgen produces lazy, restartable sequences of SOP combinations:
// one SOP id per leg, drawn from per-leg candidate lists.
//
// Generators:
//
//   - Ranked    - plain enumeration of the Cartesian product. Combinations
//     come out by increasing rank (the sum of per-leg positions), and
//     lexicographically within one rank, so the first draws always use the
//     best-placed option of every leg.
//   - Penalized - wraps Ranked. Before each (re)initialisation it reads the
//     current usage of every SOP, turns it into a PenaltyRecord and stably
//     sorts each leg by rank. Any mutation event of the result set makes the
//     very next draw re-rank, so draws always favour under-used options.
//   - Progress  - the all-sops-represented generator: yields only
//     combinations that still contain a never-used SOP, with per-leg
//     ordering by (usage, id) and an optional schedule repeat limit.
//
// Contract shared by all generators (Generator):
//
//   - SetLegs configures the leg count and clears registered SOPs.
//   - AddSop(leg, id) registers a SOP; duplicates are ignored.
//   - Next returns the next combination, or the empty sentinel once the
//     space is exhausted or any leg is empty. Callers stop pulling when
//     they see the sentinel; drawing past it keeps returning it.
//   - Reset restarts the enumeration.
//
// Errors:
//
//	ErrNotSeeded     - Next before SetLegs (fault).
//	ErrLegOutOfRange - AddSop on a leg outside [0, Legs()) (fault).
//	ErrBadLegCount   - SetLegs with n <= 0 (fault).
//
// Complexity: Ranked.Next is O(legs) amortized; Penalized pays
// O(total SOPs · log) on the first draw after an invalidation.
//
// Generators are single-threaded by contract and hold no locks.
package combgen
