// SPDX-License-Identifier: MIT

// Package estimate computes how many requesting-carrier-online (RCO)
// combinations are still needed and reachable.
//
// Inputs, all required:
//
//	Q      - total requested solutions (> 0)
//	DF     - direct combinations already produced
//	DFrco  - of those, how many are online for the requesting carrier
//	unused - per-leg count of SOPs not used yet
//	rco    - per-leg count of SOPs eligible for RCO combinations
//
// Outputs:
//
//	AS     = max(unused)                 combinations needed for full coverage
//	RcoMax = Π rco                       upper bound of RCO combinations
//	RRco   = max(0, min(Q−DF−AS, RcoMax−DFrco))
//
// RcoMax saturates at math.MaxInt instead of overflowing.
//
// Errors:
//
//	ErrMissingInput      - Estimate before every input was set.
//	ErrInconsistentInput - DFrco > DF, DF > Q, Q <= 0 or negative counts.
//	ErrLegOutOfRange     - per-leg setter outside [0, legs).
package estimate
