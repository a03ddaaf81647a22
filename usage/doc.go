// SPDX-License-Identifier: MIT

// Package usage counts how many accepted combinations used each SOP.
//
// A Tracker knows the valid SOPs of every leg (Track) and their use counts
// (RecordUse). Counts only grow within a session. Coverage queries answer the
// all-sops-represented question: the requirement holds when UnusedCount is 0.
//
// With TrackOnlyLeg the coverage queries consider a single leg; the counts of
// the other legs are still kept. Context shopping uses it to require coverage
// of the return-all-flights leg only.
//
// Errors:
//
//	ErrLegOutOfRange - leg outside [0, Legs()).
//	ErrUntrackedSop  - RecordUse of a SOP never passed to Track.
package usage
