// SPDX-License-Identifier: MIT

// Package sop defines the data model shared by every fosgen package:
// legs, scheduling options (SOPs), lightweight SOP references and the
// per-session option catalog that owns them.
//
// What:
//
//   - Leg:         one directional slot of the journey (outbound, inbound, …).
//   - Option:      one concrete flight candidate for a leg (a "SOP").
//   - Entry:       {Leg, Sop} reference, usable as a map key.
//   - Candidate:   filtered projection of an Option used by predicates.
//   - Combination: one SOP id per active leg; the unit of generation,
//     filtering, scoring and storage.
//   - Catalog:     arena owning legs and options for one session.
//
// Index spaces:
//
//	Catalog.Add takes the leg index as supplied upstream (all legs, in order).
//	Every other API (Candidate, Option, Combination positions) uses the
//	ACTIVE position: legs flagged AcrossStopover are skipped, so active
//	position p is the p-th leg that is not across-stopover.
//
// Errors:
//
//	ErrLegOutOfRange - leg index or active position outside the catalog.
//	ErrDuplicateSop  - a SOP id already exists on that leg.
//	ErrSopNotFound   - no SOP with that id on that leg.
//
// The catalog is immutable once collected for a session; it is not safe for
// concurrent mutation, but concurrent reads after the last Add are fine.
package sop
