// SPDX-License-Identifier: MIT

// Package filter restricts what a combination generator produces.
//
// Two closed predicate sets exist:
//
//   - candidate predicates (IsDirect, OnlineForCarrier, CabinValid) decide
//     which SOPs are registered with the wrapped generator at all;
//   - combination predicates, one per Kind (MinimumConnectTime,
//     PositiveConnectTime, InterlineTicketingAgreement, CabinClassValidity),
//     decide which drawn combinations are returned.
//
// Predicates only evaluate yes/no answers of a Validator; they never look at
// schedules themselves. ScheduleValidator is the Validator built on a
// sop.Catalog.
//
// Pipeline wraps any combgen.Generator and implements the same contract, so
// pipelines and generators are interchangeable. Next keeps drawing from the
// wrapped generator until every combination predicate accepts, the wrapped
// generator is exhausted, or RetryLimit consecutive draws were rejected. The
// last case returns ErrGenerationAborted: the caller ends the current phase
// and keeps what it has.
//
// Every rejection is reported to the registered Observers with the name of
// the predicate that refused it.
package filter
