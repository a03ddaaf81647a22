// SPDX-License-Identifier: MIT

// Package ibf drives FOS generation for one shopping session.
//
// A Manager owns the result set (requirements.Tracker over a swapper), the
// SOP usage tracker, the RCO estimator and the phase generators. The host
// calls it in three steps:
//
//  1. PerformInitialTasks - collect cabin-valid SOPs, fill the result set
//     with unique direct combinations (or, when every direct combination is
//     required, only prepare the direct generator and its target) and
//     estimate how many RC online combinations are wanted.
//  2. NewQueueSolution / AreAllRequirementsMet - offer priced solutions
//     from the external queue until the requirements hold or the result set
//     stopped making progress.
//  3. GenerateFinalFosSolutions - run the remaining phases in order:
//
//     ASR      all sops represented, usage-ordered generator, MCT
//     direct   only when AllDirectRequired
//     RCO      combinations online for the requesting carrier
//     non-MCT  ASR with a positive connect time, when AllowIllogical and Q
//     is not reached
//     Q0S      fill up to Q while respecting the schedule repeat limit
//
// Every phase ends on its own requirement, on exhaustion, on a pipeline
// abort (filter.ErrGenerationAborted), or after Config.PhaseDrawLimit draws.
// None of these is an error: the result set is valid whatever is reached.
//
// Ambient concerns:
//
//   - Logging: *zap.Logger via WithLogger; every line carries the session id.
//   - Metrics: optional Prometheus collectors via NewMetrics and WithMetrics.
//   - Tracing: one OpenTelemetry span per entry point and per phase.
//   - Config: Config with YAML tags, validated by go-playground/validator.
//
// Errors:
//
//	ErrNilCatalog, ErrNoLegs  - NewManager input faults.
//	ErrInvalidConfig          - Config.Validate, LoadConfig and NewManager.
//	ErrNotInitialized         - GenerateFinalFosSolutions before step 1.
//	ErrAlreadyInitialized     - step 1 called twice.
//	ErrAlreadyGenerated       - step 3 called twice.
//	ErrInvalidCombination     - NewQueueSolution outside the catalog.
//
// Context cancellation is checked before every draw and returned as is.
//
// A Manager is single-threaded; run one per session.
package ibf
