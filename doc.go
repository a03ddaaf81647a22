// SPDX-License-Identifier: MIT

// Package fosgen generates flight-only solutions (FOS) for a shopping
// request: combinations of one scheduling option (SOP) per leg, chosen so
// the result set covers every SOP, keeps the requested direct and
// carrier-online options, and respects a schedule repeat limit.
//
// Packages, bottom up:
//
//	sop/          - legs, options, the per-session Catalog and Combination keys
//	combgen/      - lazy combination generators: Ranked, Penalized, Progress
//	filter/       - candidate and combination predicates, the Pipeline wrapper
//	usage/        - per-SOP use counts and coverage queries
//	estimate/     - the RC online count estimate
//	swapper/      - the bounded, score-ordered result set
//	requirements/ - requirement appraisers bound to a swapper
//	ibf/          - the Manager that runs the generation phases
//
// Quick example:
//
//	cat := sop.NewCatalog(sop.Leg{}, sop.Leg{})
//	_ = cat.Add(0, sop.Option{ID: 1, Carrier: "LH", Direct: true})
//	_ = cat.Add(1, sop.Option{ID: 1, Carrier: "LH", Direct: true})
//
//	cfg := ibf.DefaultConfig()
//	cfg.RequestedSolutions = 50
//	m, _ := ibf.NewManager(cat, cfg, ibf.WithLogger(log))
//	_ = m.PerformInitialTasks(ctx)
//	_ = m.GenerateFinalFosSolutions(ctx)
//	for _, s := range m.Solutions() { ... }
//
// Every package is single-threaded: one Manager per session.
package fosgen
