// SPDX-License-Identifier: MIT

package ibf

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/sop"
)

// GenerateInitialDirectFos returns up to q distinct direct combinations of
// catalog, in rank order, for hosts that build FOS outside a Manager. Only
// non-dummy, cabin-valid SOPs take part, and every combination passes the
// minimum connect time and interline checks of v. A nil v uses the
// catalog's ScheduleValidator; a nil log discards output.
func GenerateInitialDirectFos(ctx context.Context, catalog *sop.Catalog, q int, v filter.Validator, log *zap.Logger) ([]sop.Combination, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if catalog.LegCount() == 0 {
		return nil, ErrNoLegs
	}
	if q <= 0 {
		return nil, fmt.Errorf("GenerateInitialDirectFos(q=%d): %w", q, ErrInvalidConfig)
	}
	if v == nil {
		v = filter.NewScheduleValidator(catalog)
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("phase", phaseNgs))

	// 1) Direct, cabin-valid SOPs only.
	pipe := filter.NewPipeline(combgen.NewRanked(catalog.LegCount()),
		filter.WithCandidatePredicates(filter.CabinValid{Validator: v}, filter.IsDirect{}),
		filter.WithCombinationPredicates(filter.Combinations(v, filter.MinimumConnectTime, filter.InterlineTicketingAgreement)...),
		filter.WithObserver(filter.NewLogObserver(log, phasePrefix[phaseNgs])),
	)
	for _, c := range catalog.Candidates() {
		if _, err := pipe.AddCandidate(c); err != nil {
			return nil, fmt.Errorf("GenerateInitialDirectFos: %w", err)
		}
	}

	// 2) Drain until q combinations, exhaustion or a pipeline abort.
	out := make([]sop.Combination, 0, q)
	for len(out) < q {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := pipe.Next()
		if errors.Is(err, filter.ErrGenerationAborted) {
			log.Info("generation aborted", zap.Error(err))
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GenerateInitialDirectFos: %w", err)
		}
		if c.Empty() {
			break
		}
		out = append(out, c.Clone())
	}
	log.Info("initial direct FOS generated", zap.Int("count", len(out)), zap.Int("requested", q))

	return out, nil
}
