// SPDX-License-Identifier: MIT

package ibf

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/estimate"
	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/requirements"
	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
	"github.com/katalvlaran/fosgen/usage"
)

const tracerName = "github.com/katalvlaran/fosgen/ibf"

var (
	// ErrNilCatalog is returned by NewManager for a nil catalog.
	ErrNilCatalog = errors.New("ibf: nil catalog")

	// ErrNoLegs is returned by NewManager for a catalog without active legs.
	ErrNoLegs = errors.New("ibf: catalog has no active legs")

	// ErrNotInitialized is returned by GenerateFinalFosSolutions before
	// PerformInitialTasks.
	ErrNotInitialized = errors.New("ibf: initial tasks not performed")

	// ErrAlreadyInitialized is returned by a second PerformInitialTasks.
	ErrAlreadyInitialized = errors.New("ibf: initial tasks already performed")

	// ErrAlreadyGenerated is returned by a second GenerateFinalFosSolutions.
	ErrAlreadyGenerated = errors.New("ibf: final FOS already generated")

	// ErrInvalidCombination is returned for a queue combination that does
	// not match the catalog.
	ErrInvalidCombination = errors.New("ibf: invalid combination")
)

// Solution is one resident of the result matrix. Price is the caller's
// handle; generated FOS carry a nil price.
type Solution struct {
	Combination sop.Combination
	Price       any
}

// Status summarises requirement satisfaction and coverage.
type Status struct {
	AllSopsRepresented  bool
	AllDirectOptions    bool
	RcOnlines           bool
	ScheduleRepeatLimit bool
	RequestedCount      bool

	Solutions    int
	Requested    int
	UnusedSops   int
	TotalSops    int
	DirectCount  int
	DirectTarget int
	RcoCount     int
	RcoTarget    int
	NoProgress   int
}

// Manager sequences FOS generation phases against the result set for one
// session. It is not safe for concurrent use.
type Manager struct {
	cfg       Config
	catalog   *sop.Catalog
	log       *zap.Logger
	metrics   *Metrics
	validator filter.Validator
	observers []filter.Observer
	tracer    trace.Tracer
	session   string

	req       *requirements.Tracker
	usage     *usage.Tracker
	estimator *estimate.Estimator

	valid     []sop.Candidate
	rco       *phaseGenerator
	direct    *phaseGenerator
	directFos []sop.Combination

	// matrix mirrors the result set, keyed by Combination.Key.
	matrix map[string]*Solution

	accumulatedNoProgress int
	initialized           bool
	generated             bool // phase generators are closed after the first run
}

// NewManager validates cfg and prepares a session over catalog.
func NewManager(catalog *sop.Catalog, cfg Config, opts ...Option) (*Manager, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if catalog.LegCount() == 0 {
		return nil, ErrNoLegs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("NewManager: %w", err)
	}

	m := &Manager{
		cfg:       cfg,
		catalog:   catalog,
		log:       zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		session:   uuid.NewString(),
		usage:     usage.New(catalog.LegCount()),
		estimator: estimate.New(),
		matrix:    make(map[string]*Solution, cfg.RequestedSolutions),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(zap.String("session", m.session))
	if m.validator == nil {
		m.validator = filter.NewScheduleValidator(catalog, filter.WithMinConnectTime(cfg.MinConnectTime))
	}

	req, err := requirements.New(catalog, m.usage, requirements.Config{
		Requested:   cfg.RequestedSolutions,
		RepeatLimit: cfg.ScheduleRepeatLimit,
		AllDirect:   cfg.AllDirectRequired,
		Carrier:     cfg.RequestingCarrier,
	})
	if err != nil {
		return nil, fmt.Errorf("NewManager: %w", err)
	}
	m.req = req

	m.rco = m.newPenalizedGenerator(phaseRco,
		[]filter.CandidatePredicate{filter.OnlineForCarrier{Carrier: cfg.RequestingCarrier}},
		filter.MinimumConnectTime, filter.InterlineTicketingAgreement)

	if cfg.ScheduleRepeatLimit > 0 {
		m.log.Info("enabling SRL", zap.Int("srl", cfg.ScheduleRepeatLimit))
	} else {
		m.log.Info("not enabling SRL")
	}

	return m, nil
}

// SessionID returns the session identifier carried by every log line.
func (m *Manager) SessionID() string { return m.session }

// Config returns the session configuration.
func (m *Manager) Config() Config { return m.cfg }

// NewQueueSolution offers an externally priced combination. A duplicate of
// a generated FOS takes over the price.
func (m *Manager) NewQueueSolution(c sop.Combination, price any) (swapper.Result, error) {
	if !m.catalog.Contains(c) {
		return swapper.Result{}, fmt.Errorf("NewQueueSolution(%s): %w", c, ErrInvalidCombination)
	}
	res := m.insertNewOption(phaseQueue, c, price)
	if res.Status == swapper.Duplicate {
		if s, ok := m.matrix[c.Key()]; ok && s.Price == nil {
			s.Price = price
		}
	}

	return res, nil
}

// AreAllRequirementsMet reports whether the queue consumer may stop: every
// requirement holds, or the result set made no progress for
// QueueIterationsLimit inserts.
func (m *Manager) AreAllRequirementsMet() bool {
	if m.req.AllRequirementsMet() {
		return true
	}
	if n := m.req.Swapper().NoProgress(); n >= m.cfg.QueueIterationsLimit {
		m.log.Info("aborted queue processing without progress", zap.Int("iterations", n))
		return true
	}

	return false
}

// Remove drops a combination from the result set and the matrix.
func (m *Manager) Remove(c sop.Combination) error {
	if err := m.req.Remove(c); err != nil {
		return err
	}
	delete(m.matrix, c.Key())

	return nil
}

// Solutions returns the result set best first.
func (m *Manager) Solutions() []Solution {
	items := m.req.Swapper().Items()
	out := make([]Solution, 0, len(items))
	for _, c := range items {
		s, ok := m.matrix[c.Key()]
		if !ok {
			// Unreachable while the matrix mirrors the set.
			m.log.Error("resident missing from matrix", zap.Stringer("combination", c))
			continue
		}
		out = append(out, Solution{Combination: c, Price: s.Price})
	}

	return out
}

// DirectFosSolutions returns the combinations accepted by the initial direct phase.
func (m *Manager) DirectFosSolutions() []sop.Combination {
	out := make([]sop.Combination, len(m.directFos))
	for i, c := range m.directFos {
		out[i] = c.Clone()
	}

	return out
}

// Status reports the current requirement state.
func (m *Manager) Status() Status {
	set := m.req.Swapper()

	return Status{
		AllSopsRepresented:  m.req.IsAllSopsRepresentedSatisfied(),
		AllDirectOptions:    m.req.IsAllDirectOptionsSatisfied(),
		RcOnlines:           m.req.IsRcOnlinesSatisfied(),
		ScheduleRepeatLimit: m.req.IsSrlSatisfied(),
		RequestedCount:      m.req.HasRequestedCount(),
		Solutions:           set.Len(),
		Requested:           m.cfg.RequestedSolutions,
		UnusedSops:          m.usage.UnusedCount(),
		TotalSops:           m.usage.Count(),
		DirectCount:         m.req.DirectCount(),
		DirectTarget:        m.req.DirectTarget(),
		RcoCount:            m.req.RcoCount(),
		RcoTarget:           m.req.RcoTarget(),
		NoProgress:          set.NoProgress(),
	}
}

// Close releases generators still subscribed to the result set.
func (m *Manager) Close() {
	m.rco.close()
	m.direct.close()
}

// isResultSetDone reports whether Q is reached without violating the SRL.
func (m *Manager) isResultSetDone() bool {
	return m.req.HasRequestedCount() && m.req.IsSrlSatisfied()
}

// insertNewOption offers c to the result set and keeps the matrix in step.
func (m *Manager) insertNewOption(phase string, c sop.Combination, price any) swapper.Result {
	set := m.req.Swapper()
	res := m.req.Insert(c)
	m.metrics.insert(phase, res.Status)

	switch res.Status {
	case swapper.Added:
		m.matrix[c.Key()] = &Solution{Combination: c.Clone(), Price: price}
		m.log.Info("added option",
			zap.String("phase", phase),
			zap.Stringer("combination", c),
			zap.String("scores", set.FormatScores(res.Scores)),
		)
	case swapper.Swapped:
		m.matrix[c.Key()] = &Solution{Combination: c.Clone(), Price: price}
		delete(m.matrix, res.Evicted.Key())
		m.log.Info("added option and removed bottom",
			zap.String("phase", phase),
			zap.Stringer("combination", c),
			zap.String("scores", set.FormatScores(res.Scores)),
			zap.Stringer("removed", res.Evicted),
		)
	case swapper.Rejected:
		if set.Len() == 0 {
			m.log.Error("unexpected empty result set", zap.String("phase", phase))
			break
		}
		worst := set.Worst()
		worstScores, _ := set.ScoresOf(worst)
		m.log.Info("not added option since worse than bottom",
			zap.String("phase", phase),
			zap.Stringer("combination", c),
			zap.String("scores", set.FormatScores(res.Scores)),
			zap.Stringer("bottom", worst),
			zap.String("bottom_scores", set.FormatScores(worstScores)),
		)
	case swapper.Duplicate:
		m.log.Debug("option already present", zap.String("phase", phase), zap.Stringer("combination", c))
	}
	m.metrics.state(m.usage.UnusedCount(), set.Len())

	return res
}

// phaseGenerator is a filter pipeline over a penalized generator.
type phaseGenerator struct {
	pipe *filter.Pipeline
	gen  *combgen.Penalized
}

func (g *phaseGenerator) close() {
	if g != nil {
		g.gen.Close()
	}
}

// newPenalizedGenerator builds a pipeline over a penalized generator that
// follows the result set.
func (m *Manager) newPenalizedGenerator(phase string, candidates []filter.CandidatePredicate, kinds ...filter.Kind) *phaseGenerator {
	gen := combgen.NewPenalized(m.catalog.LegCount(), m.usage,
		combgen.WithPenaltyPolicy(m.cfg.Penalty),
		combgen.WithReturnAllFlightsLeg(m.catalog.ReturnAllFlightsLeg()),
		combgen.WithEvents(m.req.Swapper()),
	)
	opts := []filter.PipelineOption{
		filter.WithCandidatePredicates(candidates...),
		filter.WithCombinationPredicates(filter.Combinations(m.validator, kinds...)...),
		filter.WithRetryLimit(m.cfg.PipelineRetryLimit),
	}
	opts = append(opts, m.phaseObservers(phase)...)

	return &phaseGenerator{pipe: filter.NewPipeline(gen, opts...), gen: gen}
}

// phaseObservers returns the log, metrics and caller observers of a phase.
func (m *Manager) phaseObservers(phase string) []filter.PipelineOption {
	opts := []filter.PipelineOption{
		filter.WithObserver(filter.NewLogObserver(m.log.With(zap.String("phase", phase)), phasePrefix[phase])),
		filter.WithObserver(filter.ObserverFuncs{
			Candidate:   func(_ sop.Candidate, by string) { m.metrics.rejected(phase, by) },
			Combination: func(_ sop.Combination, by string) { m.metrics.rejected(phase, by) },
		}),
	}
	for _, o := range m.observers {
		opts = append(opts, filter.WithObserver(o))
	}

	return opts
}

// load registers every valid SOP with p.
func (m *Manager) load(p *filter.Pipeline) error {
	for _, c := range m.valid {
		if _, err := p.AddCandidate(c); err != nil {
			return err
		}
	}

	return nil
}
