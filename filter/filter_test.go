// SPDX-License-Identifier: MIT

package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/sop"
)

// sumBelow accepts combinations whose id sum is below limit.
type sumBelow struct {
	limit int
	cabin map[int]bool // sop id -> invalid cabin
}

func (v sumBelow) Valid(kind filter.Kind, c sop.Combination) bool {
	if kind != filter.MinimumConnectTime {
		return true
	}
	sum := 0
	for _, id := range c {
		sum += id
	}
	return sum < v.limit
}

func (v sumBelow) CabinValid(c sop.Candidate) bool { return !v.cabin[c.Sop] }

// recorder collects rejections.
type recorder struct {
	candidates   []string
	combinations []string
}

func (r *recorder) observer() filter.ObserverFuncs {
	return filter.ObserverFuncs{
		Candidate:   func(c sop.Candidate, by string) { r.candidates = append(r.candidates, by) },
		Combination: func(c sop.Combination, by string) { r.combinations = append(r.combinations, c.String()+" "+by) },
	}
}

func TestCandidatePredicates(t *testing.T) {
	direct := sop.Candidate{Leg: 0, Sop: 1, Direct: true, Carrier: "LH"}
	interline := sop.Candidate{Leg: 0, Sop: 2}

	assert.True(t, filter.IsDirect{}.Accept(direct))
	assert.False(t, filter.IsDirect{}.Accept(interline))
	assert.True(t, filter.OnlineForCarrier{Carrier: "LH"}.Accept(direct))
	assert.False(t, filter.OnlineForCarrier{Carrier: "LH"}.Accept(interline))
	assert.False(t, filter.OnlineForCarrier{}.Accept(interline), "empty carrier never matches")
	assert.Equal(t, "OnlineForCarrier(LH)", filter.OnlineForCarrier{Carrier: "LH"}.Name())

	cabin := filter.CabinValid{Validator: sumBelow{cabin: map[int]bool{2: true}}}
	assert.True(t, cabin.Accept(direct))
	assert.False(t, cabin.Accept(interline))
	assert.True(t, filter.CabinValid{}.Accept(interline))
}

func TestPipeline_FiltersCandidatesAndCombinations(t *testing.T) {
	rec := &recorder{}
	v := sumBelow{limit: 5}
	p := filter.NewPipeline(combgen.NewRanked(0),
		filter.WithCandidatePredicates(filter.IsDirect{}),
		filter.WithCombinationPredicates(filter.Combinations(v, filter.MinimumConnectTime, filter.PositiveConnectTime)...),
		filter.WithObserver(rec.observer()),
	)
	require.NoError(t, p.SetLegs(2))

	for _, c := range []sop.Candidate{
		{Leg: 0, Sop: 1, Direct: true},
		{Leg: 0, Sop: 9},
		{Leg: 0, Sop: 3, Direct: true},
		{Leg: 1, Sop: 1, Direct: true},
		{Leg: 1, Sop: 2, Direct: true},
	} {
		_, err := p.AddCandidate(c)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, p.Accepted())
	assert.Equal(t, 2, p.SopsOnLeg(0))
	assert.Equal(t, []string{"IsDirect"}, rec.candidates)

	var got []sop.Combination
	for {
		c, err := p.Next()
		require.NoError(t, err)
		if c.Empty() {
			break
		}
		got = append(got, c)
	}
	// Ranked order: (1,1) (1,2) (3,1) (3,2); the last sums to 5.
	assert.Equal(t, []sop.Combination{{1, 1}, {1, 2}, {3, 1}}, got)
	assert.Equal(t, []string{"(3, 2) MinimumConnectTime"}, rec.combinations)
	assert.Equal(t, 1, p.Rejected())
}

func TestPipeline_RetryLimit(t *testing.T) {
	p := filter.NewPipeline(combgen.NewRanked(1),
		filter.WithCombinationPredicates(filter.NewCombinationPredicate(filter.MinimumConnectTime, sumBelow{limit: 0})),
		filter.WithRetryLimit(2),
	)
	for id := 1; id <= 5; id++ {
		require.NoError(t, p.AddSop(0, id))
	}

	c, err := p.Next()
	assert.Nil(t, c)
	assert.ErrorIs(t, err, filter.ErrGenerationAborted)

	p.Reset()
	_, err = p.Next()
	assert.ErrorIs(t, err, filter.ErrGenerationAborted, "aborting is not sticky, Reset retries")
}

func TestPipeline_ForwardsFaults(t *testing.T) {
	p := filter.NewPipeline(combgen.NewRanked(0))
	_, err := p.Next()
	assert.ErrorIs(t, err, combgen.ErrNotSeeded)

	assert.Panics(t, func() { filter.NewPipeline(nil) })
	assert.Panics(t, func() { filter.WithRetryLimit(0) })
	assert.Panics(t, func() { filter.WithObserver(nil) })
}

func TestPipeline_AddSopWithLookup(t *testing.T) {
	cat := sop.NewCatalog(sop.Leg{})
	require.NoError(t, cat.Add(0, sop.Option{ID: 1, Carrier: "LH", Direct: true}))
	require.NoError(t, cat.Add(0, sop.Option{ID: 2, Carrier: "UA"}))

	p := filter.NewPipeline(combgen.NewRanked(1),
		filter.WithLookup(cat),
		filter.WithCandidatePredicates(filter.OnlineForCarrier{Carrier: "UA"}),
	)
	require.NoError(t, p.AddSop(0, 1))
	require.NoError(t, p.AddSop(0, 2))
	assert.ErrorIs(t, p.AddSop(0, 3), sop.ErrSopNotFound)
	assert.Equal(t, 1, p.SopsOnLeg(0))
	assert.Equal(t, 1, p.Legs())
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	o := filter.NewLogObserver(zap.New(core), "[ASR] Sop combination")

	o.CombinationRejected(sop.Combination{1, 2}, "MinimumConnectTime")
	o.CandidateRejected(sop.Candidate{Leg: 1, Sop: 4}, "IsDirect")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "[ASR] Sop combination rejected", entries[0].Message)
	assert.Equal(t, "(1, 2)", entries[0].ContextMap()["combination"])
	assert.Equal(t, "IsDirect", entries[1].ContextMap()["by"])

	assert.NotPanics(t, func() {
		filter.NewLogObserver(nil, "x").CandidateRejected(sop.Candidate{}, "y")
	})
}

func TestScheduleValidator(t *testing.T) {
	base := time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC)
	at := func(carrier string, dep, arr time.Duration) []sop.Segment {
		return []sop.Segment{{Carrier: carrier, Departure: base.Add(dep), Arrival: base.Add(arr)}}
	}

	cat := sop.NewCatalog(sop.Leg{}, sop.Leg{})
	require.NoError(t, cat.Add(0, sop.Option{ID: 1, Carrier: "LH", Segments: at("LH", 0, 2*time.Hour)}))
	require.NoError(t, cat.Add(1, sop.Option{ID: 1, Carrier: "LH", Segments: at("LH", 2*time.Hour+10*time.Minute, 4*time.Hour)}))
	require.NoError(t, cat.Add(1, sop.Option{ID: 2, Carrier: "UA", Segments: at("UA", 3*time.Hour, 5*time.Hour)}))
	require.NoError(t, cat.Add(1, sop.Option{ID: 3, Carrier: "AA", Segments: at("AA", time.Hour, 3*time.Hour)}))

	v := filter.NewScheduleValidator(cat,
		filter.WithInterline(func(carriers []string) bool { return carriers[1] != "AA" }),
		filter.WithCabin(func(c sop.Candidate) bool { return c.Carrier != "UA" }),
	)

	assert.False(t, v.Valid(filter.MinimumConnectTime, sop.Combination{1, 1}), "10 minutes is too short")
	assert.True(t, v.Valid(filter.PositiveConnectTime, sop.Combination{1, 1}))
	assert.True(t, v.Valid(filter.MinimumConnectTime, sop.Combination{1, 2}))
	assert.False(t, v.Valid(filter.PositiveConnectTime, sop.Combination{1, 3}))

	assert.True(t, v.Valid(filter.InterlineTicketingAgreement, sop.Combination{1, 1}), "online")
	assert.True(t, v.Valid(filter.InterlineTicketingAgreement, sop.Combination{1, 2}))
	assert.False(t, v.Valid(filter.InterlineTicketingAgreement, sop.Combination{1, 3}))

	assert.False(t, v.Valid(filter.CabinClassValidity, sop.Combination{1, 2}))
	assert.True(t, v.Valid(filter.CabinClassValidity, sop.Combination{1, 1}))

	assert.False(t, v.Valid(filter.MinimumConnectTime, sop.Combination{1, 9}), "unknown SOP")
	assert.False(t, v.Valid(filter.MinimumConnectTime, sop.Combination{1}), "wrong length")
	assert.False(t, v.Valid(filter.Kind(42), sop.Combination{1, 1}))
	assert.Equal(t, "Kind(42)", filter.Kind(42).String())

	loose := filter.NewScheduleValidator(cat, filter.WithMinConnectTime(0))
	assert.True(t, loose.Valid(filter.MinimumConnectTime, sop.Combination{1, 1}))
}
