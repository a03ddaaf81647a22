// SPDX-License-Identifier: MIT

package requirements_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fosgen/requirements"
	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/swapper"
	"github.com/katalvlaran/fosgen/usage"
)

// fixture: leg 0 {1 LH direct, 2 LH, 3 UA direct}, leg 1 {1 LH direct, 2 UA direct}.
func fixture(t *testing.T, cfg requirements.Config) *requirements.Tracker {
	t.Helper()
	cat := sop.NewCatalog(sop.Leg{}, sop.Leg{})
	require.NoError(t, cat.Add(0, sop.Option{ID: 1, Carrier: "LH", Direct: true}))
	require.NoError(t, cat.Add(0, sop.Option{ID: 2, Carrier: "LH"}))
	require.NoError(t, cat.Add(0, sop.Option{ID: 3, Carrier: "UA", Direct: true}))
	require.NoError(t, cat.Add(1, sop.Option{ID: 1, Carrier: "LH", Direct: true}))
	require.NoError(t, cat.Add(1, sop.Option{ID: 2, Carrier: "UA", Direct: true}))

	u := usage.New(cat.LegCount())
	for _, c := range cat.Candidates() {
		require.NoError(t, u.Track(c.Leg, c.Sop))
	}
	tr, err := requirements.New(cat, u, cfg)
	require.NoError(t, err)

	return tr
}

func names(s *swapper.Swapper) []string {
	var out []string
	for _, a := range s.Appraisers() {
		out = append(out, a.Name())
	}
	return out
}

func TestNew_Errors(t *testing.T) {
	cat := sop.NewCatalog(sop.Leg{})
	u := usage.New(1)

	_, err := requirements.New(cat, u, requirements.Config{})
	assert.ErrorIs(t, err, requirements.ErrBadRequested)
	_, err = requirements.New(cat, u, requirements.Config{Requested: 1, RepeatLimit: -1})
	assert.ErrorIs(t, err, requirements.ErrBadRepeatLimit)
	_, err = requirements.New(nil, u, requirements.Config{Requested: 1})
	assert.ErrorIs(t, err, requirements.ErrNilDependency)
}

func TestNew_AppraiserOrder(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 4})
	assert.Equal(t, []string{requirements.NameAllSopsRepresented, requirements.NameRcOnlines}, names(tr.Swapper()))

	tr = fixture(t, requirements.Config{Requested: 4, AllDirect: true, RepeatLimit: 2, Carrier: "LH"})
	assert.Equal(t, []string{
		requirements.NameAllSopsRepresented,
		requirements.NameAllDirectOptions,
		requirements.NameScheduleRepeatLimit,
		requirements.NameRcOnlines,
	}, names(tr.Swapper()))
}

func TestTracker_CoverageAndCounts(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 3, AllDirect: true, Carrier: "LH"})
	tr.SetDirectTarget([]int{2, 2})
	assert.Equal(t, 3, tr.DirectTarget(), "min(Q, 2*2)")
	tr.SetRcoTarget(1)

	assert.False(t, tr.AllRequirementsMet())

	res := tr.Insert(sop.Combination{1, 1})
	require.Equal(t, swapper.Added, res.Status)
	assert.Equal(t, 1, tr.DirectCount())
	assert.Equal(t, 1, tr.RcoCount())
	assert.True(t, tr.IsRcOnlinesSatisfied())
	assert.Equal(t, 1, tr.Usage().UsageCount(0, 1))

	tr.Insert(sop.Combination{2, 2})
	tr.Insert(sop.Combination{3, 2})
	assert.True(t, tr.IsAllSopsRepresentedSatisfied())
	assert.True(t, tr.HasRequestedCount())
	assert.Equal(t, 2, tr.DirectCount())
	assert.False(t, tr.IsAllDirectOptionsSatisfied())
	assert.False(t, tr.AllRequirementsMet())

	// (3,1) brings no unrepresented SOP: residents holding one are kept.
	res = tr.Insert(sop.Combination{3, 1})
	assert.Equal(t, swapper.Rejected, res.Status)
	assert.Equal(t, 1, tr.Swapper().NoProgress())

	require.NoError(t, tr.Remove(sop.Combination{2, 2}))
	res = tr.Insert(sop.Combination{3, 1})
	require.Equal(t, swapper.Added, res.Status)
	assert.Equal(t, 3, tr.DirectCount())
	assert.True(t, tr.AllRequirementsMet())

	require.NoError(t, tr.Remove(sop.Combination{1, 1}))
	assert.Equal(t, 0, tr.RcoCount())
	assert.False(t, tr.HasRequestedCount())
	assert.True(t, tr.IsAllSopsRepresentedSatisfied(), "usage never decreases")
}

func TestTracker_AllSopsRepresentedScores(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 2})
	set := tr.Swapper()

	tr.Insert(sop.Combination{1, 1})
	sc, ok := set.ScoresOf(sop.Combination{1, 1})
	require.True(t, ok)
	assert.Equal(t, swapper.Score{Category: swapper.MustHave, Value: 2}, sc[0])

	tr.Insert(sop.Combination{2, 1})
	sc, _ = set.ScoresOf(sop.Combination{1, 1})
	assert.Equal(t, swapper.Score{Category: swapper.MustHave, Value: 1}, sc[0], "leg 1 SOP 1 is now shared")

	// (3,2) holds two SOPs nobody holds; (2,1) holds one. (2,1) goes.
	res := tr.Insert(sop.Combination{3, 2})
	require.Equal(t, swapper.Swapped, res.Status)
	assert.Equal(t, sop.Combination{2, 1}, res.Evicted)

	sc, _ = set.ScoresOf(sop.Combination{1, 1})
	assert.Equal(t, swapper.Score{Category: swapper.MustHave, Value: 2}, sc[0], "eviction restores uniqueness")

	// A newcomer with nothing new cannot evict anyone.
	assert.Equal(t, swapper.Rejected, tr.Insert(sop.Combination{1, 2}).Status)
}

func TestTracker_RepeatLimit(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 4, RepeatLimit: 1})
	set := tr.Swapper()
	const srl = 1 // appraiser index: AllSopsRepresented, ScheduleRepeatLimit, RcOnlines

	require.Equal(t, swapper.Added, tr.Insert(sop.Combination{1, 1}).Status)
	assert.True(t, tr.IsSrlSatisfied())

	// Leg 1 SOP 1 goes over the limit, but the set still has room.
	res := tr.Insert(sop.Combination{2, 1})
	require.Equal(t, swapper.Added, res.Status)
	assert.Equal(t, swapper.Discard, res.Scores[srl].Category)
	assert.Equal(t, 2, tr.Usage().UsageCount(1, 1))
	assert.False(t, tr.IsSrlSatisfied())

	sc, ok := set.ScoresOf(sop.Combination{1, 1})
	require.True(t, ok)
	assert.Equal(t, swapper.Discard, sc[srl].Category, "older holder rescored once the limit is crossed")

	require.Equal(t, swapper.Added, tr.Insert(sop.Combination{3, 1}).Status)
	require.NoError(t, tr.Remove(sop.Combination{3, 1}))
	sc, _ = set.ScoresOf(sop.Combination{1, 1})
	assert.Equal(t, swapper.Discard, sc[srl].Category, "still two holders")
	assert.False(t, tr.IsSrlSatisfied())

	require.NoError(t, tr.Remove(sop.Combination{2, 1}))
	sc, _ = set.ScoresOf(sop.Combination{1, 1})
	assert.Equal(t, swapper.Ignore, sc[srl].Category, "back at the limit")
	assert.True(t, tr.IsSrlSatisfied())
}

func TestTracker_RepeatLimitSwapsViolators(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 2, RepeatLimit: 1})

	tr.Insert(sop.Combination{1, 1})
	tr.Insert(sop.Combination{2, 1})
	require.True(t, tr.Swapper().IsFull())
	require.False(t, tr.IsSrlSatisfied())

	// (3,2) shares nothing and holds two unrepresented SOPs.
	res := tr.Insert(sop.Combination{3, 2})
	require.Equal(t, swapper.Swapped, res.Status)
	assert.True(t, tr.IsSrlSatisfied())
	assert.Len(t, tr.Swapper().Items(), 2)
}

func TestTracker_DuplicateInsert(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 3, RepeatLimit: 1})

	require.Equal(t, swapper.Added, tr.Insert(sop.Combination{1, 1}).Status)
	before, ok := tr.Swapper().ScoresOf(sop.Combination{1, 1})
	require.True(t, ok)

	res := tr.Insert(sop.Combination{1, 1})
	assert.Equal(t, swapper.Duplicate, res.Status)
	assert.False(t, res.Status.Accepted())
	assert.Equal(t, 1, tr.Usage().UsageCount(0, 1), "duplicates are not counted as use")
	assert.Equal(t, 1, tr.Usage().UsageCount(1, 1))
	assert.Equal(t, 1, tr.Swapper().NoProgress())
	assert.Equal(t, 1, tr.Swapper().Len())

	after, _ := tr.Swapper().ScoresOf(sop.Combination{1, 1})
	assert.Equal(t, before, after)
	assert.True(t, tr.IsSrlSatisfied())
}

func TestTracker_Targets(t *testing.T) {
	tr := fixture(t, requirements.Config{Requested: 10})
	tr.SetDirectTarget([]int{3, 0})
	assert.Equal(t, 0, tr.DirectTarget())
	tr.SetDirectTarget([]int{100000, 100000})
	assert.Equal(t, 10, tr.DirectTarget())
	tr.SetDirectTarget(nil)
	assert.Equal(t, 0, tr.DirectTarget())

	tr.SetRcoTarget(25)
	assert.Equal(t, 10, tr.RcoTarget())
	tr.SetRcoTarget(-3)
	assert.Equal(t, 0, tr.RcoTarget())

	assert.True(t, tr.IsAllDirectOptionsSatisfied(), "not requested")
	assert.False(t, tr.IsOnline(sop.Combination{1, 1}), "no requesting carrier")
	assert.False(t, tr.IsAllDirect(sop.Combination{9, 1}))
}
