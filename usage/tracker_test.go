// SPDX-License-Identifier: MIT

package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fosgen/sop"
	"github.com/katalvlaran/fosgen/usage"
)

func newTracker(t *testing.T) *usage.Tracker {
	t.Helper()
	tr := usage.New(2)
	for _, id := range []int{7, 3, 5} {
		require.NoError(t, tr.Track(0, id))
	}
	for _, id := range []int{1, 2} {
		require.NoError(t, tr.Track(1, id))
	}
	require.NoError(t, tr.Track(1, 2), "tracking twice is a no-op")

	return tr
}

func TestTracker_Coverage(t *testing.T) {
	tr := newTracker(t)
	assert.Equal(t, 5, tr.Count())
	assert.Equal(t, 5, tr.UnusedCount())
	assert.Equal(t, []int{3, 5, 7}, tr.UnusedOnLeg(0))

	require.NoError(t, tr.RecordCombination(sop.Combination{3, 2}))
	require.NoError(t, tr.RecordUse(0, 3))

	assert.Equal(t, 2, tr.UsageCount(0, 3))
	assert.Equal(t, 1, tr.UsageCount(1, 2))
	assert.Equal(t, 0, tr.UsageCount(1, 99))
	assert.Equal(t, 0, tr.UsageCount(9, 1))
	assert.Equal(t, []int{5, 7}, tr.UnusedOnLeg(0))
	assert.Equal(t, 2, tr.UnusedCountOnLeg(0))
	assert.Equal(t, 1, tr.UnusedCountOnLeg(1))
	assert.Equal(t, 3, tr.UnusedCount())

	for _, e := range []sop.Entry{{Leg: 0, Sop: 5}, {Leg: 0, Sop: 7}, {Leg: 1, Sop: 1}} {
		require.NoError(t, tr.RecordUse(e.Leg, e.Sop))
	}
	assert.Equal(t, 0, tr.UnusedCount())
	assert.Empty(t, tr.UnusedOnLeg(1))
}

func TestTracker_Faults(t *testing.T) {
	tr := newTracker(t)
	assert.ErrorIs(t, tr.Track(2, 1), usage.ErrLegOutOfRange)
	assert.ErrorIs(t, tr.RecordUse(-1, 1), usage.ErrLegOutOfRange)
	assert.ErrorIs(t, tr.RecordUse(0, 42), usage.ErrUntrackedSop)
	assert.ErrorIs(t, tr.RecordCombination(sop.Combination{3, 42}), usage.ErrUntrackedSop)
	assert.ErrorIs(t, tr.TrackOnlyLeg(5), usage.ErrLegOutOfRange)
	assert.Nil(t, tr.UnusedOnLeg(5))
}

func TestTracker_TrackOnlyLeg(t *testing.T) {
	tr := newTracker(t)
	require.NoError(t, tr.TrackOnlyLeg(1))
	assert.Equal(t, 1, tr.OnlyLeg())
	assert.Equal(t, 2, tr.Count())

	require.NoError(t, tr.RecordUse(1, 1))
	require.NoError(t, tr.RecordUse(1, 2))
	assert.Equal(t, 0, tr.UnusedCount(), "leg 0 does not count")

	require.NoError(t, tr.TrackOnlyLeg(-1))
	assert.Equal(t, 3, tr.UnusedCount())
}

func TestTracker_Entries(t *testing.T) {
	tr := newTracker(t)
	assert.Equal(t, []sop.Entry{
		{Leg: 0, Sop: 7}, {Leg: 0, Sop: 3}, {Leg: 0, Sop: 5},
		{Leg: 1, Sop: 1}, {Leg: 1, Sop: 2},
	}, tr.Entries())
	assert.True(t, tr.IsTracked(0, 7))
	assert.False(t, tr.IsTracked(1, 7))
	assert.Equal(t, 2, tr.Legs())
}
