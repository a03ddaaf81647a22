// SPDX-License-Identifier: MIT

package combgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/sop"
)

// seed registers ids leg by leg.
func seed(t *testing.T, g combgen.Generator, legs ...[]int) {
	t.Helper()
	require.NoError(t, g.SetLegs(len(legs)))
	for leg, ids := range legs {
		for _, id := range ids {
			require.NoError(t, g.AddSop(leg, id))
		}
	}
}

// drain pulls at most limit combinations, stopping at the sentinel.
func drain(t *testing.T, g combgen.Generator, limit int) []sop.Combination {
	t.Helper()
	var out []sop.Combination
	for i := 0; i < limit; i++ {
		c, err := g.Next()
		require.NoError(t, err)
		if c.Empty() {
			break
		}
		out = append(out, c)
	}

	return out
}

func TestRanked_Order(t *testing.T) {
	g := combgen.NewRanked(0)
	seed(t, g, []int{10, 11}, []int{20, 21, 22})

	got := drain(t, g, 100)
	want := []sop.Combination{
		{10, 20},
		{10, 21}, {11, 20},
		{10, 22}, {11, 21},
		{11, 22},
	}
	assert.Equal(t, want, got)

	c, err := g.Next()
	require.NoError(t, err)
	assert.True(t, c.Empty(), "past exhaustion the sentinel repeats")
}

func TestRanked_ThreeLegsRankTwo(t *testing.T) {
	g := combgen.NewRanked(0)
	seed(t, g, []int{0, 1, 2, 3}, []int{0, 1, 2}, []int{0, 1, 2})

	got := drain(t, g, 10)
	want := []sop.Combination{
		{0, 0, 0},
		{0, 0, 1}, {0, 1, 0}, {1, 0, 0},
		{0, 0, 2}, {0, 1, 1}, {0, 2, 0}, {1, 0, 1}, {1, 1, 0}, {2, 0, 0},
	}
	assert.Equal(t, want, got)
	assert.Len(t, drain(t, g, 1000), 36-10, "whole product is visited exactly once")
}

func TestRanked_Faults(t *testing.T) {
	g := combgen.NewRanked(0)
	_, err := g.Next()
	assert.ErrorIs(t, err, combgen.ErrNotSeeded)

	assert.ErrorIs(t, g.SetLegs(0), combgen.ErrBadLegCount)

	require.NoError(t, g.SetLegs(2))
	c, err := g.Next()
	require.NoError(t, err, "legs set, nothing added: empty, not a fault")
	assert.True(t, c.Empty())

	assert.ErrorIs(t, g.AddSop(2, 1), combgen.ErrLegOutOfRange)
	assert.ErrorIs(t, g.AddSop(-1, 1), combgen.ErrLegOutOfRange)
}

func TestRanked_EmptyLeg(t *testing.T) {
	g := combgen.NewRanked(2)
	require.NoError(t, g.AddSop(0, 1))

	for i := 0; i < 3; i++ {
		c, err := g.Next()
		require.NoError(t, err)
		assert.True(t, c.Empty())
	}
}

func TestRanked_DuplicatesAndReset(t *testing.T) {
	g := combgen.NewRanked(1)
	require.NoError(t, g.AddSop(0, 4))
	require.NoError(t, g.AddSop(0, 4))
	assert.Equal(t, 1, g.SopsOnLeg(0))
	assert.Equal(t, 0, g.SopsOnLeg(3))
	assert.Equal(t, 1, g.Legs())

	assert.Equal(t, []sop.Combination{{4}}, drain(t, g, 10))

	g.Reset()
	assert.Equal(t, []sop.Combination{{4}}, drain(t, g, 10))

	// A new SOP restarts the enumeration.
	require.NoError(t, g.AddSop(0, 9))
	assert.Equal(t, []sop.Combination{{4}, {9}}, drain(t, g, 10))
}
