// SPDX-License-Identifier: MIT

package combgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/fosgen/combgen"
)

func TestPenaltyPolicy_Table(t *testing.T) {
	p := combgen.DefaultPenaltyPolicy()
	cases := []struct {
		usage, want int
	}{
		{0, 0}, {1, 8}, {2, 27}, {3, 64}, {4, 125}, {5, 216},
		{48, 117649}, {49, 125000}, {50, 125000}, {1000, 125000},
		{-1, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Penalty(tc.usage), "usage=%d", tc.usage)
	}
}

func TestPenaltyPolicy_Record(t *testing.T) {
	p := combgen.DefaultPenaltyPolicy()

	r := p.Record(7, 2, false)
	assert.Equal(t, combgen.PenaltyRecord{Sop: 7, UsageCount: 2, Penalty: 27, Rank: 34}, r)

	r = p.Record(7, 1, true)
	assert.Equal(t, 125000, r.Penalty, "return-all-flights leg saturates on first use")
	assert.Equal(t, 125007, r.Rank)

	r = p.Record(7, 0, true)
	assert.Equal(t, 7, r.Rank)
}

func TestPenaltyPolicy_Custom(t *testing.T) {
	p := combgen.PenaltyPolicy{Exponent: 2, Threshold: 10, Ceiling: 50}
	assert.Equal(t, 4, p.Penalty(1))
	assert.Equal(t, 49, p.Penalty(6))
	assert.Equal(t, 50, p.Penalty(7))
	assert.Equal(t, 50, p.Penalty(10))
}
