// SPDX-License-Identifier: MIT

package ibf_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/filter"
	"github.com/katalvlaran/fosgen/ibf"
)

func TestDefaultConfig(t *testing.T) {
	cfg := ibf.DefaultConfig()
	assert.Equal(t, 0, cfg.RequestedSolutions)
	assert.Equal(t, filter.DefaultMinConnectTime, cfg.MinConnectTime)
	assert.Equal(t, ibf.DefaultQueueIterationsLimit, cfg.QueueIterationsLimit)
	assert.Equal(t, ibf.DefaultNoProgressAbort, cfg.NoProgressAbort)
	assert.Equal(t, ibf.DefaultAccumulatedNoProgressAbort, cfg.AccumulatedNoProgressAbort)
	assert.Equal(t, filter.DefaultRetryLimit, cfg.PipelineRetryLimit)
	assert.Equal(t, combgen.DefaultPenaltyPolicy(), cfg.Penalty)

	assert.ErrorIs(t, cfg.Validate(), ibf.ErrInvalidConfig, "requested solutions unset")
	cfg.RequestedSolutions = 10
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := ibf.LoadConfig(strings.NewReader(`
requested_solutions: 50
schedule_repeat_limit: 3
all_direct_required: true
requesting_carrier: LH
min_connect_time: 45m
no_progress_abort: 10
`))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.RequestedSolutions)
	assert.Equal(t, 3, cfg.ScheduleRepeatLimit)
	assert.True(t, cfg.AllDirectRequired)
	assert.False(t, cfg.AllowIllogical)
	assert.Equal(t, "LH", cfg.RequestingCarrier)
	assert.Equal(t, 45*time.Minute, cfg.MinConnectTime)
	assert.Equal(t, 10, cfg.NoProgressAbort)
	assert.Equal(t, ibf.DefaultPhaseDrawLimit, cfg.PhaseDrawLimit, "defaults kept for absent keys")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := ibf.LoadConfig(strings.NewReader(""))
	assert.ErrorIs(t, err, ibf.ErrInvalidConfig, "empty document keeps Q unset")

	_, err = ibf.LoadConfig(strings.NewReader("requested_solutions: 5\nunknown_key: 1\n"))
	assert.Error(t, err)

	_, err = ibf.LoadConfig(strings.NewReader("requested_solutions: 5\nrequesting_carrier: LUFTHANSA\n"))
	assert.ErrorIs(t, err, ibf.ErrInvalidConfig)

	_, err = ibf.LoadConfig(strings.NewReader("requested_solutions: 5\nschedule_repeat_limit: -1\n"))
	assert.ErrorIs(t, err, ibf.ErrInvalidConfig)
}
