// SPDX-License-Identifier: MIT

package ibf

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fosgen/combgen"
	"github.com/katalvlaran/fosgen/filter"
)

// Default thresholds.
const (
	DefaultQueueIterationsLimit       = 1000
	DefaultNoProgressAbort            = 700
	DefaultAccumulatedNoProgressAbort = 1000
	DefaultProgressSkipLimit          = 20000
	DefaultPhaseDrawLimit             = 100000
)

// Config is the immutable per-session configuration of a Manager.
type Config struct {
	// RequestedSolutions is Q, the capacity of the result set.
	RequestedSolutions int `yaml:"requested_solutions" validate:"gt=0"`

	// ScheduleRepeatLimit is the SRL; 0 disables it.
	ScheduleRepeatLimit int `yaml:"schedule_repeat_limit" validate:"gte=0"`

	// AllDirectRequired asks for every direct combination.
	AllDirectRequired bool `yaml:"all_direct_required"`

	// AllowIllogical enables the non-minimum-connect-time phase.
	AllowIllogical bool `yaml:"allow_illogical"`

	// RequestingCarrier drives RCO generation and scoring.
	RequestingCarrier string `yaml:"requesting_carrier" validate:"omitempty,alphanum,min=2,max=3"`

	// ContextShopping restricts coverage to the return-all-flights leg.
	ContextShopping bool `yaml:"context_shopping"`

	// MinConnectTime is used by the default schedule validator.
	MinConnectTime time.Duration `yaml:"min_connect_time" validate:"gte=0"`

	QueueIterationsLimit       int `yaml:"queue_iterations_limit" validate:"gt=0"`
	NoProgressAbort            int `yaml:"no_progress_abort" validate:"gt=0"`
	AccumulatedNoProgressAbort int `yaml:"accumulated_no_progress_abort" validate:"gt=0"`
	PipelineRetryLimit         int `yaml:"pipeline_retry_limit" validate:"gt=0"`
	ProgressSkipLimit          int `yaml:"progress_skip_limit" validate:"gt=0"`
	PhaseDrawLimit             int `yaml:"phase_draw_limit" validate:"gt=0"`

	Penalty combgen.PenaltyPolicy `yaml:"penalty"`
}

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("ibf: invalid config")

// DefaultConfig returns a config with every threshold at its default and no
// requested solutions; callers must set RequestedSolutions.
func DefaultConfig() Config {
	return Config{
		MinConnectTime:             filter.DefaultMinConnectTime,
		QueueIterationsLimit:       DefaultQueueIterationsLimit,
		NoProgressAbort:            DefaultNoProgressAbort,
		AccumulatedNoProgressAbort: DefaultAccumulatedNoProgressAbort,
		PipelineRetryLimit:         filter.DefaultRetryLimit,
		ProgressSkipLimit:          DefaultProgressSkipLimit,
		PhaseDrawLimit:             DefaultPhaseDrawLimit,
		Penalty:                    combgen.DefaultPenaltyPolicy(),
	}
}

var validate = validator.New()

// Validate checks the config.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// LoadConfig decodes YAML from r over DefaultConfig and validates the result.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("LoadConfig: %w", err)
	}

	return cfg, nil
}
