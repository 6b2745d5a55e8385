package sim

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tracetm/tracetm/sim/trace"
)

// Limits bounds a single run. Zero values mean unbounded.
type Limits struct {
	MaxDepth       int           `yaml:"max_depth,omitempty" validate:"gte=0"`       // deepest generation that may be produced
	MaxTransitions int           `yaml:"max_transitions,omitempty" validate:"gte=0"` // successors that may be produced
	MaxTime        time.Duration `yaml:"max_time,omitempty" validate:"gte=0"`        // wall clock, checked after each level
}

var limitsValidate = validator.New()

// Validate rejects negative bounds.
func (l Limits) Validate() error {
	if err := limitsValidate.Struct(l); err != nil {
		return fmt.Errorf("invalid limits: %w", err)
	}
	return nil
}

// Unbounded reports whether no limit is configured.
func (l Limits) Unbounded() bool {
	return l.MaxDepth == 0 && l.MaxTransitions == 0 && l.MaxTime == 0
}

// runConfig groups the optional behavior of Simulate.
type runConfig struct {
	now          func() time.Time
	haltOnReject bool
	trace        trace.TraceConfig
}

// Option configures Simulate.
type Option func(*runConfig)

// WithClock replaces time.Now for the wall-clock limit.
func WithClock(now func() time.Time) Option {
	return func(c *runConfig) { c.now = now }
}

// WithHaltOnReject ends the whole run as Rejected as soon as any branch enters
// the reject state. By default only that branch is pruned.
func WithHaltOnReject() Option {
	return func(c *runConfig) { c.haltOnReject = true }
}

// WithTrace enables per-level exploration records on the result.
func WithTrace(level trace.TraceLevel) Option {
	return func(c *runConfig) { c.trace = trace.TraceConfig{Level: level} }
}

func newRunConfig(opts []Option) runConfig {
	c := runConfig{now: time.Now}
	for _, o := range opts {
		o(&c)
	}
	return c
}
