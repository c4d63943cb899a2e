// Package pool is the motivation reserve simulation engine. Every operation is
// a synchronous function of its arguments and the engine's immutable Config;
// time enters only through explicit values or the injected clock.
package pool

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/model"
)

// Engine evaluates pool levels against a fixed configuration. It is safe for
// concurrent use because nothing in it changes after New.
type Engine struct {
	cfg   Config
	clock func() time.Time
	newID func() string
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for operations that default "now".
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithIDGenerator replaces the random event ID source.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New validates cfg and builds an Engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pool config: %w", err)
	}
	e := &Engine{cfg: cfg, clock: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Now reads the injected clock.
func (e *Engine) Now() time.Time { return e.clock() }

// multipliers returns a tier's multipliers, falling back to healthy for unknown tiers.
func (e *Engine) multipliers(tier model.DysregulationTier) model.TierMultipliers {
	if m, ok := e.cfg.Dysregulation.Tiers[tier]; ok {
		return m
	}
	return e.cfg.Dysregulation.Tiers[model.TierHealthy]
}

// CapacityExpansion computes the ceiling increase earned by exercise consistency.
func (e *Engine) CapacityExpansion(history []model.ExerciseSession, now time.Time) model.Fraction {
	return calculator.CapacityExpansion(history, now, e.cfg.Capacity)
}

// Circadian returns the modifier and window label for the hour of t.
func (e *Engine) Circadian(t time.Time) (model.Fraction, string) {
	return calculator.CircadianModifier(e.cfg.Windows, t.Hour())
}
