package pool

import (
	"math"
	"time"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/model"
)

// DrainInput describes one draining activity to log.
type DrainInput struct {
	Name               string
	Minutes            float64
	PriorSessionsToday int
	Tier               model.DysregulationTier
	At                 time.Time
}

// RepeatMultiplier is the amplification for the (prior+1)th session of an activity today.
func (e *Engine) RepeatMultiplier(prior int) float64 {
	if prior < 0 {
		prior = 0
	}
	return 1 + e.cfg.Drain.RepeatFactor*float64(prior)
}

func (e *Engine) minutes(m float64) float64 {
	if math.IsNaN(m) || m < 0 {
		return 0
	}
	return math.Min(m, e.cfg.Drain.MaxMinutes)
}

// LogDrainActivity resolves and scores a draining activity. Unknown names
// classify as zero-impact utility; the event's Resolution says so.
func (e *Engine) LogDrainActivity(in DrainInput) model.DrainEvent {
	class := e.cfg.Catalog.ClassifyDrain(in.Name)
	minutes := e.minutes(in.Minutes)
	mult := e.RepeatMultiplier(in.PriorSessionsToday)

	magnitude := class.Rate * model.Fraction(minutes/30) *
		model.Fraction(mult) *
		model.Fraction(e.multipliers(in.Tier).Depletion)

	return model.DrainEvent{
		ID:         e.newID(),
		Name:       in.Name,
		Key:        class.Key,
		Minutes:    minutes,
		Category:   class.Category,
		Mechanism:  class.Mechanism,
		Resolution: class.Resolution,
		BaseRate:   class.Rate,
		Multiplier: mult,
		Magnitude:  magnitude,
		Crash:      calculator.NewCrash(magnitude, e.cfg.Drain.CrashFraction, e.cfg.Drain.CrashWindow, in.At),
		LoggedAt:   in.At,
	}
}
