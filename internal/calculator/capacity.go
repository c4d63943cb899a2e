package calculator

import (
	"errors"
	"sort"
	"time"

	"PoolKeeper/internal/model"
)

// Week is the length of one capacity-expansion period.
const Week = 7 * 24 * time.Hour

// ExpansionStep grants Fraction once Weeks consecutive qualifying weeks are reached.
type ExpansionStep struct {
	Weeks    int            `yaml:"weeks"`
	Fraction model.Fraction `yaml:"fraction"`
}

// CapacityConfig holds the tunables of the capacity expansion walk.
type CapacityConfig struct {
	Periods         int             `yaml:"periods"`
	MinSessions     int             `yaml:"min_sessions"`
	Steps           []ExpansionStep `yaml:"steps"`
	CeilingFraction model.Fraction  `yaml:"ceiling"`
}

// DefaultCapacityConfig returns the built-in step schedule.
func DefaultCapacityConfig() CapacityConfig {
	return CapacityConfig{
		Periods:     8,
		MinSessions: 3,
		Steps: []ExpansionStep{
			{Weeks: 1, Fraction: 0.03},
			{Weeks: 2, Fraction: 0.06},
			{Weeks: 4, Fraction: 0.10},
			{Weeks: 6, Fraction: 0.15},
			{Weeks: 8, Fraction: 0.20},
		},
		CeilingFraction: 0.20,
	}
}

// Validate checks the step schedule is usable.
func (c CapacityConfig) Validate() error {
	if c.Periods <= 0 {
		return errors.New("capacity periods must be positive")
	}
	if c.MinSessions <= 0 {
		return errors.New("capacity min_sessions must be positive")
	}
	if c.CeilingFraction < 0 {
		return errors.New("capacity ceiling must not be negative")
	}
	for _, s := range c.Steps {
		if s.Weeks <= 0 || s.Fraction < 0 {
			return errors.New("capacity steps need positive weeks and non-negative fractions")
		}
	}
	return nil
}

// ConsecutiveWeeks splits the trailing Periods weeks ending at now into 7-day
// periods and counts, from the most recent backwards, how many in a row hold
// at least MinSessions sessions. Future sessions are ignored.
func ConsecutiveWeeks(sessions []model.ExerciseSession, now time.Time, cfg CapacityConfig) int {
	counts := make([]int, cfg.Periods)
	for _, s := range sessions {
		age := now.Sub(s.At)
		if age < 0 {
			continue
		}
		i := int(age / Week)
		if i >= cfg.Periods {
			continue
		}
		counts[i]++
	}

	weeks := 0
	for _, n := range counts {
		if n < cfg.MinSessions {
			break
		}
		weeks++
	}
	return weeks
}

// ExpansionFor maps a consecutive-week count to its stepped fraction, capped at the ceiling.
func ExpansionFor(weeks int, cfg CapacityConfig) model.Fraction {
	steps := append([]ExpansionStep(nil), cfg.Steps...)
	sort.Slice(steps, func(i, j int) bool { return steps[i].Weeks < steps[j].Weeks })

	var f model.Fraction
	for _, s := range steps {
		if weeks >= s.Weeks {
			f = s.Fraction
		}
	}
	if f > cfg.CeilingFraction {
		f = cfg.CeilingFraction
	}
	return f
}

// CapacityExpansion is the full walk: sessions to consecutive weeks to fraction.
func CapacityExpansion(sessions []model.ExerciseSession, now time.Time, cfg CapacityConfig) model.Fraction {
	return ExpansionFor(ConsecutiveWeeks(sessions, now, cfg), cfg)
}
