package pool

import (
	"errors"
	"fmt"
	"time"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/catalog"
	"PoolKeeper/internal/model"
)

// StreakBonus is added to the morning fill once the streak reaches Days.
type StreakBonus struct {
	Days  int
	Bonus model.Fraction
}

// MorningConfig tunes the once-per-day calculation.
type MorningConfig struct {
	YesterdayBonus model.Fraction
	StreakBonuses  []StreakBonus // cumulative; each applies once
	Floor          model.Fraction
}

// DrainConfig tunes the depletion model.
type DrainConfig struct {
	RepeatFactor  float64       // amplification per prior same-day session
	CrashFraction float64       // share of the magnitude that returns as a crash
	CrashWindow   time.Duration // linear decay length of the crash
	MaxMinutes    float64       // longest single session considered
}

// ScreenBand awards Points when average daily screen time is at least Minutes.
type ScreenBand struct {
	Minutes float64
	Points  int
}

// TierCut maps a minimum score to a tier.
type TierCut struct {
	MinScore int
	Tier     model.DysregulationTier
}

// DysregulationConfig tunes the tolerance assessment.
type DysregulationConfig struct {
	ScreenBands       []ScreenBand // highest band first
	FlaggedCategories []model.ActivityCategory
	FlaggedPoints     int
	AnhedoniaPoints   int
	BoredomPoints     int
	CompulsivePoints  int
	IncreasingPoints  int
	DecreasingPoints  int
	Cuts              []TierCut // highest score first
	Tiers             map[model.DysregulationTier]model.TierMultipliers
}

// Config is every tunable table of the engine. Copy DefaultConfig and adjust
// fields to run scenarios without code changes.
type Config struct {
	Catalog              *catalog.Catalog
	Windows              []calculator.CircadianWindow
	Capacity             calculator.CapacityConfig
	Morning              MorningConfig
	Drain                DrainConfig
	Dysregulation        DysregulationConfig
	MicroRecoveryPerHour model.Fraction
}

// DefaultConfig returns the built-in coefficients.
func DefaultConfig() Config {
	return Config{
		Catalog:  catalog.Default(),
		Windows:  calculator.DefaultCircadianWindows(),
		Capacity: calculator.DefaultCapacityConfig(),
		Morning: MorningConfig{
			YesterdayBonus: 0.10,
			StreakBonuses: []StreakBonus{
				{Days: 7, Bonus: 0.05},
				{Days: 21, Bonus: 0.05},
				{Days: 60, Bonus: 0.05},
			},
			Floor: 0.20,
		},
		Drain: DrainConfig{
			RepeatFactor:  0.3,
			CrashFraction: 0.35,
			CrashWindow:   60 * time.Minute,
			MaxMinutes:    24 * 60,
		},
		Dysregulation: DysregulationConfig{
			ScreenBands: []ScreenBand{
				{Minutes: 360, Points: 3},
				{Minutes: 240, Points: 2},
				{Minutes: 120, Points: 1},
			},
			FlaggedCategories: []model.ActivityCategory{
				model.CategoryShortForm, model.CategorySocial, model.CategoryGambling,
			},
			FlaggedPoints:    1,
			AnhedoniaPoints:  3,
			BoredomPoints:    1,
			CompulsivePoints: 2,
			IncreasingPoints: 1,
			DecreasingPoints: -1,
			Cuts: []TierCut{
				{MinScore: 7, Tier: model.TierSevere},
				{MinScore: 4, Tier: model.TierModerate},
				{MinScore: 2, Tier: model.TierMild},
			},
			Tiers: map[model.DysregulationTier]model.TierMultipliers{
				model.TierHealthy:  {Depletion: 1.00, Recovery: 1.00, Capacity: 1.00},
				model.TierMild:     {Depletion: 1.15, Recovery: 0.90, Capacity: 0.95},
				model.TierModerate: {Depletion: 1.35, Recovery: 0.75, Capacity: 0.85},
				model.TierSevere:   {Depletion: 1.60, Recovery: 0.60, Capacity: 0.75},
			},
		},
		MicroRecoveryPerHour: 0.005,
	}
}

// Validate rejects configurations that would break the engine's total-function guarantees.
func (c Config) Validate() error {
	if c.Catalog == nil {
		return errors.New("catalog is required")
	}
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := calculator.ValidateWindows(c.Windows); err != nil {
		return fmt.Errorf("circadian: %w", err)
	}
	if err := c.Capacity.Validate(); err != nil {
		return err
	}
	if c.Morning.Floor < 0 || c.Morning.Floor > 1 {
		return fmt.Errorf("morning floor %.2f outside [0,1]", c.Morning.Floor)
	}
	if c.Drain.CrashWindow <= 0 {
		return errors.New("crash window must be positive")
	}
	if c.Drain.RepeatFactor < 0 || c.Drain.CrashFraction < 0 {
		return errors.New("drain factors must not be negative")
	}
	if _, ok := c.Dysregulation.Tiers[model.TierHealthy]; !ok {
		return fmt.Errorf("tier %q multipliers are required", model.TierHealthy)
	}
	for _, cut := range c.Dysregulation.Cuts {
		if _, ok := c.Dysregulation.Tiers[cut.Tier]; !ok {
			return fmt.Errorf("tier %q has no multipliers", cut.Tier)
		}
	}
	return nil
}
