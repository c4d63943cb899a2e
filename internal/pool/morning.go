package pool

import (
	"math"

	"PoolKeeper/internal/catalog"
	"PoolKeeper/internal/model"
)

// SleepInputs are the once-per-day inputs to the morning level.
type SleepInputs struct {
	Hours             float64
	Quality           model.SleepQuality
	YesterdayComplete bool
	StreakDays        int
	Tier              model.DysregulationTier
	CapacityExpansion model.Fraction
}

// SleepBucket rounds hours to the nearest whole hour inside the catalog's
// bucket range. NaN and anything under the range floor to the shortest bucket.
func SleepBucket(hours float64) int {
	if math.IsNaN(hours) {
		return catalog.MinSleepBucket
	}
	b := math.Round(hours)
	if b < catalog.MinSleepBucket {
		return catalog.MinSleepBucket
	}
	if b > catalog.MaxSleepBucket {
		return catalog.MaxSleepBucket
	}
	return int(b)
}

// expansion clamps a caller-supplied expansion into [0, configured ceiling].
func (e *Engine) expansion(f model.Fraction) model.Fraction {
	return f.Clamp(0, e.cfg.Capacity.CeilingFraction)
}

// MorningFraction is MorningPool before rounding.
func (e *Engine) MorningFraction(in SleepInputs) model.Fraction {
	cat := e.cfg.Catalog

	// Step 1: base fill from the sleep bucket
	fill := model.Fraction(cat.SleepFill[SleepBucket(in.Hours)])

	// Step 2: quality
	q, ok := cat.SleepQuality[in.Quality]
	if !ok {
		q = 1.0
	}
	level := fill * model.Fraction(q)

	// Step 3: completion and streak bonuses
	if in.YesterdayComplete {
		level += e.cfg.Morning.YesterdayBonus
	}
	for _, sb := range e.cfg.Morning.StreakBonuses {
		if in.StreakDays >= sb.Days {
			level += sb.Bonus
		}
	}

	// Step 4: chronic tolerance
	level *= model.Fraction(e.multipliers(in.Tier).Capacity)

	// Step 5: never model a zero start
	return level.Clamp(e.cfg.Morning.Floor, model.Ceiling(e.expansion(in.CapacityExpansion)))
}

// MorningPool is the once-per-day starting level as a whole percentage.
func (e *Engine) MorningPool(in SleepInputs) model.Percent {
	return e.MorningFraction(in).Percent()
}
