// Package recommend orders habits by how they should be attempted at a given pool level.
package recommend

import (
	"sort"

	"PoolKeeper/internal/model"
)

// Level tiers.
type LevelTier string

const (
	TierHigh     LevelTier = "high"
	TierModerate LevelTier = "moderate"
	TierLow      LevelTier = "low"
)

// Tier boundaries in percent.
const (
	HighThreshold     model.Percent = 70
	ModerateThreshold model.Percent = 50
)

// Advice attached to each habit.
const (
	AdviceFull     = "full version"
	AdviceStandard = "standard version okay"
	AdviceMinimal  = "use 2-minute version"
	AdviceDone     = "done today"
)

// Tier classifies a pool level.
func Tier(level model.Percent) LevelTier {
	switch {
	case level >= HighThreshold:
		return TierHigh
	case level >= ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

func advice(t LevelTier) string {
	switch t {
	case TierHigh:
		return AdviceFull
	case TierModerate:
		return AdviceStandard
	default:
		return AdviceMinimal
	}
}

func resistance(h model.Habit) int {
	if h.Resistance == 0 {
		return model.DefaultResistance
	}
	return h.Resistance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Order returns habits in suggested attempt order with advice and a 1-based
// priority. Pending habits are sorted by tier: hardest first when high,
// closest to mid-scale first when moderate, easiest first when low. Completed
// habits keep their input order and always follow every pending habit. Ties
// keep input order.
func Order(habits []model.Habit, level model.Percent) []model.Recommendation {
	tier := Tier(level)

	var pending, done []model.Habit
	for _, h := range habits {
		if h.Completed {
			done = append(done, h)
		} else {
			pending = append(pending, h)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := resistance(pending[i]), resistance(pending[j])
		switch tier {
		case TierHigh:
			return a > b
		case TierModerate:
			return abs(a-model.DefaultResistance) < abs(b-model.DefaultResistance)
		default:
			return a < b
		}
	})

	out := make([]model.Recommendation, 0, len(habits))
	for _, h := range pending {
		out = append(out, model.Recommendation{Habit: h, Priority: len(out) + 1, Advice: advice(tier)})
	}
	for _, h := range done {
		out = append(out, model.Recommendation{Habit: h, Priority: len(out) + 1, Advice: AdviceDone})
	}
	return out
}
