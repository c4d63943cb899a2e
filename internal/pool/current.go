package pool

import (
	"fmt"
	"math"
	"time"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/model"
)

// Explain computes the current level term by term. It reads state but never
// modifies it, so repeated calls with the same now agree.
func (e *Engine) Explain(state *model.PoolState, now time.Time) model.Breakdown {
	if state == nil {
		return model.Breakdown{Ceiling: 1}
	}

	var drains, recharges model.Fraction
	for _, d := range state.DrainActivities {
		if !math.IsNaN(float64(d.Magnitude)) && d.Magnitude > 0 {
			drains += d.Magnitude
		}
	}
	for _, r := range state.RechargeActivities {
		if !math.IsNaN(float64(r.Boost)) && r.Boost > 0 {
			recharges += r.Boost
		}
	}

	var crash model.Fraction
	crashNote := "none pending"
	if state.PendingCrash != nil {
		crash = calculator.CrashRemaining(*state.PendingCrash, now)
		if crash > 0 {
			crashNote = fmt.Sprintf("%.0f%% of window left", 100*float64(crash/state.PendingCrash.Amount))
		} else {
			crashNote = "expired"
		}
	}

	circ, label := e.Circadian(now)

	var hoursAwake float64
	if !state.Metadata.WakeTime.IsZero() && now.After(state.Metadata.WakeTime) {
		hoursAwake = now.Sub(state.Metadata.WakeTime).Hours()
	}
	micro := e.cfg.MicroRecoveryPerHour * model.Fraction(hoursAwake)

	terms := []model.Term{
		{Name: "morning", Value: state.MorningLevel.Fraction(), Commentary: fmt.Sprintf("%d%% at wake", state.MorningLevel)},
		{Name: "drains", Value: -drains, Commentary: fmt.Sprintf("%d logged", len(state.DrainActivities))},
		{Name: "recharges", Value: recharges, Commentary: fmt.Sprintf("%d logged", len(state.RechargeActivities))},
		{Name: "crash", Value: -crash, Commentary: crashNote},
		{Name: "circadian", Value: circ, Commentary: label},
		{Name: "micro-recovery", Value: micro, Commentary: fmt.Sprintf("%.1fh awake", hoursAwake)},
	}

	var raw model.Fraction
	for _, t := range terms {
		raw += t.Value
	}
	ceiling := model.Ceiling(e.expansion(state.Metadata.CapacityExpansion))

	return model.Breakdown{
		Terms:   terms,
		Raw:     raw,
		Ceiling: ceiling,
		Level:   raw.Clamp(0, ceiling).Percent(),
		Window:  label,
	}
}

// CurrentPool is the level at now as a whole percentage in [0, 100*(1+expansion)].
func (e *Engine) CurrentPool(state *model.PoolState, now time.Time) model.Percent {
	return e.Explain(state, now).Level
}
