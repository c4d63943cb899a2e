package pool

import (
	"time"

	"PoolKeeper/internal/model"
)

// DateKey formats the calendar day key of t in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NewDay builds the PoolState for the day that starts at wake. Tier and
// expansion form one assessment: when in.Tier is empty both are carried over
// from prev, otherwise both are taken from in as given, including a zero
// expansion.
func (e *Engine) NewDay(prev *model.PoolState, in SleepInputs, wake time.Time) *model.PoolState {
	if prev != nil && in.Tier == "" {
		in.Tier = prev.Metadata.Tier
		in.CapacityExpansion = prev.Metadata.CapacityExpansion
	}
	if in.Tier == "" {
		in.Tier = model.TierHealthy
	}
	if in.Quality == "" {
		in.Quality = model.SleepNormalREM
	}
	in.CapacityExpansion = e.expansion(in.CapacityExpansion)

	morning := e.MorningPool(in)
	return &model.PoolState{
		Date:               DateKey(wake),
		MorningLevel:       morning,
		CurrentLevel:       morning,
		DrainActivities:    []model.DrainEvent{},
		RechargeActivities: []model.RechargeEvent{},
		Metadata: model.PoolMetadata{
			SleepHours:        in.Hours,
			SleepQuality:      in.Quality,
			Tier:              in.Tier,
			CapacityExpansion: in.CapacityExpansion,
			WakeTime:          wake,
		},
	}
}

// AppendDrain logs a drain against state and returns the resulting new state.
// Prior same-activity sessions are counted from state; state is not modified.
func (e *Engine) AppendDrain(state *model.PoolState, name string, minutes float64, now time.Time) (*model.PoolState, model.DrainEvent) {
	key := e.cfg.Catalog.ClassifyDrain(name).Key
	ev := e.LogDrainActivity(DrainInput{
		Name:               name,
		Minutes:            minutes,
		PriorSessionsToday: state.SessionsOf(key),
		Tier:               state.Metadata.Tier,
		At:                 now,
	})

	next := state.Clone()
	next.DrainActivities = append(next.DrainActivities, ev)
	crash := ev.Crash
	next.PendingCrash = &crash
	next.CurrentLevel = e.CurrentPool(next, now)
	return next, ev
}

// AppendRecharge logs a recharge against state and returns the resulting new
// state. Unresolved recharges are returned but not appended.
func (e *Engine) AppendRecharge(state *model.PoolState, in RechargeInput, now time.Time) (*model.PoolState, model.RechargeEvent) {
	in.Tier = state.Metadata.Tier
	in.At = now
	ev := e.LogRechargeActivity(in)

	next := state.Clone()
	if ev.Error == "" {
		next.RechargeActivities = append(next.RechargeActivities, ev)
	}
	next.CurrentLevel = e.CurrentPool(next, now)
	return next, ev
}
