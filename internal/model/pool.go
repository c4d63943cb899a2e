package model

import "time"

// PoolMetadata carries the day's inputs that stay fixed after the morning calculation.
type PoolMetadata struct {
	SleepHours        float64           `json:"sleep_hours"`
	SleepQuality      SleepQuality      `json:"sleep_quality"`
	Tier              DysregulationTier `json:"dysregulation_tier"`
	CapacityExpansion Fraction          `json:"capacity_expansion"`
	WakeTime          time.Time         `json:"wake_time"`
}

// PoolState is one calendar day's working record. It is append-only: logging an
// event produces a new PoolState rather than editing an existing one.
type PoolState struct {
	Date               string          `json:"date"` // "2025-02-20"
	MorningLevel       Percent         `json:"morning_level"`
	CurrentLevel       Percent         `json:"current_level"` // cached result of the last calculation
	DrainActivities    []DrainEvent    `json:"drain_activities"`
	RechargeActivities []RechargeEvent `json:"recharge_activities"`
	PendingCrash       *Crash          `json:"pending_crash,omitempty"`
	Metadata           PoolMetadata    `json:"metadata"`
}

// Clone returns a copy whose slices and pending crash can be appended to or
// replaced without affecting s.
func (s *PoolState) Clone() *PoolState {
	c := *s
	c.DrainActivities = append([]DrainEvent(nil), s.DrainActivities...)
	c.RechargeActivities = append([]RechargeEvent(nil), s.RechargeActivities...)
	if s.PendingCrash != nil {
		crash := *s.PendingCrash
		c.PendingCrash = &crash
	}
	return &c
}

// SessionsOf counts how many drain events with the given resolved key were
// already logged today.
func (s *PoolState) SessionsOf(key string) int {
	n := 0
	for _, d := range s.DrainActivities {
		if d.Key == key {
			n++
		}
	}
	return n
}

// ExerciseSession is one logged workout, the input to capacity expansion.
type ExerciseSession struct {
	At   time.Time `json:"at"`
	Kind string    `json:"kind,omitempty"`
}
