package recorder

import (
	"time"

	"PoolKeeper/internal/model"
)

// DaySnapshot is the closing record of a finished day.
type DaySnapshot struct {
	State           *model.PoolState
	FinalLevel      model.Percent
	HabitsCompleted int
	HabitsTotal     int
	Streak          int
}

// DrainMinutes is the total logged minutes of one category on one day.
type DrainMinutes struct {
	Date     string
	Category model.ActivityCategory
	Minutes  float64
}

// Recorder persists historical data and serves it back for the weekly reassessment.
type Recorder interface {
	RecordDay(snap *DaySnapshot) error
	RecordDrain(date string, evt *model.DrainEvent) error
	RecordRecharge(date string, evt *model.RechargeEvent) error
	RecordExercise(s *model.ExerciseSession) error
	ExerciseSince(since time.Time) ([]model.ExerciseSession, error)
	DrainMinutesSince(since time.Time) ([]DrainMinutes, error)
	Close() error
}
