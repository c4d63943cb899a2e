package recorder

import (
	"time"

	"PoolKeeper/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDay(_ *DaySnapshot) error                       { return nil }
func (n *NoopRecorder) RecordDrain(_ string, _ *model.DrainEvent) error       { return nil }
func (n *NoopRecorder) RecordRecharge(_ string, _ *model.RechargeEvent) error { return nil }
func (n *NoopRecorder) RecordExercise(_ *model.ExerciseSession) error         { return nil }
func (n *NoopRecorder) ExerciseSince(_ time.Time) ([]model.ExerciseSession, error) {
	return nil, nil
}
func (n *NoopRecorder) DrainMinutesSince(_ time.Time) ([]DrainMinutes, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                          { return nil }
