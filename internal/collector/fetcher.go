package collector

import (
	"time"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/recorder"
)

// Source is the history the collector aggregates. recorder.Recorder satisfies it.
type Source interface {
	DrainMinutesSince(since time.Time) ([]recorder.DrainMinutes, error)
	ExerciseSince(since time.Time) ([]model.ExerciseSession, error)
}

// MockSource returns fixed data for development and testing.
type MockSource struct {
	Drains   []recorder.DrainMinutes
	Sessions []model.ExerciseSession
	Err      error
}

func (m *MockSource) DrainMinutesSince(_ time.Time) ([]recorder.DrainMinutes, error) {
	return m.Drains, m.Err
}

func (m *MockSource) ExerciseSince(since time.Time) ([]model.ExerciseSession, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.ExerciseSession
	for _, s := range m.Sessions {
		if !s.At.Before(since) {
			out = append(out, s)
		}
	}
	return out, nil
}
