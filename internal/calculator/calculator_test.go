package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PoolKeeper/internal/model"
)

func TestCircadian_EveryHourMatchesOnce(t *testing.T) {
	windows := DefaultCircadianWindows()
	require.NoError(t, ValidateWindows(windows))
	for h := 0; h < 24; h++ {
		n := 0
		for _, w := range windows {
			if w.Contains(h) {
				n++
			}
		}
		assert.Equal(t, 1, n, "hour %d", h)
	}
}

func TestCircadian_WrapsPastMidnight(t *testing.T) {
	windows := DefaultCircadianWindows()
	for _, h := range []int{22, 23, 0, 3, 5} {
		_, label := CircadianModifier(windows, h)
		assert.Equal(t, "night", label, "hour %d", h)
	}
	mod, label := CircadianModifier(windows, 6)
	assert.Equal(t, "morning surge", label)
	assert.InDelta(t, 0.05, float64(mod), 1e-9)
}

func TestCircadian_TroughIsLowestDaytime(t *testing.T) {
	windows := DefaultCircadianWindows()
	trough, _ := CircadianModifier(windows, 15)
	for h := 6; h < 22; h++ {
		m, _ := CircadianModifier(windows, h)
		assert.GreaterOrEqual(t, float64(m), float64(trough), "hour %d", h)
	}
}

func TestCircadian_HourNormalised(t *testing.T) {
	windows := DefaultCircadianWindows()
	a, _ := CircadianModifier(windows, 34)
	b, _ := CircadianModifier(windows, 10)
	c, _ := CircadianModifier(windows, -14)
	assert.Equal(t, b, a)
	assert.Equal(t, b, c)
}

func TestValidateWindows_GapAndOverlap(t *testing.T) {
	gap := []CircadianWindow{{Label: "a", Start: 0, End: 12}, {Label: "b", Start: 13, End: 0}}
	assert.Error(t, ValidateWindows(gap))

	overlap := []CircadianWindow{{Label: "a", Start: 0, End: 13}, {Label: "b", Start: 12, End: 0}}
	assert.Error(t, ValidateWindows(overlap))

	assert.Error(t, ValidateWindows(nil))
}

func TestCrashRemaining_LinearDecay(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCrash(0.14, 0.35, time.Hour, start)
	require.InDelta(t, 0.049, float64(c.Amount), 1e-9)
	assert.Equal(t, start.Add(time.Hour), c.ExpiresAt)

	tests := []struct {
		after time.Duration
		want  float64
	}{
		{-5 * time.Minute, 0.049},
		{0, 0.049},
		{15 * time.Minute, 0.049 * 0.75},
		{30 * time.Minute, 0.049 * 0.5},
		{59 * time.Minute, 0.049 / 60},
		{60 * time.Minute, 0},
		{3 * time.Hour, 0},
	}
	for _, tt := range tests {
		got := CrashRemaining(c, start.Add(tt.after))
		assert.InDelta(t, tt.want, float64(got), 1e-9, "after %v", tt.after)
	}
}

func TestCrashRemaining_ZeroCrash(t *testing.T) {
	assert.Zero(t, CrashRemaining(model.Crash{}, time.Now()))
}

func sessionsPerWeek(now time.Time, perWeek []int) []model.ExerciseSession {
	var out []model.ExerciseSession
	for week, n := range perWeek {
		for i := 0; i < n; i++ {
			// spread sessions inside the week, one day apart, starting a few hours back
			at := now.Add(-time.Duration(week)*Week - 3*time.Hour - time.Duration(i)*24*time.Hour)
			out = append(out, model.ExerciseSession{At: at})
		}
	}
	return out
}

func TestConsecutiveWeeks_StopsAtFirstShortfall(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultCapacityConfig()

	// six qualifying weeks, a short week, then another qualifying week
	sessions := sessionsPerWeek(now, []int{3, 4, 3, 5, 3, 3, 2, 3})
	assert.Equal(t, 6, ConsecutiveWeeks(sessions, now, cfg))
	assert.InDelta(t, 0.15, float64(CapacityExpansion(sessions, now, cfg)), 1e-9)
}

func TestConsecutiveWeeks_EightWeeks(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultCapacityConfig()
	sessions := sessionsPerWeek(now, []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 3})
	assert.Equal(t, 8, ConsecutiveWeeks(sessions, now, cfg))
	assert.InDelta(t, 0.20, float64(CapacityExpansion(sessions, now, cfg)), 1e-9)
}

func TestConsecutiveWeeks_IgnoresFutureAndStale(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultCapacityConfig()
	sessions := []model.ExerciseSession{
		{At: now.Add(time.Hour)},
		{At: now.Add(2 * time.Hour)},
		{At: now.Add(3 * time.Hour)},
		{At: now.Add(-10 * Week)},
	}
	assert.Equal(t, 0, ConsecutiveWeeks(sessions, now, cfg))
	assert.Zero(t, CapacityExpansion(nil, now, cfg))
}

func TestExpansionFor_Steps(t *testing.T) {
	cfg := DefaultCapacityConfig()
	tests := []struct {
		weeks int
		want  float64
	}{
		{0, 0}, {1, 0.03}, {2, 0.06}, {3, 0.06}, {4, 0.10}, {5, 0.10}, {6, 0.15}, {7, 0.15}, {8, 0.20}, {12, 0.20},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, float64(ExpansionFor(tt.weeks, cfg)), 1e-9, "weeks %d", tt.weeks)
	}

	cfg.CeilingFraction = 0.12
	assert.InDelta(t, 0.12, float64(ExpansionFor(8, cfg)), 1e-9)
}
