package collector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/model"
	"PoolKeeper/internal/recorder"
)

var now = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

func dm(date string, cat model.ActivityCategory, minutes float64) recorder.DrainMinutes {
	return recorder.DrainMinutes{Date: date, Category: cat, Minutes: minutes}
}

func TestUsageSignals_AverageAndPrimary(t *testing.T) {
	src := &MockSource{Drains: []recorder.DrainMinutes{
		dm("2025-03-14", model.CategoryShortForm, 120),
		dm("2025-03-10", model.CategorySocial, 100),
		dm("2025-03-08", model.CategoryShortForm, 60),
		dm("2025-03-08", model.CategoryUtility, 500),
		dm("2025-03-05", model.CategoryGaming, 600), // prior week
	}}
	c := NewCollector(src, Profile{Anhedonia: true})

	got, err := c.UsageSignals(now)
	require.NoError(t, err)
	assert.InDelta(t, (120+100+60+500)/7.0, got.AvgDailyScreenMinutes, 1e-9)
	assert.Equal(t, model.CategoryShortForm, got.PrimaryCategory)
	assert.True(t, got.Anhedonia)
	assert.False(t, got.CompulsiveUse)
	assert.Equal(t, model.TrendIncreasing, got.ScreenTimeTrend) // 780 vs 600 minutes
}

func TestUsageSignals_Trend(t *testing.T) {
	tests := []struct {
		recent, prior float64
		want          model.Trend
	}{
		{200, 100, model.TrendIncreasing},
		{110, 100, model.TrendStable},
		{50, 100, model.TrendDecreasing},
		{50, 0, model.TrendStable},
	}
	for _, tt := range tests {
		src := &MockSource{Drains: []recorder.DrainMinutes{
			dm("2025-03-12", model.CategorySocial, tt.recent),
			dm("2025-03-02", model.CategorySocial, tt.prior),
		}}
		got, err := NewCollector(src, Profile{}).UsageSignals(now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.ScreenTimeTrend, "recent %.0f prior %.0f", tt.recent, tt.prior)
	}
}

func TestUsageSignals_IgnoresOutOfWindow(t *testing.T) {
	src := &MockSource{Drains: []recorder.DrainMinutes{
		dm("2025-02-01", model.CategoryGambling, 900),
	}}
	got, err := NewCollector(src, Profile{}).UsageSignals(now)
	require.NoError(t, err)
	assert.Zero(t, got.AvgDailyScreenMinutes)
	assert.Equal(t, model.CategoryUtility, got.PrimaryCategory)
}

func TestUsageSignals_SourceError(t *testing.T) {
	_, err := NewCollector(&MockSource{Err: errors.New("disk gone")}, Profile{}).UsageSignals(now)
	assert.ErrorContains(t, err, "disk gone")
}

func TestExerciseHistory_Window(t *testing.T) {
	src := &MockSource{Sessions: []model.ExerciseSession{
		{At: now.Add(-time.Hour)},
		{At: now.Add(-7 * calculator.Week)},
		{At: now.Add(-9 * calculator.Week)},
	}}
	got, err := NewCollector(src, Profile{}).ExerciseHistory(now, 8)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
