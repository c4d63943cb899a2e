package tracker

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/pool"
	"PoolKeeper/internal/recommend"
)

var wake = time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)

var testHabits = []model.Habit{
	{ID: "run", Name: "Run", Resistance: 8},
	{ID: "read", Name: "Read", Resistance: 3},
}

func newTestManager(t *testing.T, path string) *Manager {
	t.Helper()
	e, err := pool.New(pool.DefaultConfig())
	require.NoError(t, err)
	m, err := NewManager(path, e, testHabits, zap.NewNop().Sugar())
	require.NoError(t, err)
	return m
}

func TestManager_RequiresDay(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))

	_, err := m.LogDrain("tiktok", 10, wake)
	assert.ErrorIs(t, err, ErrNoDay)
	_, err = m.LogRecharge(pool.RechargeInput{Type: "meditation"}, wake)
	assert.ErrorIs(t, err, ErrNoDay)
	_, err = m.Current(wake)
	assert.ErrorIs(t, err, ErrNoDay)
}

func TestManager_DayLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "state.json")
	m := newTestManager(t, path)

	ro := m.StartDay(8, model.SleepNormalREM, wake)
	assert.Nil(t, ro.Previous)
	assert.Equal(t, model.Percent(92), ro.Today.MorningLevel)
	assert.True(t, m.HasDay("2025-03-04"))

	snapshot := m.Today()
	_, err := m.LogDrain("tiktok", 30, wake.Add(2*time.Hour))
	require.NoError(t, err)
	ev, err := m.LogDrain("TikTok", 30, wake.Add(3*time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 1.3, ev.Multiplier, 1e-9)
	assert.Empty(t, snapshot.DrainActivities, "earlier snapshots are never mutated")

	rc, err := m.LogRecharge(pool.RechargeInput{Type: "nope"}, wake.Add(4*time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, rc.Error)

	require.NoError(t, m.CompleteHabit("run"))
	require.NoError(t, m.CompleteHabit("read"))
	require.NoError(t, m.CompleteHabit("run"))
	assert.Error(t, m.CompleteHabit("juggle"))

	recs, level, err := m.Recommendations(wake.Add(5 * time.Hour))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, recommend.AdviceDone, recs[0].Advice)
	assert.Greater(t, level, model.Percent(0))

	// a restart loads the same record from disk
	reloaded := newTestManager(t, path)
	assert.Len(t, reloaded.Today().DrainActivities, 2)
	assert.ElementsMatch(t, []string{"run", "read"}, reloaded.GetRecord().CompletedHabits)

	next := reloaded.StartDay(8, model.SleepNormalREM, wake.AddDate(0, 0, 1))
	require.NotNil(t, next.Previous)
	assert.Equal(t, "2025-03-04", next.Previous.Date)
	assert.Equal(t, 2, next.HabitsCompleted)
	assert.Equal(t, 1, next.Streak)
	// 0.92 + 0.10 yesterday bonus
	assert.Equal(t, model.Percent(100), next.Today.MorningLevel)
	assert.Empty(t, next.Today.DrainActivities)
	assert.Empty(t, reloaded.GetRecord().CompletedHabits)
}

func TestManager_StreakResetsOnIncompleteDay(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	m.StartDay(7, model.SleepNormalREM, wake)
	require.NoError(t, m.CompleteHabit("run"))

	ro := m.StartDay(7, model.SleepNormalREM, wake.AddDate(0, 0, 1))
	assert.Equal(t, 1, ro.HabitsCompleted)
	assert.Equal(t, 0, ro.Streak)
	assert.False(t, m.GetRecord().YesterdayComplete)
}

func TestManager_StreakResetsAfterMissedDays(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	m.StartDay(8, model.SleepNormalREM, wake)
	require.NoError(t, m.CompleteHabit("run"))
	require.NoError(t, m.CompleteHabit("read"))

	ro := m.StartDay(8, model.SleepNormalREM, wake.AddDate(0, 0, 10))
	require.NotNil(t, ro.Previous)
	assert.Equal(t, 2, ro.HabitsCompleted)
	assert.Equal(t, 0, ro.Streak)
	assert.False(t, m.GetRecord().YesterdayComplete)
	// no yesterday bonus: 0.92 only
	assert.Equal(t, model.Percent(92), ro.Today.MorningLevel)
}

func TestManager_RestartSameDayKeepsEvents(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	m.StartDay(5, model.SleepNormalREM, wake)
	_, err := m.LogDrain("reddit", 20, wake.Add(time.Hour))
	require.NoError(t, err)

	ro := m.StartDay(8, model.SleepNormalREM, wake)
	assert.Nil(t, ro.Previous)
	assert.Equal(t, model.Percent(92), ro.Today.MorningLevel)
	assert.Len(t, ro.Today.DrainActivities, 1)
}

func TestManager_AssessmentAppliesNextMorning(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	m.SetAssessment(model.TierModerate, 0.10)

	ro := m.StartDay(7, model.SleepNormalREM, wake)
	assert.Equal(t, model.TierModerate, ro.Today.Metadata.Tier)
	assert.InDelta(t, 0.10, float64(ro.Today.Metadata.CapacityExpansion), 1e-9)
	assert.Equal(t, model.Percent(70), ro.Today.MorningLevel) // 0.82 * 0.85
}

func TestManager_ReassessmentCanDropExpansion(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	m.SetAssessment(model.TierHealthy, 0.15)
	ro := m.StartDay(9, model.SleepNormalREM, wake)
	require.InDelta(t, 0.15, float64(ro.Today.Metadata.CapacityExpansion), 1e-9)

	m.SetAssessment(model.TierHealthy, 0)
	ro = m.StartDay(9, model.SleepNormalREM, wake.AddDate(0, 0, 1))
	assert.Zero(t, ro.Today.Metadata.CapacityExpansion)
	assert.Equal(t, model.Fraction(1), m.Engine().Explain(ro.Today, wake.AddDate(0, 0, 1)).Ceiling)
}

func TestManager_SetEngine(t *testing.T) {
	m := newTestManager(t, filepath.Join(t.TempDir(), "state.json"))
	cfg := pool.DefaultConfig()
	cfg.Catalog.Apps["duolingo"] = cfg.Catalog.Apps["tiktok"]
	e, err := pool.New(cfg)
	require.NoError(t, err)

	m.SetEngine(e)
	m.StartDay(7, model.SleepNormalREM, wake)
	ev, err := m.LogDrain("duolingo", 30, wake.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.CategoryShortForm, ev.Category)
}
