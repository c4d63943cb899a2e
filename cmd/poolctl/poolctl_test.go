package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/pool"
	"PoolKeeper/internal/recorder"
	"PoolKeeper/internal/tracker"
)

func withOutput(t *testing.T, format string) {
	t.Helper()
	old := output
	output = format
	t.Cleanup(func() { output = old })
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, fn(cmd, args))
	return out.String()
}

func TestRunMorning_JSON(t *testing.T) {
	withOutput(t, "json")
	morningHours, morningQuality, morningTier = 8, string(model.SleepNormalREM), string(model.TierHealthy)
	morningYesterday, morningStreak, morningExpansion = true, 7, 0.20

	var got morningResult
	require.NoError(t, json.Unmarshal([]byte(run(t, runMorning)), &got))
	assert.Equal(t, 8, got.Bucket)
	// 0.92 + 0.10 + 0.05
	assert.Equal(t, model.Percent(107), got.Level)
}

func TestRunMorning_RejectsQuality(t *testing.T) {
	morningQuality = "dreamy"
	t.Cleanup(func() { morningQuality = string(model.SleepNormalREM) })
	assert.Error(t, runMorning(&cobra.Command{}, nil))
}

func TestRunClassify_Table(t *testing.T) {
	withOutput(t, "table")
	got := run(t, runClassify, "YouTube", "Shorts")
	assert.Contains(t, got, "key:        youtube shorts")
	assert.Contains(t, got, "category:   short_form")
	assert.Contains(t, got, "resolution: exact")
}

func TestRunCurrent(t *testing.T) {
	withOutput(t, "json")
	wake := time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)
	e, err := pool.New(pool.DefaultConfig())
	require.NoError(t, err)

	statePath = filepath.Join(t.TempDir(), "state.json")
	day := e.NewDay(nil, pool.SleepInputs{Hours: 8}, wake)
	require.NoError(t, tracker.SaveState(statePath, &tracker.Record{Pool: day}))

	atFlag = "2025-03-04T10:00:00Z"
	t.Cleanup(func() { atFlag = "" })

	var got model.Breakdown
	require.NoError(t, json.Unmarshal([]byte(run(t, runCurrent)), &got))
	assert.Equal(t, e.CurrentPool(day, wake.Add(3*time.Hour)), got.Level)
	assert.Len(t, got.Terms, 6)
}

func TestRunCapacity(t *testing.T) {
	withOutput(t, "json")
	now := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	dbPath = filepath.Join(t.TempDir(), "pool.db")
	rec, err := recorder.NewSQLiteRecorder(dbPath, zap.NewNop().Sugar())
	require.NoError(t, err)
	for _, d := range []int{1, 2, 3, 8, 9, 10} {
		require.NoError(t, rec.RecordExercise(&model.ExerciseSession{At: now.AddDate(0, 0, -d), Kind: "run"}))
	}
	require.NoError(t, rec.Close())

	atFlag = now.Format(time.RFC3339)
	t.Cleanup(func() { atFlag = "" })

	var got capacityResult
	require.NoError(t, json.Unmarshal([]byte(run(t, runCapacity)), &got))
	assert.Equal(t, 6, got.Sessions)
	assert.Equal(t, 2, got.Weeks)
	assert.Equal(t, model.Percent(106), got.Ceiling)
}

func TestRender_UnknownFormat(t *testing.T) {
	withOutput(t, "xml")
	assert.Error(t, render(&bytes.Buffer{}, nil, nil))
}
