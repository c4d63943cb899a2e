package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
telegram:
  bot_token: file-token
  chat_id: "42"
day:
  wake_hour: 6
  timezone: UTC
profile:
  boredom_intolerance: true
habits:
  - id: run
    name: Morning run
    resistance: 8
  - id: floss
    name: Floss
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileDefaultsAndEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("SQLITE_PATH", "/tmp/pool.db")

	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.Equal(t, "/tmp/pool.db", cfg.Database.SQLitePath)
	assert.Equal(t, 6, cfg.Day.WakeHour)
	assert.True(t, cfg.Profile.BoredomIntolerance)
	assert.Equal(t, "0 0 7 * * *", cfg.Schedule.MorningCron)
	assert.Equal(t, "data/pool_state.json", cfg.State.File)
	require.Len(t, cfg.Habits, 2)
	assert.Equal(t, 5, cfg.Habits[1].Resistance)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Error(t, cfg.Validate(), "telegram credentials are required")
}

func TestLoad_WakeHourMidnight(t *testing.T) {
	cfg, err := Load(writeConfig(t, "day:\n  wake_hour: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Day.WakeHour)

	cfg, err = Load(writeConfig(t, "day:\n  timezone: UTC\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Day.WakeHour)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "habits: [:"))
	assert.Error(t, err)
}

func TestValidate_Habits(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample+`  - id: run
    name: Duplicate
`))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "duplicate habit id")

	cfg, err = Load(writeConfig(t, sample))
	require.NoError(t, err)
	cfg.Habits[0].Resistance = 11
	assert.Error(t, cfg.Validate())

	cfg.Habits[0].Resistance = 3
	cfg.Day.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
}
