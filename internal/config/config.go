package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"PoolKeeper/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	Schedule struct {
		MorningCron string `yaml:"morning_cron" env:"CRON_MORNING"`
		CheckinCron string `yaml:"checkin_cron" env:"CRON_CHECKIN"`
		WeeklyCron  string `yaml:"weekly_cron" env:"CRON_WEEKLY"`
	} `yaml:"schedule"`
	Day struct {
		WakeHour            int     `yaml:"wake_hour"`
		Timezone            string  `yaml:"timezone" env:"TIMEZONE"`
		DefaultSleepHours   float64 `yaml:"default_sleep_hours"`
		DefaultSleepQuality string  `yaml:"default_sleep_quality"`
	} `yaml:"day"`
	// Profile holds the self-reported inputs of the dysregulation assessment.
	Profile struct {
		Anhedonia          bool `yaml:"anhedonia"`
		BoredomIntolerance bool `yaml:"boredom_intolerance"`
		CompulsiveUse      bool `yaml:"compulsive_use"`
	} `yaml:"profile"`
	Habits []model.Habit `yaml:"habits"`
	State  struct {
		File string `yaml:"file" env:"STATE_FILE"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"database"`
	Catalog struct {
		Path string `yaml:"path" env:"CATALOG_PATH"`
	} `yaml:"catalog"`
	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy" env:"HTTPS_PROXY"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// midnight is a valid wake hour, so this default is set before decoding
	cfg.Day.WakeHour = 7

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Defaults
	if cfg.Schedule.MorningCron == "" {
		cfg.Schedule.MorningCron = "0 0 7 * * *"
	}
	if cfg.Schedule.CheckinCron == "" {
		cfg.Schedule.CheckinCron = "0 0 13,18 * * *"
	}
	if cfg.Schedule.WeeklyCron == "" {
		cfg.Schedule.WeeklyCron = "0 0 6 * * 1"
	}
	if cfg.Day.Timezone == "" {
		cfg.Day.Timezone = "Local"
	}
	if cfg.Day.DefaultSleepHours == 0 {
		cfg.Day.DefaultSleepHours = 7
	}
	if cfg.Day.DefaultSleepQuality == "" {
		cfg.Day.DefaultSleepQuality = string(model.SleepNormalREM)
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/pool_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/pool_keeper.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	for i := range cfg.Habits {
		if cfg.Habits[i].Resistance == 0 {
			cfg.Habits[i].Resistance = model.DefaultResistance
		}
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Day.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Day.Timezone, err)
	}
	return loc, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Day.WakeHour < 0 || c.Day.WakeHour > 23 {
		return fmt.Errorf("day.wake_hour must be within 0-23")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !model.SleepQuality(c.Day.DefaultSleepQuality).Valid() {
		return fmt.Errorf("day.default_sleep_quality %q is not a known quality", c.Day.DefaultSleepQuality)
	}
	seen := make(map[string]bool, len(c.Habits))
	for _, h := range c.Habits {
		if h.ID == "" {
			return fmt.Errorf("habit %q has no id", h.Name)
		}
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit id %q", h.ID)
		}
		seen[h.ID] = true
		if h.Resistance < 1 || h.Resistance > 10 {
			return fmt.Errorf("habit %q: resistance must be within 1-10", h.ID)
		}
	}
	return nil
}
