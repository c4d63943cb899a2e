package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"PoolKeeper/internal/catalog"
	"PoolKeeper/internal/collector"
	"PoolKeeper/internal/config"
	"PoolKeeper/internal/logging"
	"PoolKeeper/internal/model"
	"PoolKeeper/internal/notifier"
	"PoolKeeper/internal/pool"
	"PoolKeeper/internal/recorder"
	"PoolKeeper/internal/scheduler"
	"PoolKeeper/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "poolkeeper: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	logger.Infow("PoolKeeper starting", "config", cfgPath)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	engine, err := newEngine(cat)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	tm, err := tracker.NewManager(cfg.State.File, engine, cfg.Habits, logger.Named("tracker"))
	if err != nil {
		return fmt.Errorf("init tracker: %w", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger.Named("recorder"))
		if err != nil {
			logger.Warnw("init sqlite recorder failed, using noop", "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	col := collector.NewCollector(rec, collector.Profile{
		Anhedonia:          cfg.Profile.Anhedonia,
		BoredomIntolerance: cfg.Profile.BoredomIntolerance,
		CompulsiveUse:      cfg.Profile.CompulsiveUse,
	})
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.Named("telegram"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, col, tm, tn, rec, scheduler.DayConfig{
		WakeHour:     cfg.Day.WakeHour,
		SleepHours:   cfg.Day.DefaultSleepHours,
		SleepQuality: model.SleepQuality(cfg.Day.DefaultSleepQuality),
		Location:     loc,
	}, logger.Named("scheduler"))
	if err := sched.RegisterAll(cfg.Schedule.MorningCron, cfg.Schedule.CheckinCron, cfg.Schedule.WeeklyCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tn.StartPolling(gctx, sched.HandleCommand)
	})
	if cfg.Catalog.Path != "" {
		w := catalog.NewWatcher(cfg.Catalog.Path, func(c *catalog.Catalog) {
			e, err := newEngine(c)
			if err != nil {
				logger.Errorw("rejecting reloaded catalog", "error", err)
				return
			}
			tm.SetEngine(e)
			logger.Infow("catalog reloaded", "apps", len(c.Apps), "patterns", len(c.Patterns))
		}, logger.Named("catalog"))
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Infow("RUN_ON_START enabled, executing weekly reassessment now")
		go sched.RunWeeklyNow()
	}

	logger.Infow("PoolKeeper is running")
	if err := g.Wait(); err != nil {
		logger.Errorw("background task failed", "error", err)
		return err
	}
	logger.Infow("PoolKeeper stopped")
	return nil
}

func newEngine(c *catalog.Catalog) (*pool.Engine, error) {
	cfg := pool.DefaultConfig()
	cfg.Catalog = c
	return pool.New(cfg)
}
