package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/collector"
	"PoolKeeper/internal/model"
	"PoolKeeper/internal/recorder"
	"PoolKeeper/internal/tracker"
)

var (
	statePath string
	dbPath    string
	atFlag    string
	profile   collector.Profile
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Explain the current level of the saved day",
	RunE:  runCurrent,
}

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Compute capacity expansion from recorded exercise sessions",
	RunE:  runCapacity,
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess the dysregulation tier from recorded usage",
	RunE:  runAssess,
}

func init() {
	rootCmd.AddCommand(currentCmd, capacityCmd, assessCmd)
	rootCmd.PersistentFlags().StringVar(&atFlag, "at", "", "Evaluate at this RFC 3339 time (default: now)")
	currentCmd.Flags().StringVar(&statePath, "state", "data/pool_state.json", "Bot state file")
	for _, c := range []*cobra.Command{capacityCmd, assessCmd} {
		c.Flags().StringVar(&dbPath, "db", "data/pool_keeper.db", "SQLite history database")
	}
	assessCmd.Flags().BoolVar(&profile.Anhedonia, "anhedonia", false, "Self-reported anhedonia")
	assessCmd.Flags().BoolVar(&profile.BoredomIntolerance, "boredom", false, "Self-reported boredom intolerance")
	assessCmd.Flags().BoolVar(&profile.CompulsiveUse, "compulsive", false, "Self-reported compulsive use")
}

func evalTime() (time.Time, error) {
	if atFlag == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, atFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at: %w", err)
	}
	return t, nil
}

func openHistory() (*collector.Collector, func() error, error) {
	rec, err := recorder.NewSQLiteRecorder(dbPath, zap.NewNop().Sugar())
	if err != nil {
		return nil, nil, err
	}
	return collector.NewCollector(rec, profile), rec.Close, nil
}

func runCurrent(cmd *cobra.Command, _ []string) error {
	now, err := evalTime()
	if err != nil {
		return err
	}
	rec, err := tracker.LoadState(statePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if rec.Pool == nil {
		return fmt.Errorf("%s holds no day yet", statePath)
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}

	bd := e.Explain(rec.Pool, now)
	return render(cmd.OutOrStdout(), bd, func(w io.Writer) {
		fmt.Fprintf(w, "%s at %s\n", rec.Pool.Date, now.Format("15:04"))
		for _, t := range bd.Terms {
			fmt.Fprintf(w, "  %-15s %+6.1f%%  %s\n", t.Name, 100*float64(t.Value), t.Commentary)
		}
		fmt.Fprintf(w, "  %-15s %6d%%\n", "level", bd.Level)
	})
}

type capacityResult struct {
	Sessions  int            `json:"sessions" yaml:"sessions"`
	Weeks     int            `json:"consecutive_weeks" yaml:"consecutive_weeks"`
	Expansion model.Fraction `json:"expansion" yaml:"expansion"`
	Ceiling   model.Percent  `json:"ceiling" yaml:"ceiling"`
}

func runCapacity(cmd *cobra.Command, _ []string) error {
	now, err := evalTime()
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}
	col, closeFn, err := openHistory()
	if err != nil {
		return err
	}
	defer closeFn()

	capCfg := e.Config().Capacity
	sessions, err := col.ExerciseHistory(now, capCfg.Periods)
	if err != nil {
		return err
	}
	exp := e.CapacityExpansion(sessions, now)
	res := capacityResult{
		Sessions:  len(sessions),
		Weeks:     calculator.ConsecutiveWeeks(sessions, now, capCfg),
		Expansion: exp,
		Ceiling:   model.Ceiling(exp).Percent(),
	}
	return render(cmd.OutOrStdout(), res, func(w io.Writer) {
		fmt.Fprintf(w, "sessions:          %d\n", res.Sessions)
		fmt.Fprintf(w, "consecutive weeks: %d\n", res.Weeks)
		fmt.Fprintf(w, "pool ceiling:      %d%%\n", res.Ceiling)
	})
}

func runAssess(cmd *cobra.Command, _ []string) error {
	now, err := evalTime()
	if err != nil {
		return err
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}
	col, closeFn, err := openHistory()
	if err != nil {
		return err
	}
	defer closeFn()

	signals, err := col.UsageSignals(now)
	if err != nil {
		return err
	}
	a := e.AssessDysregulationTier(signals)
	return render(cmd.OutOrStdout(), a, func(w io.Writer) {
		fmt.Fprintf(w, "screen time: %.0f min/day (%s)\n", signals.AvgDailyScreenMinutes, signals.ScreenTimeTrend)
		fmt.Fprintf(w, "tier:        %s (score %d)\n", a.Tier, a.Score)
		for _, r := range a.Reasons {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	})
}
