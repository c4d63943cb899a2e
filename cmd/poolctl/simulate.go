package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"PoolKeeper/internal/model"
	"PoolKeeper/internal/pool"
)

var (
	morningHours     float64
	morningQuality   string
	morningYesterday bool
	morningStreak    int
	morningTier      string
	morningExpansion float64
)

var morningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Compute the morning pool for a sleep report",
	Example: `  poolctl morning --hours 6.5 --quality low_rem
  poolctl morning --hours 8 --yesterday --streak 21 --tier mild`,
	RunE: runMorning,
}

var classifyCmd = &cobra.Command{
	Use:   "classify <activity name>",
	Short: "Show how an activity resolves in the drain catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(morningCmd, classifyCmd)
	morningCmd.Flags().Float64Var(&morningHours, "hours", 7, "Hours slept")
	morningCmd.Flags().StringVar(&morningQuality, "quality", string(model.SleepNormalREM), "Sleep quality (high_rem, normal_rem, low_rem, fragmented)")
	morningCmd.Flags().BoolVar(&morningYesterday, "yesterday", false, "All habits were completed yesterday")
	morningCmd.Flags().IntVar(&morningStreak, "streak", 0, "Consecutive complete days")
	morningCmd.Flags().StringVar(&morningTier, "tier", string(model.TierHealthy), "Dysregulation tier")
	morningCmd.Flags().Float64Var(&morningExpansion, "expansion", 0, "Capacity expansion fraction (0-0.20)")
}

type morningResult struct {
	Bucket   int           `json:"bucket" yaml:"bucket"`
	Fraction float64       `json:"fraction" yaml:"fraction"`
	Level    model.Percent `json:"level" yaml:"level"`
}

func runMorning(cmd *cobra.Command, _ []string) error {
	quality := model.SleepQuality(morningQuality)
	if !quality.Valid() {
		return fmt.Errorf("unknown sleep quality %q", morningQuality)
	}
	e, err := loadEngine()
	if err != nil {
		return err
	}

	in := pool.SleepInputs{
		Hours:             morningHours,
		Quality:           quality,
		YesterdayComplete: morningYesterday,
		StreakDays:        morningStreak,
		Tier:              model.DysregulationTier(morningTier),
		CapacityExpansion: model.Fraction(morningExpansion),
	}
	res := morningResult{
		Bucket:   pool.SleepBucket(in.Hours),
		Fraction: float64(e.MorningFraction(in)),
		Level:    e.MorningPool(in),
	}
	return render(cmd.OutOrStdout(), res, func(w io.Writer) {
		fmt.Fprintf(w, "sleep bucket: %dh\n", res.Bucket)
		fmt.Fprintf(w, "morning pool: %d%%\n", res.Level)
	})
}

func runClassify(cmd *cobra.Command, args []string) error {
	e, err := loadEngine()
	if err != nil {
		return err
	}
	class := e.Config().Catalog.ClassifyDrain(strings.Join(args, " "))
	return render(cmd.OutOrStdout(), class, func(w io.Writer) {
		fmt.Fprintf(w, "key:        %s\n", class.Key)
		fmt.Fprintf(w, "category:   %s\n", class.Category)
		fmt.Fprintf(w, "rate:       %.2f per 30 min\n", class.Rate)
		fmt.Fprintf(w, "resolution: %s\n", class.Resolution)
		if class.Mechanism != "" {
			fmt.Fprintf(w, "mechanism:  %s\n", class.Mechanism)
		}
	})
}
