package collector

import (
	"fmt"
	"sort"
	"time"

	"PoolKeeper/internal/calculator"
	"PoolKeeper/internal/model"
)

// Profile holds the self-reported assessment inputs.
type Profile struct {
	Anhedonia          bool
	BoredomIntolerance bool
	CompulsiveUse      bool
}

// Trend thresholds on the ratio of this week's minutes to last week's.
const (
	trendUp   = 1.15
	trendDown = 0.85
)

// Collector turns recorded history into engine inputs.
type Collector struct {
	Source  Source
	Profile Profile
}

// NewCollector creates a new Collector.
func NewCollector(src Source, profile Profile) *Collector {
	return &Collector{Source: src, Profile: profile}
}

// UsageSignals aggregates the last 14 days of drains ending on now's date.
func (c *Collector) UsageSignals(now time.Time) (model.UsageSignals, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -13)

	rows, err := c.Source.DrainMinutesSince(since)
	if err != nil {
		return model.UsageSignals{}, fmt.Errorf("load drain minutes: %w", err)
	}

	// date key -> 0 for the recent week, 1 for the week before
	week := make(map[string]int, 14)
	for i := 0; i < 14; i++ {
		week[today.AddDate(0, 0, -i).Format("2006-01-02")] = i / 7
	}

	var recent, prior float64
	byCategory := make(map[model.ActivityCategory]float64)
	for _, r := range rows {
		w, ok := week[r.Date]
		if !ok {
			continue
		}
		if w == 0 {
			recent += r.Minutes
			byCategory[r.Category] += r.Minutes
		} else {
			prior += r.Minutes
		}
	}

	return model.UsageSignals{
		AvgDailyScreenMinutes: recent / 7,
		PrimaryCategory:       primaryCategory(byCategory),
		Anhedonia:             c.Profile.Anhedonia,
		BoredomIntolerance:    c.Profile.BoredomIntolerance,
		CompulsiveUse:         c.Profile.CompulsiveUse,
		ScreenTimeTrend:       trend(recent, prior),
	}, nil
}

// ExerciseHistory returns the sessions inside the capacity expansion window.
func (c *Collector) ExerciseHistory(now time.Time, periods int) ([]model.ExerciseSession, error) {
	sessions, err := c.Source.ExerciseSince(now.Add(-time.Duration(periods) * calculator.Week))
	if err != nil {
		return nil, fmt.Errorf("load exercise history: %w", err)
	}
	return sessions, nil
}

func trend(recent, prior float64) model.Trend {
	if prior <= 0 {
		return model.TrendStable
	}
	ratio := recent / prior
	switch {
	case ratio > trendUp:
		return model.TrendIncreasing
	case ratio < trendDown:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

func primaryCategory(minutes map[model.ActivityCategory]float64) model.ActivityCategory {
	cats := make([]model.ActivityCategory, 0, len(minutes))
	for c := range minutes {
		if c != model.CategoryUtility {
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return model.CategoryUtility
	}
	sort.Slice(cats, func(i, j int) bool {
		if minutes[cats[i]] != minutes[cats[j]] {
			return minutes[cats[i]] > minutes[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats[0]
}
