package calculator

import (
	"errors"
	"fmt"

	"PoolKeeper/internal/model"
)

// CircadianWindow is a time-of-day range [Start, End) in hours. A window whose
// End is not after Start wraps past midnight.
type CircadianWindow struct {
	Label    string         `yaml:"label"`
	Start    int            `yaml:"start"`
	End      int            `yaml:"end"`
	Modifier model.Fraction `yaml:"modifier"`
}

// Contains reports whether hour falls inside the window.
func (w CircadianWindow) Contains(hour int) bool {
	if w.Start < w.End {
		return hour >= w.Start && hour < w.End
	}
	return hour >= w.Start || hour < w.End
}

// DefaultCircadianWindows returns the built-in day partition.
func DefaultCircadianWindows() []CircadianWindow {
	return []CircadianWindow{
		{Label: "morning surge", Start: 6, End: 9, Modifier: 0.05},
		{Label: "midday peak", Start: 9, End: 12, Modifier: 0.08},
		{Label: "early-afternoon dip", Start: 12, End: 14, Modifier: -0.03},
		{Label: "afternoon trough", Start: 14, End: 16, Modifier: -0.08},
		{Label: "evening recovery", Start: 16, End: 19, Modifier: 0.02},
		{Label: "evening decline", Start: 19, End: 22, Modifier: -0.04},
		{Label: "night", Start: 22, End: 6, Modifier: -0.10},
	}
}

// ValidateWindows checks that every hour 0-23 matches exactly one window.
func ValidateWindows(windows []CircadianWindow) error {
	if len(windows) == 0 {
		return errors.New("no circadian windows")
	}
	for _, w := range windows {
		if w.Start < 0 || w.Start > 23 || w.End < 0 || w.End > 24 {
			return fmt.Errorf("window %q: hours out of range (%d-%d)", w.Label, w.Start, w.End)
		}
	}
	for h := 0; h < 24; h++ {
		n := 0
		for _, w := range windows {
			if w.Contains(h) {
				n++
			}
		}
		if n != 1 {
			return fmt.Errorf("hour %d matches %d windows", h, n)
		}
	}
	return nil
}

// CircadianModifier returns the additive adjustment and label for an hour.
// Hours outside 0-23 are reduced modulo 24. It returns zero and an empty label
// only if the windows do not cover the hour.
func CircadianModifier(windows []CircadianWindow, hour int) (model.Fraction, string) {
	hour = ((hour % 24) + 24) % 24
	for _, w := range windows {
		if w.Contains(hour) {
			return w.Modifier, w.Label
		}
	}
	return 0, ""
}
