package model

// UsageSignals are the aggregate inputs to the dysregulation assessment.
type UsageSignals struct {
	AvgDailyScreenMinutes float64          `json:"avg_daily_screen_minutes"`
	PrimaryCategory       ActivityCategory `json:"primary_category"`
	Anhedonia             bool             `json:"anhedonia"`
	BoredomIntolerance    bool             `json:"boredom_intolerance"`
	CompulsiveUse         bool             `json:"compulsive_use"`
	ScreenTimeTrend       Trend            `json:"screen_time_trend"`
}

// TierMultipliers scale the other models for a dysregulation tier.
type TierMultipliers struct {
	Depletion float64 `json:"depletion" yaml:"depletion"`
	Recovery  float64 `json:"recovery" yaml:"recovery"`
	Capacity  float64 `json:"capacity" yaml:"capacity"`
}

// Assessment is the result of classifying usage signals.
type Assessment struct {
	Score       int
	Tier        DysregulationTier
	Multipliers TierMultipliers
	Reasons     []string
}

// Term is one additive component of a current-level calculation.
type Term struct {
	Name       string
	Value      Fraction
	Commentary string
}

// Breakdown is the full current-level calculation, term by term.
type Breakdown struct {
	Terms   []Term
	Raw     Fraction // sum of terms before clamping
	Ceiling Fraction
	Level   Percent
	Window  string // circadian window label
}
