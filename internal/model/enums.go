package model

// SleepQuality is the self-reported or tracker-reported sleep quality tier.
type SleepQuality string

const (
	SleepHighREM    SleepQuality = "high_rem"
	SleepNormalREM  SleepQuality = "normal_rem"
	SleepLowREM     SleepQuality = "low_rem"
	SleepFragmented SleepQuality = "fragmented"
)

// Valid reports whether q is one of the known quality tiers.
func (q SleepQuality) Valid() bool {
	switch q {
	case SleepHighREM, SleepNormalREM, SleepLowREM, SleepFragmented:
		return true
	}
	return false
}

// DysregulationTier classifies chronic behavioural tolerance, ordered from
// least to most affected.
type DysregulationTier string

const (
	TierHealthy  DysregulationTier = "healthy"
	TierMild     DysregulationTier = "mild"
	TierModerate DysregulationTier = "moderate"
	TierSevere   DysregulationTier = "severe"
)

// ActivityCategory is the tag a draining activity name classifies into.
type ActivityCategory string

const (
	CategoryShortForm ActivityCategory = "short_form"
	CategorySocial    ActivityCategory = "social"
	CategoryGambling  ActivityCategory = "gambling"
	CategoryGaming    ActivityCategory = "gaming"
	CategoryStreaming ActivityCategory = "streaming"
	CategoryNews      ActivityCategory = "news"
	CategoryShopping  ActivityCategory = "shopping"
	CategoryMessaging ActivityCategory = "messaging"
	CategoryUtility   ActivityCategory = "utility"
)

// Resolution records how a catalog lookup was satisfied.
type Resolution string

const (
	ResolvedExact   Resolution = "exact"
	ResolvedPattern Resolution = "pattern"
	ResolvedLegacy  Resolution = "legacy"
	// ResolvedFallback means nothing matched and a default was substituted.
	ResolvedFallback Resolution = "fallback"
	// Unresolved means nothing matched and the result carries no effect.
	Unresolved Resolution = "unresolved"
)

// Trend is the direction of a usage signal over time.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)
