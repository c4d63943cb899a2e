package pool

import (
	"fmt"
	"slices"

	"PoolKeeper/internal/model"
)

// AssessDysregulationTier scores aggregate usage signals and maps the score to a tier.
func (e *Engine) AssessDysregulationTier(s model.UsageSignals) model.Assessment {
	cfg := e.cfg.Dysregulation
	var score int
	var reasons []string

	for _, band := range cfg.ScreenBands {
		if s.AvgDailyScreenMinutes >= band.Minutes {
			score += band.Points
			reasons = append(reasons, fmt.Sprintf("screen time %.0f min/day (+%d)", s.AvgDailyScreenMinutes, band.Points))
			break
		}
	}
	if slices.Contains(cfg.FlaggedCategories, s.PrimaryCategory) {
		score += cfg.FlaggedPoints
		reasons = append(reasons, fmt.Sprintf("primary category %s (+%d)", s.PrimaryCategory, cfg.FlaggedPoints))
	}
	if s.Anhedonia {
		score += cfg.AnhedoniaPoints
		reasons = append(reasons, fmt.Sprintf("anhedonia (+%d)", cfg.AnhedoniaPoints))
	}
	if s.BoredomIntolerance {
		score += cfg.BoredomPoints
		reasons = append(reasons, fmt.Sprintf("boredom intolerance (+%d)", cfg.BoredomPoints))
	}
	if s.CompulsiveUse {
		score += cfg.CompulsivePoints
		reasons = append(reasons, fmt.Sprintf("compulsive use (+%d)", cfg.CompulsivePoints))
	}
	switch s.ScreenTimeTrend {
	case model.TrendIncreasing:
		score += cfg.IncreasingPoints
		reasons = append(reasons, fmt.Sprintf("usage increasing (%+d)", cfg.IncreasingPoints))
	case model.TrendDecreasing:
		score += cfg.DecreasingPoints
		reasons = append(reasons, fmt.Sprintf("usage decreasing (%+d)", cfg.DecreasingPoints))
	}

	tier := mapTier(cfg.Cuts, score)
	return model.Assessment{
		Score:       score,
		Tier:        tier,
		Multipliers: e.multipliers(tier),
		Reasons:     reasons,
	}
}

// mapTier maps a total score to a tier; cuts are ordered highest first.
func mapTier(cuts []TierCut, score int) model.DysregulationTier {
	for _, c := range cuts {
		if score >= c.MinScore {
			return c.Tier
		}
	}
	return model.TierHealthy
}
