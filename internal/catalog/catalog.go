// Package catalog holds the lookup tables that map activity names, recovery
// types and sleep buckets to numeric coefficients, and the classification
// step that turns free text into catalog tags.
package catalog

import (
	"fmt"

	"PoolKeeper/internal/model"
)

// CategoryInfo is the base behaviour of a draining activity category.
type CategoryInfo struct {
	Rate      float64 `yaml:"rate"` // fraction depleted per 30 minutes
	Mechanism string  `yaml:"mechanism"`
}

// AppEntry binds an exact activity key to a category. A nil Rate inherits the category rate.
type AppEntry struct {
	Category model.ActivityCategory `yaml:"category"`
	Rate     *float64               `yaml:"rate,omitempty"`
}

// Pattern is a keyword matched by substring when no exact key matches.
// Patterns are tried in order, so more specific keywords must come first.
type Pattern struct {
	Keyword  string                 `yaml:"keyword"`
	Category model.ActivityCategory `yaml:"category"`
}

// RechargeEntry is a detailed recovery type.
type RechargeEntry struct {
	Boost        float64 `yaml:"boost"`
	Mechanism    string  `yaml:"mechanism"`
	Requirements string  `yaml:"requirements,omitempty"`
}

// Catalog is the full set of coefficient tables. It is plain data: callers may
// load overrides from YAML and hand the result to the engine.
type Catalog struct {
	Categories   map[model.ActivityCategory]CategoryInfo `yaml:"categories"`
	Apps         map[string]AppEntry                      `yaml:"apps"`
	Patterns     []Pattern                                `yaml:"patterns"`
	Recharge     map[string]RechargeEntry                 `yaml:"recharge"`
	Legacy       map[string]map[string]float64            `yaml:"legacy_recharge"`
	SleepFill    map[int]float64                          `yaml:"sleep_fill"`
	SleepQuality map[model.SleepQuality]float64           `yaml:"sleep_quality"`
}

// Sleep bucket bounds.
const (
	MinSleepBucket = 3
	MaxSleepBucket = 9
)

func rate(v float64) *float64 { return &v }

// Default returns a freshly allocated catalog with the built-in coefficients.
func Default() *Catalog {
	return &Catalog{
		Categories: map[model.ActivityCategory]CategoryInfo{
			model.CategoryShortForm: {Rate: 0.14, Mechanism: "variable-ratio reward loop"},
			model.CategorySocial:    {Rate: 0.10, Mechanism: "social comparison"},
			model.CategoryGambling:  {Rate: 0.18, Mechanism: "intermittent reinforcement"},
			model.CategoryGaming:    {Rate: 0.12, Mechanism: "achievement loop"},
			model.CategoryStreaming: {Rate: 0.07, Mechanism: "passive consumption"},
			model.CategoryNews:      {Rate: 0.07, Mechanism: "threat vigilance"},
			model.CategoryShopping:  {Rate: 0.06, Mechanism: "anticipatory reward"},
			model.CategoryMessaging: {Rate: 0.03, Mechanism: "interruption"},
			model.CategoryUtility:   {Rate: 0, Mechanism: ""},
		},
		Apps: map[string]AppEntry{
			"tiktok":          {Category: model.CategoryShortForm},
			"youtube shorts":  {Category: model.CategoryShortForm},
			"instagram reels": {Category: model.CategoryShortForm},
			"instagram":       {Category: model.CategorySocial},
			"facebook":        {Category: model.CategorySocial, Rate: rate(0.08)},
			"twitter":         {Category: model.CategorySocial},
			"x":               {Category: model.CategorySocial},
			"reddit":          {Category: model.CategorySocial, Rate: rate(0.09)},
			"snapchat":        {Category: model.CategorySocial, Rate: rate(0.08)},
			"youtube":         {Category: model.CategoryStreaming, Rate: rate(0.08)},
			"netflix":         {Category: model.CategoryStreaming, Rate: rate(0.06)},
			"twitch":          {Category: model.CategoryStreaming, Rate: rate(0.09)},
			"casino":          {Category: model.CategoryGambling},
			"sports betting":  {Category: model.CategoryGambling},
			"candy crush":     {Category: model.CategoryGaming, Rate: rate(0.10)},
			"fortnite":        {Category: model.CategoryGaming},
			"amazon":          {Category: model.CategoryShopping},
			"whatsapp":        {Category: model.CategoryMessaging},
			"calendar":        {Category: model.CategoryUtility},
			"maps":            {Category: model.CategoryUtility},
		},
		Patterns: []Pattern{
			{Keyword: "shorts", Category: model.CategoryShortForm},
			{Keyword: "reels", Category: model.CategoryShortForm},
			{Keyword: "tiktok", Category: model.CategoryShortForm},
			{Keyword: "bet", Category: model.CategoryGambling},
			{Keyword: "casino", Category: model.CategoryGambling},
			{Keyword: "poker", Category: model.CategoryGambling},
			{Keyword: "slots", Category: model.CategoryGambling},
			{Keyword: "insta", Category: model.CategorySocial},
			{Keyword: "tweet", Category: model.CategorySocial},
			{Keyword: "social", Category: model.CategorySocial},
			{Keyword: "youtube", Category: model.CategoryStreaming},
			{Keyword: "stream", Category: model.CategoryStreaming},
			{Keyword: "game", Category: model.CategoryGaming},
			{Keyword: "news", Category: model.CategoryNews},
			{Keyword: "shop", Category: model.CategoryShopping},
			{Keyword: "chat", Category: model.CategoryMessaging},
		},
		Recharge: map[string]RechargeEntry{
			"walk_outside":      {Boost: 0.08, Mechanism: "daylight and rhythmic movement"},
			"exercise_moderate": {Boost: 0.12, Mechanism: "dopamine and endorphin release", Requirements: "20+ minutes"},
			"exercise_intense":  {Boost: 0.15, Mechanism: "sustained catecholamine lift", Requirements: "20+ minutes at high effort"},
			"meditation":        {Boost: 0.07, Mechanism: "prefrontal down-regulation", Requirements: "10+ minutes"},
			"power_nap":         {Boost: 0.10, Mechanism: "adenosine clearance", Requirements: "under 30 minutes"},
			"cold_exposure":     {Boost: 0.06, Mechanism: "noradrenaline spike"},
			"social_connection": {Boost: 0.08, Mechanism: "oxytocin release", Requirements: "in person"},
			"nature_time":       {Boost: 0.09, Mechanism: "attention restoration"},
			"reading":           {Boost: 0.05, Mechanism: "sustained low-stimulation focus"},
			"journaling":        {Boost: 0.04, Mechanism: "cognitive offloading"},
			"breathwork":        {Boost: 0.05, Mechanism: "vagal tone"},
			"music":             {Boost: 0.03, Mechanism: "mood regulation"},
		},
		Legacy: map[string]map[string]float64{
			"exercise":    {"light": 0.05, "moderate": 0.10, "intense": 0.15},
			"mindfulness": {"light": 0.03, "moderate": 0.05, "intense": 0.07},
			"rest":        {"light": 0.03, "moderate": 0.06, "intense": 0.10},
			"social":      {"light": 0.03, "moderate": 0.06, "intense": 0.08},
			"nature":      {"light": 0.04, "moderate": 0.07, "intense": 0.09},
		},
		SleepFill: map[int]float64{
			3: 0.35, 4: 0.45, 5: 0.58, 6: 0.70, 7: 0.82, 8: 0.92, 9: 1.00,
		},
		SleepQuality: map[model.SleepQuality]float64{
			model.SleepHighREM:    1.10,
			model.SleepNormalREM:  1.00,
			model.SleepLowREM:     0.85,
			model.SleepFragmented: 0.70,
		},
	}
}

// Validate checks that the tables are total and internally consistent.
func (c *Catalog) Validate() error {
	if _, ok := c.Categories[model.CategoryUtility]; !ok {
		return fmt.Errorf("category %q is required as the fallback", model.CategoryUtility)
	}
	for cat, info := range c.Categories {
		if info.Rate < 0 {
			return fmt.Errorf("category %q: negative rate %.3f", cat, info.Rate)
		}
	}
	for key, app := range c.Apps {
		if _, ok := c.Categories[app.Category]; !ok {
			return fmt.Errorf("app %q: unknown category %q", key, app.Category)
		}
		if app.Rate != nil && *app.Rate < 0 {
			return fmt.Errorf("app %q: negative rate %.3f", key, *app.Rate)
		}
	}
	for i, p := range c.Patterns {
		if p.Keyword == "" {
			return fmt.Errorf("pattern %d: empty keyword", i)
		}
		if _, ok := c.Categories[p.Category]; !ok {
			return fmt.Errorf("pattern %q: unknown category %q", p.Keyword, p.Category)
		}
	}
	for key, r := range c.Recharge {
		if r.Boost < 0 {
			return fmt.Errorf("recharge %q: negative boost %.3f", key, r.Boost)
		}
	}
	for cat, levels := range c.Legacy {
		for intensity, b := range levels {
			if b < 0 {
				return fmt.Errorf("legacy recharge %s/%s: negative boost %.3f", cat, intensity, b)
			}
		}
	}
	prev := 0.0
	for h := MinSleepBucket; h <= MaxSleepBucket; h++ {
		fill, ok := c.SleepFill[h]
		if !ok {
			return fmt.Errorf("sleep fill missing bucket %dh", h)
		}
		if fill < prev {
			return fmt.Errorf("sleep fill must not decrease: %dh=%.2f < %.2f", h, fill, prev)
		}
		prev = fill
	}
	return nil
}
