package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"PoolKeeper/internal/model"
)

// DrainClass is the classification of a free-text activity name.
type DrainClass struct {
	Key        string // canonical key; repeats of the same activity share it
	Category   model.ActivityCategory
	Rate       model.Fraction // per 30 minutes
	Mechanism  string
	Resolution model.Resolution
}

// Normalize folds an activity name to the form catalog keys are stored in.
func Normalize(name string) string {
	return cases.Lower(language.Und).String(strings.Join(strings.Fields(name), " "))
}

// ClassifyDrain resolves an activity name: exact key first, then the ordered
// keyword patterns, then the zero-impact utility category.
func (c *Catalog) ClassifyDrain(name string) DrainClass {
	key := Normalize(name)

	if app, ok := c.Apps[key]; ok {
		info := c.Categories[app.Category]
		r := info.Rate
		if app.Rate != nil {
			r = *app.Rate
		}
		return DrainClass{
			Key:        key,
			Category:   app.Category,
			Rate:       model.Fraction(r),
			Mechanism:  info.Mechanism,
			Resolution: model.ResolvedExact,
		}
	}

	if key != "" {
		for _, p := range c.Patterns {
			if strings.Contains(key, Normalize(p.Keyword)) {
				info := c.Categories[p.Category]
				return DrainClass{
					Key:        Normalize(p.Keyword),
					Category:   p.Category,
					Rate:       model.Fraction(info.Rate),
					Mechanism:  info.Mechanism,
					Resolution: model.ResolvedPattern,
				}
			}
		}
	}

	info := c.Categories[model.CategoryUtility]
	return DrainClass{
		Key:        key,
		Category:   model.CategoryUtility,
		Rate:       model.Fraction(info.Rate),
		Mechanism:  info.Mechanism,
		Resolution: model.ResolvedFallback,
	}
}
