package catalog

import (
	"fmt"

	"PoolKeeper/internal/model"
)

// RechargeRequest names a recovery activity either by detailed type key or by
// the legacy category/intensity pair. Type is tried first.
type RechargeRequest struct {
	Type      string
	Category  string
	Intensity string
}

// RechargeClass is a resolved recovery activity. Boost is before any
// dysregulation scaling.
type RechargeClass struct {
	Type         string
	Category     string
	Intensity    string
	Boost        model.Fraction
	Mechanism    string
	Requirements string
	Resolution   model.Resolution
	Error        string
}

// ResolveRecharge looks the request up in the detailed table, then the legacy
// table. When neither matches it returns a zero boost with Error set.
func (c *Catalog) ResolveRecharge(req RechargeRequest) RechargeClass {
	typ := Normalize(req.Type)
	cat := Normalize(req.Category)
	intensity := Normalize(req.Intensity)

	if typ != "" {
		if e, ok := c.Recharge[typ]; ok {
			return RechargeClass{
				Type:         typ,
				Boost:        model.Fraction(e.Boost),
				Mechanism:    e.Mechanism,
				Requirements: e.Requirements,
				Resolution:   model.ResolvedExact,
			}
		}
	}

	if levels, ok := c.Legacy[cat]; ok {
		if b, ok := levels[intensity]; ok {
			return RechargeClass{
				Category:   cat,
				Intensity:  intensity,
				Boost:      model.Fraction(b),
				Resolution: model.ResolvedLegacy,
			}
		}
	}

	return RechargeClass{
		Type:       typ,
		Category:   cat,
		Intensity:  intensity,
		Resolution: model.Unresolved,
		Error:      fmt.Sprintf("unknown recharge activity (type=%q category=%q intensity=%q)", typ, cat, intensity),
	}
}
