package pool

import (
	"time"

	"PoolKeeper/internal/catalog"
	"PoolKeeper/internal/model"
)

// RechargeInput describes one restorative activity to log. Type is tried
// before the legacy Category/Intensity pair. Override, when set, replaces the
// catalog boost.
type RechargeInput struct {
	Type      string
	Category  string
	Intensity string
	Override  *model.Percent
	Tier      model.DysregulationTier
	At        time.Time
}

// LogRechargeActivity resolves a recharge. Unresolvable activities come back
// with a zero boost and Error set; callers must check it.
func (e *Engine) LogRechargeActivity(in RechargeInput) model.RechargeEvent {
	class := e.cfg.Catalog.ResolveRecharge(catalog.RechargeRequest{
		Type:      in.Type,
		Category:  in.Category,
		Intensity: in.Intensity,
	})

	boost := class.Boost
	resolution := class.Resolution
	errMsg := class.Error
	if in.Override != nil {
		boost = in.Override.Fraction()
		if resolution == model.Unresolved {
			resolution = model.ResolvedFallback
			errMsg = ""
		}
	}
	if boost < 0 {
		boost = 0
	}

	return model.RechargeEvent{
		ID:           e.newID(),
		Type:         class.Type,
		Category:     class.Category,
		Intensity:    class.Intensity,
		Boost:        boost * model.Fraction(e.multipliers(in.Tier).Recovery),
		Mechanism:    class.Mechanism,
		Requirements: class.Requirements,
		Resolution:   resolution,
		Error:        errMsg,
		LoggedAt:     in.At,
	}
}
