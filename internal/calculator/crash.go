package calculator

import (
	"time"

	"PoolKeeper/internal/model"
)

// NewCrash builds the delayed dip that follows a drain of the given magnitude.
func NewCrash(magnitude model.Fraction, fraction float64, window time.Duration, at time.Time) model.Crash {
	amount := magnitude * model.Fraction(fraction)
	if amount < 0 {
		amount = 0
	}
	return model.Crash{
		Amount:    amount,
		Window:    window,
		StartedAt: at,
		ExpiresAt: at.Add(window),
	}
}

// CrashRemaining returns how much of the crash still applies at now. The dip
// decays linearly from its full amount at StartedAt to zero at ExpiresAt.
// A now before StartedAt counts as zero elapsed time.
func CrashRemaining(c model.Crash, now time.Time) model.Fraction {
	if c.Amount <= 0 || c.Window <= 0 {
		return 0
	}
	elapsed := now.Sub(c.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= c.Window {
		return 0
	}
	left := 1 - float64(elapsed)/float64(c.Window)
	return c.Amount * model.Fraction(left)
}
