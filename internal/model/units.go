package model

import "math"

// Percent is a pool level as exchanged with callers: a whole number where 100
// is the nominal maximum. Values above 100 are legal while capacity expansion
// is active.
type Percent int

// Fraction is the internal 0.0-1.0 representation of a pool level or delta.
type Fraction float64

// Fraction converts a percentage to its internal fractional form.
func (p Percent) Fraction() Fraction {
	return Fraction(float64(p) / 100)
}

// Percent rounds a fraction to the nearest whole percentage.
// NaN maps to 0 so no caller ever observes it.
func (f Fraction) Percent() Percent {
	v := float64(f)
	if math.IsNaN(v) {
		return 0
	}
	return Percent(math.Round(v * 100))
}

// Clamp limits f to [lo, hi]. NaN is pulled to lo.
func (f Fraction) Clamp(lo, hi Fraction) Fraction {
	if math.IsNaN(float64(f)) || f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}

// Ceiling is the highest attainable level for a given capacity expansion.
func Ceiling(expansion Fraction) Fraction {
	if math.IsNaN(float64(expansion)) || expansion < 0 {
		expansion = 0
	}
	return 1 + expansion
}
