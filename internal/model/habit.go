package model

// DefaultResistance is the mid-scale difficulty assumed when a habit has none.
const DefaultResistance = 5

// Habit is owned by the host application; the engine only orders it.
type Habit struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Resistance int    `json:"resistance" yaml:"resistance"` // 1 (trivial) .. 10 (hardest)
	Completed  bool   `json:"completed" yaml:"-"`           // already satisfied today
}

// Recommendation is a habit placed in suggested attempt order.
type Recommendation struct {
	Habit    Habit  `json:"habit"`
	Priority int    `json:"priority"` // 1-based
	Advice   string `json:"advice"`
}
