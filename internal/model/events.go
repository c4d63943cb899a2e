package model

import "time"

// Crash is the delayed, linearly decaying dip that follows a drain.
type Crash struct {
	Amount    Fraction      `json:"amount"`
	Window    time.Duration `json:"window"`
	StartedAt time.Time     `json:"started_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// DrainEvent is a logged depleting activity with its impact resolved at log time.
type DrainEvent struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"` // as entered by the user
	Key        string           `json:"key"`  // normalised catalog key, used for repeat counting
	Minutes    float64          `json:"minutes"`
	Category   ActivityCategory `json:"category"`
	Mechanism  string           `json:"mechanism,omitempty"`
	Resolution Resolution       `json:"resolution"`
	BaseRate   Fraction         `json:"base_rate"`  // per 30 minutes
	Multiplier float64          `json:"multiplier"` // repetition amplification
	Magnitude  Fraction         `json:"magnitude"`  // includes the dysregulation multiplier
	Crash      Crash            `json:"crash"`
	LoggedAt   time.Time        `json:"logged_at"`
}

// RechargeEvent is a logged restorative activity.
type RechargeEvent struct {
	ID           string     `json:"id"`
	Type         string     `json:"type,omitempty"`
	Category     string     `json:"category,omitempty"`
	Intensity    string     `json:"intensity,omitempty"`
	Boost        Fraction   `json:"boost"` // includes the dysregulation multiplier
	Mechanism    string     `json:"mechanism,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Resolution   Resolution `json:"resolution"`
	// Error is non-empty when the activity could not be resolved; Boost is then 0.
	Error    string    `json:"error,omitempty"`
	LoggedAt time.Time `json:"logged_at"`
}
