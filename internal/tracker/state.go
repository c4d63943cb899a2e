package tracker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"PoolKeeper/internal/model"
)

// Record is everything the host keeps between restarts: today's pool and the
// small amount of carry-over needed to start tomorrow.
type Record struct {
	Pool              *model.PoolState        `json:"pool,omitempty"`
	CompletedHabits   []string                `json:"completed_habits"`
	Streak            int                     `json:"streak"`
	YesterdayComplete bool                    `json:"yesterday_complete"`
	Tier              model.DysregulationTier `json:"dysregulation_tier"`
	CapacityExpansion model.Fraction          `json:"capacity_expansion"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// LoadState reads the record from a JSON file. Returns a zero record if the file doesn't exist.
func LoadState(filePath string) (*Record, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Record{}, nil
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveState writes the record to a JSON file, creating the directory if needed.
func SaveState(filePath string, rec *Record) error {
	rec.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
