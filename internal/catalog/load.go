package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads catalog overrides from a YAML file on top of the defaults.
// Map entries in the file are merged into the default tables, legacy recharge
// levels one intensity at a time; a patterns list in the file replaces the
// default list. A missing file yields the defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if len(data) > 0 {
		// yaml replaces nested maps whole, so legacy levels are merged by hand
		legacy := c.Legacy
		c.Legacy = nil
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		for cat, levels := range c.Legacy {
			if legacy[cat] == nil {
				legacy[cat] = make(map[string]float64, len(levels))
			}
			for intensity, boost := range levels {
				legacy[cat][intensity] = boost
			}
		}
		c.Legacy = legacy
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return c, nil
}
