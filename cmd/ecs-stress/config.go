package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Scenario describes the synthetic population a stress run drives. Zero or
// missing fields fall back to the defaults.
type Scenario struct {
	Entities      int     `toml:"entities"`
	Systems       int     `toml:"systems"`
	Components    int     `toml:"components"`
	ChurnPerFrame int     `toml:"churn_per_frame"`
	ResubmitRate  float64 `toml:"resubmit_rate"`
	Seed          int64   `toml:"seed"`
}

func defaultScenario() Scenario {
	return Scenario{
		Entities:      10000,
		Systems:       50,
		Components:    32,
		ChurnPerFrame: 100,
		ResubmitRate:  0.01,
		Seed:          1,
	}
}

func loadScenario(path string) (Scenario, error) {
	s := defaultScenario()
	if path == "" {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if s.Entities <= 0 || s.Systems <= 0 || s.Components <= 0 {
		return s, fmt.Errorf("scenario %s: entities, systems and components must be positive", path)
	}
	return s, nil
}
