// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SimulationConfig holds the tuning knobs of a session
type SimulationConfig struct {
	// Iterations is the number of relaxation passes per tick
	Iterations int `json:"iterations"`
	// MaxDeltaTime is the longest tick, in seconds, that is simulated.
	// Longer ticks are treated as zero.
	MaxDeltaTime    float64 `json:"maxDeltaTime"`
	TrailCapacity   int     `json:"trailCapacity"`
	HistoryCapacity int     `json:"historyCapacity"`
	// GrabRadius is how close to the tail a drag must start
	GrabRadius float64 `json:"grabRadius"`
}

// DefaultSimulationConfig returns the stock tuning: 15 passes, a 50ms
// tick cap, ten seconds of trail at 60Hz and 127 remembered trails.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Iterations:      15,
		MaxDeltaTime:    0.05,
		TrailCapacity:   600,
		HistoryCapacity: 127,
		GrabRadius:      15,
	}
}

// Validate checks that every value is usable
func (c SimulationConfig) Validate() error {
	if c.Iterations < 1 || c.Iterations > 1000 {
		return &ValidationError{Field: "Iterations", Value: c.Iterations, Message: "must be between 1 and 1000"}
	}
	if c.MaxDeltaTime <= 0 || c.MaxDeltaTime > 1 {
		return &ValidationError{Field: "MaxDeltaTime", Value: c.MaxDeltaTime, Message: "must be in (0, 1] seconds"}
	}
	if c.TrailCapacity < 1 {
		return &ValidationError{Field: "TrailCapacity", Value: c.TrailCapacity, Message: "must be positive"}
	}
	if c.HistoryCapacity < 1 {
		return &ValidationError{Field: "HistoryCapacity", Value: c.HistoryCapacity, Message: "must be positive"}
	}
	if c.GrabRadius <= 0 {
		return &ValidationError{Field: "GrabRadius", Value: c.GrabRadius, Message: "must be positive"}
	}
	return nil
}

// ValidationError describes a single invalid configuration value
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadSimulationConfig loads tuning from a JSON file. Fields missing
// from the file keep their default values.
func LoadSimulationConfig(path string) (SimulationConfig, error) {
	cfg := DefaultSimulationConfig()

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, cfg.Validate()
}

// SaveSimulationConfig writes tuning to a JSON file
func SaveSimulationConfig(cfg SimulationConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
