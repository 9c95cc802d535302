// Package config loads tuning parameters for the trajectory simulator.
//
// Parameters ship as a JSON file with every field optional: fields
// omitted from the file fall back to the canonical defaults via the
// Get* accessors, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig represents the root configuration for simulation tuning
// parameters. All fields are pointers so that an omitted field is
// distinguishable from an explicit zero.
type TuningConfig struct {
	// Base movement
	BaseAccelMax *float64 `json:"base_accel_max,omitempty"` // uniform accel drawn from [-v, v] per axis (m/s²)
	SpeedDecay   *float64 `json:"speed_decay,omitempty"`    // velocity retained per tick after drag
	MaxSpeedMps  *float64 `json:"max_speed_mps,omitempty"`  // hard speed cap (m/s)

	// Attraction to the agent's home position
	AttractionMax *float64 `json:"attraction_max,omitempty"` // peak restoring accel at full pitch offset (m/s²)

	// Sprint state machine
	SprintProbability *float64 `json:"sprint_probability,omitempty"` // per-tick chance of starting a sprint while idle
	SprintMinTicks    *int     `json:"sprint_min_ticks,omitempty"`   // inclusive lower bound of sprint duration
	SprintMaxTicks    *int     `json:"sprint_max_ticks,omitempty"`   // inclusive upper bound of sprint duration
	SprintBoost       *float64 `json:"sprint_boost,omitempty"`       // boost accel along current heading while sprinting (m/s²)
	MinBoostSpeedMps  *float64 `json:"min_boost_speed_mps,omitempty"`

	// Boundary handling
	BounceDamping *float64 `json:"bounce_damping,omitempty"` // fraction of speed kept (and reversed) on a wall hit

	// Run shape
	SampleCount *int `json:"sample_count,omitempty"` // ticks per agent per run
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from a file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.SprintProbability != nil {
		if *c.SprintProbability < 0 || *c.SprintProbability > 1 {
			return fmt.Errorf("sprint_probability must be between 0 and 1, got %f", *c.SprintProbability)
		}
	}
	if c.SpeedDecay != nil {
		if *c.SpeedDecay < 0 || *c.SpeedDecay > 1 {
			return fmt.Errorf("speed_decay must be between 0 and 1, got %f", *c.SpeedDecay)
		}
	}
	if c.BounceDamping != nil {
		if *c.BounceDamping < 0 || *c.BounceDamping > 1 {
			return fmt.Errorf("bounce_damping must be between 0 and 1, got %f", *c.BounceDamping)
		}
	}
	if c.MaxSpeedMps != nil && *c.MaxSpeedMps <= 0 {
		return fmt.Errorf("max_speed_mps must be positive, got %f", *c.MaxSpeedMps)
	}
	if c.SampleCount != nil && *c.SampleCount <= 0 {
		return fmt.Errorf("sample_count must be positive, got %d", *c.SampleCount)
	}
	if c.SprintMinTicks != nil && c.SprintMaxTicks != nil {
		if *c.SprintMinTicks > *c.SprintMaxTicks {
			return fmt.Errorf("sprint_min_ticks (%d) must not exceed sprint_max_ticks (%d)",
				*c.SprintMinTicks, *c.SprintMaxTicks)
		}
	}
	if c.SprintMinTicks != nil && *c.SprintMinTicks < 1 {
		return fmt.Errorf("sprint_min_ticks must be at least 1, got %d", *c.SprintMinTicks)
	}
	return nil
}

// GetBaseAccelMax returns the base_accel_max value or the default.
func (c *TuningConfig) GetBaseAccelMax() float64 {
	if c.BaseAccelMax == nil {
		return 0.15 // default
	}
	return *c.BaseAccelMax
}

// GetSpeedDecay returns the speed_decay value or the default.
func (c *TuningConfig) GetSpeedDecay() float64 {
	if c.SpeedDecay == nil {
		return 0.90 // default
	}
	return *c.SpeedDecay
}

// GetMaxSpeedMps returns the max_speed_mps value or the default.
func (c *TuningConfig) GetMaxSpeedMps() float64 {
	if c.MaxSpeedMps == nil {
		return 7.0 // default
	}
	return *c.MaxSpeedMps
}

// GetAttractionMax returns the attraction_max value or the default.
func (c *TuningConfig) GetAttractionMax() float64 {
	if c.AttractionMax == nil {
		return 0.2 // default
	}
	return *c.AttractionMax
}

// GetSprintProbability returns the sprint_probability value or the default.
func (c *TuningConfig) GetSprintProbability() float64 {
	if c.SprintProbability == nil {
		return 0.02 // default
	}
	return *c.SprintProbability
}

// GetSprintMinTicks returns the sprint_min_ticks value or the default.
func (c *TuningConfig) GetSprintMinTicks() int {
	if c.SprintMinTicks == nil {
		return 3 // default
	}
	return *c.SprintMinTicks
}

// GetSprintMaxTicks returns the sprint_max_ticks value or the default.
func (c *TuningConfig) GetSprintMaxTicks() int {
	if c.SprintMaxTicks == nil {
		return 7 // default
	}
	return *c.SprintMaxTicks
}

// GetSprintBoost returns the sprint_boost value or the default.
func (c *TuningConfig) GetSprintBoost() float64 {
	if c.SprintBoost == nil {
		return 1.0 // default
	}
	return *c.SprintBoost
}

// GetMinBoostSpeedMps returns the min_boost_speed_mps value or the default.
func (c *TuningConfig) GetMinBoostSpeedMps() float64 {
	if c.MinBoostSpeedMps == nil {
		return 0.1 // default
	}
	return *c.MinBoostSpeedMps
}

// GetBounceDamping returns the bounce_damping value or the default.
func (c *TuningConfig) GetBounceDamping() float64 {
	if c.BounceDamping == nil {
		return 0.5 // default
	}
	return *c.BounceDamping
}

// GetSampleCount returns the sample_count value or the default
// (2700 samples, 45 minutes at 1 Hz).
func (c *TuningConfig) GetSampleCount() int {
	if c.SampleCount == nil {
		return 2700 // default
	}
	return *c.SampleCount
}
