package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TuningConfig is the root configuration for track-building parameters.
// Every field is optional; the Get* methods supply defaults for fields left
// unset so partial files are safe.
type TuningConfig struct {
	// Track selection
	MinSuperlayers      *int     `json:"min_superlayers,omitempty" yaml:"min_superlayers,omitempty"`
	BestWeightThreshold *float64 `json:"best_weight_threshold,omitempty" yaml:"best_weight_threshold,omitempty"`

	// Clustering and association
	WireGap         *int     `json:"wire_gap,omitempty" yaml:"wire_gap,omitempty"`
	MaxWireDistance *float64 `json:"max_wire_distance,omitempty" yaml:"max_wire_distance,omitempty"`
	AmbiguityWindow *float64 `json:"ambiguity_window,omitempty" yaml:"ambiguity_window,omitempty"`
	MaxTracks       *int     `json:"max_tracks,omitempty" yaml:"max_tracks,omitempty"`

	// Pipeline
	Sectors  []int  `json:"sectors,omitempty" yaml:"sectors,omitempty"`
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every tunable set
// explicitly to its default value.
func DefaultTuningConfig() *TuningConfig {
	return &TuningConfig{
		MinSuperlayers:      ptrInt(3),
		BestWeightThreshold: ptrFloat64(0.5),
		WireGap:             ptrInt(2),
		MaxWireDistance:     ptrFloat64(24.0),
		AmbiguityWindow:     ptrFloat64(0.5),
		MaxTracks:           ptrInt(256),
	}
}

// LoadTuningConfig loads a TuningConfig from a .json, .yaml or .yml file.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filepath.Base(cleanPath), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MinSuperlayers != nil {
		if *c.MinSuperlayers < 1 || *c.MinSuperlayers > 6 {
			return fmt.Errorf("min_superlayers must be between 1 and 6, got %d", *c.MinSuperlayers)
		}
	}
	if c.BestWeightThreshold != nil {
		if *c.BestWeightThreshold < 0 {
			return fmt.Errorf("best_weight_threshold must be non-negative, got %f", *c.BestWeightThreshold)
		}
	}
	if c.WireGap != nil && *c.WireGap < 0 {
		return fmt.Errorf("wire_gap must be non-negative, got %d", *c.WireGap)
	}
	if c.MaxWireDistance != nil && *c.MaxWireDistance <= 0 {
		return fmt.Errorf("max_wire_distance must be positive, got %f", *c.MaxWireDistance)
	}
	if c.AmbiguityWindow != nil && *c.AmbiguityWindow < 0 {
		return fmt.Errorf("ambiguity_window must be non-negative, got %f", *c.AmbiguityWindow)
	}
	if c.MaxTracks != nil && *c.MaxTracks < 1 {
		return fmt.Errorf("max_tracks must be at least 1, got %d", *c.MaxTracks)
	}
	for _, s := range c.Sectors {
		if s < 1 || s > 6 {
			return fmt.Errorf("sectors must be in 1..6, got %d", s)
		}
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// GetMinSuperlayers returns the min_superlayers value or the default.
func (c *TuningConfig) GetMinSuperlayers() int {
	if c.MinSuperlayers == nil {
		return 3
	}
	return *c.MinSuperlayers
}

// GetBestWeightThreshold returns the best_weight_threshold value or the default.
func (c *TuningConfig) GetBestWeightThreshold() float64 {
	if c.BestWeightThreshold == nil {
		return 0.5
	}
	return *c.BestWeightThreshold
}

// GetWireGap returns the wire_gap value or the default.
func (c *TuningConfig) GetWireGap() int {
	if c.WireGap == nil {
		return 2
	}
	return *c.WireGap
}

// GetMaxWireDistance returns the max_wire_distance value or the default.
func (c *TuningConfig) GetMaxWireDistance() float64 {
	if c.MaxWireDistance == nil {
		return 24.0
	}
	return *c.MaxWireDistance
}

// GetAmbiguityWindow returns the ambiguity_window value or the default.
func (c *TuningConfig) GetAmbiguityWindow() float64 {
	if c.AmbiguityWindow == nil {
		return 0.5
	}
	return *c.AmbiguityWindow
}

// GetMaxTracks returns the max_tracks value or the default.
func (c *TuningConfig) GetMaxTracks() int {
	if c.MaxTracks == nil {
		return 256
	}
	return *c.MaxTracks
}

// GetSectors returns the sectors to process, all six by default.
func (c *TuningConfig) GetSectors() []int {
	if len(c.Sectors) == 0 {
		return []int{1, 2, 3, 4, 5, 6}
	}
	return append([]int(nil), c.Sectors...)
}

// GetLogLevel returns the log level, "info" by default.
func (c *TuningConfig) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return strings.ToLower(c.LogLevel)
}
