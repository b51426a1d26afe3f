package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	if cfg.MinSuperlayers == nil || *cfg.MinSuperlayers != 3 {
		t.Errorf("Expected MinSuperlayers 3, got %v", cfg.MinSuperlayers)
	}
	if cfg.BestWeightThreshold == nil || *cfg.BestWeightThreshold != 0.5 {
		t.Errorf("Expected BestWeightThreshold 0.5, got %v", cfg.BestWeightThreshold)
	}

	// Explicit defaults and the Get* fallbacks must agree.
	empty := EmptyTuningConfig()
	if cfg.GetMinSuperlayers() != empty.GetMinSuperlayers() {
		t.Errorf("GetMinSuperlayers mismatch: %d vs %d", cfg.GetMinSuperlayers(), empty.GetMinSuperlayers())
	}
	if cfg.GetWireGap() != empty.GetWireGap() {
		t.Errorf("GetWireGap mismatch: %d vs %d", cfg.GetWireGap(), empty.GetWireGap())
	}
	if cfg.GetMaxWireDistance() != empty.GetMaxWireDistance() {
		t.Errorf("GetMaxWireDistance mismatch: %f vs %f", cfg.GetMaxWireDistance(), empty.GetMaxWireDistance())
	}
	if cfg.GetAmbiguityWindow() != empty.GetAmbiguityWindow() {
		t.Errorf("GetAmbiguityWindow mismatch: %f vs %f", cfg.GetAmbiguityWindow(), empty.GetAmbiguityWindow())
	}
	if cfg.GetMaxTracks() != empty.GetMaxTracks() {
		t.Errorf("GetMaxTracks mismatch: %d vs %d", cfg.GetMaxTracks(), empty.GetMaxTracks())
	}
	if cfg.GetBestWeightThreshold() != empty.GetBestWeightThreshold() {
		t.Errorf("GetBestWeightThreshold mismatch: %f vs %f", cfg.GetBestWeightThreshold(), empty.GetBestWeightThreshold())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadTuningConfig_JSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tuning.json")

	testJSON := `{
  "min_superlayers": 4,
  "wire_gap": 1,
  "max_wire_distance": 12.5,
  "sectors": [1, 3]
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetMinSuperlayers() != 4 {
		t.Errorf("GetMinSuperlayers() = %d, want 4", cfg.GetMinSuperlayers())
	}
	if cfg.GetWireGap() != 1 {
		t.Errorf("GetWireGap() = %d, want 1", cfg.GetWireGap())
	}
	if cfg.GetMaxWireDistance() != 12.5 {
		t.Errorf("GetMaxWireDistance() = %f, want 12.5", cfg.GetMaxWireDistance())
	}
	// Omitted fields keep their defaults.
	if cfg.GetMaxTracks() != 256 {
		t.Errorf("GetMaxTracks() = %d, want 256", cfg.GetMaxTracks())
	}
	got := cfg.GetSectors()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("GetSectors() = %v, want [1 3]", got)
	}
}

func TestLoadTuningConfig_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tuning.yaml")

	testYAML := "best_weight_threshold: 0.8\nambiguity_window: 1.5\nlog_level: DEBUG\n"
	if err := os.WriteFile(configPath, []byte(testYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GetBestWeightThreshold() != 0.8 {
		t.Errorf("GetBestWeightThreshold() = %f, want 0.8", cfg.GetBestWeightThreshold())
	}
	if cfg.GetAmbiguityWindow() != 1.5 {
		t.Errorf("GetAmbiguityWindow() = %f, want 1.5", cfg.GetAmbiguityWindow())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("GetLogLevel() = %q, want debug", cfg.GetLogLevel())
	}
	if len(cfg.GetSectors()) != 6 {
		t.Errorf("GetSectors() = %v, want all six", cfg.GetSectors())
	}
}

func TestLoadTuningConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad extension", "tuning.txt", "{}", "extension"},
		{"bad json", "bad.json", "{not json", "failed to parse"},
		{"min superlayers too high", "high.json", `{"min_superlayers": 7}`, "min_superlayers"},
		{"negative wire gap", "gap.json", `{"wire_gap": -1}`, "wire_gap"},
		{"zero distance", "dist.json", `{"max_wire_distance": 0}`, "max_wire_distance"},
		{"bad sector", "sector.yaml", "sectors: [0]\n", "sectors"},
		{"bad log level", "level.yml", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := LoadTuningConfig(path)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadTuningConfig_MissingFile(t *testing.T) {
	_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
