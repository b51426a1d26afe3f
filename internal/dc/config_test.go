package dc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clas12-ai/dctrack/internal/config"
)

func TestSectorConfigFromTuning(t *testing.T) {
	assert.Equal(t, SectorConfig{
		MinSuperlayers:      3,
		WireGap:             2,
		MaxWireDistance:     24,
		AmbiguityWindow:     0.5,
		MaxTracks:           256,
		BestWeightThreshold: 0.5,
	}, DefaultSectorConfig())

	minSL, maxTracks := 5, 16
	gate := 8.0
	cfg := config.EmptyTuningConfig()
	cfg.MinSuperlayers = &minSL
	cfg.MaxTracks = &maxTracks
	cfg.MaxWireDistance = &gate

	got := SectorConfigFromTuning(cfg)
	assert.Equal(t, 5, got.MinSuperlayers)
	assert.Equal(t, 16, got.MaxTracks)
	assert.Equal(t, 8.0, got.MaxWireDistance)
	assert.Equal(t, 2, got.WireGap, "unset fields fall back to defaults")
	assert.Equal(t, 0.5, got.AmbiguityWindow)
}
