package dc

import "github.com/clas12-ai/dctrack/internal/config"

// SectorConfig holds the clustering, association and selection parameters
// of a Sector.
type SectorConfig struct {
	MinSuperlayers      int     // Filled slots needed for a valid track
	WireGap             int     // Largest wire gap inside one cluster
	MaxWireDistance     float64 // Association gate between cluster centroid and track mean (wires)
	AmbiguityWindow     float64 // Clusters this close to the nearest spawn extra candidates (wires)
	MaxTracks           int     // Cap on track candidates per sector
	BestWeightThreshold float64 // Weight a valid track needs to count as best-class
}

// DefaultSectorConfig returns the built-in defaults.
func DefaultSectorConfig() SectorConfig {
	return SectorConfigFromTuning(config.EmptyTuningConfig())
}

// SectorConfigFromTuning builds a SectorConfig from a loaded TuningConfig.
func SectorConfigFromTuning(cfg *config.TuningConfig) SectorConfig {
	return SectorConfig{
		MinSuperlayers:      cfg.GetMinSuperlayers(),
		WireGap:             cfg.GetWireGap(),
		MaxWireDistance:     cfg.GetMaxWireDistance(),
		AmbiguityWindow:     cfg.GetAmbiguityWindow(),
		MaxTracks:           cfg.GetMaxTracks(),
		BestWeightThreshold: cfg.GetBestWeightThreshold(),
	}
}
