package dc

import (
	"fmt"
	"math"
)

// FeatureStride is the number of features per track: centroid X and Y for
// each superlayer followed by the track weight.
const FeatureStride = 2*NumSuperlayers + 1

// FeatureNames returns the names of one track's features in output order.
func FeatureNames() []string {
	names := make([]string, 0, FeatureStride)
	for sl := 1; sl <= NumSuperlayers; sl++ {
		names = append(names, fmt.Sprintf("sl%d_x", sl), fmt.Sprintf("sl%d_y", sl))
	}
	return append(names, "weight")
}

// Features returns the features of every track concatenated in track
// order, FeatureStride values per track. Empty superlayer slots contribute
// zeros. The result is empty when the sector has no tracks.
func (s *Sector) Features() []float64 {
	out := make([]float64, 0, len(s.tracks)*FeatureStride)
	for i := range s.tracks {
		out = s.appendFeatures(out, &s.tracks[i])
	}
	return out
}

// TrackFeatures returns the FeatureStride features of track i.
func (s *Sector) TrackFeatures(i int) ([]float64, error) {
	if i < 0 || i >= len(s.tracks) {
		return nil, indexError("track", i, len(s.tracks))
	}
	return s.appendFeatures(make([]float64, 0, FeatureStride), &s.tracks[i]), nil
}

func (s *Sector) appendFeatures(out []float64, t *Track) []float64 {
	for sl := 0; sl < NumSuperlayers; sl++ {
		ci := t.clusters[sl]
		if ci == Unassigned || ci >= len(s.clusters[sl]) {
			out = append(out, 0, 0)
			continue
		}
		c := &s.clusters[sl][ci]
		out = append(out, finiteOrZero(c.CenterX()), finiteOrZero(c.CenterY()))
	}
	return append(out, t.Weight)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
