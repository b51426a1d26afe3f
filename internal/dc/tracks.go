package dc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/clas12-ai/dctrack/internal/monitoring"
)

// MakeTracks assembles track candidates from the current clusters.
//
// Superlayers are visited in ascending order. Each existing candidate is
// extended by the cluster whose centroid is nearest its running mean,
// provided it lies within MaxWireDistance. Other clusters within
// AmbiguityWindow of that nearest distance spawn copies of the candidate
// extended by them instead. Clusters not taken by any candidate seed new
// candidates. Candidates contained in another candidate are dropped, and of
// identical candidates the first is kept.
func (s *Sector) MakeTracks() {
	s.tracks = s.tracks[:0]
	for sl := range s.clusters {
		for i := range s.clusters[sl] {
			s.clusters[sl][i].TrackID = Unassigned
		}
	}

	var cands []Track
	capped := false
	for sl := 0; sl < NumSuperlayers; sl++ {
		bucket := s.clusters[sl]
		if len(bucket) == 0 {
			continue
		}
		centers := make([]float64, len(bucket))
		for i := range bucket {
			centers[i] = bucket[i].CenterX()
		}
		used := make([]bool, len(bucket))

		n := len(cands)
		for ti := 0; ti < n; ti++ {
			ref := cands[ti].RunningMean()
			nearest, nearestDist := -1, math.Inf(1)
			for ci, cx := range centers {
				if math.IsNaN(cx) {
					continue
				}
				d := math.Abs(cx - ref)
				if d <= s.cfg.MaxWireDistance && d < nearestDist {
					nearest, nearestDist = ci, d
				}
			}
			if nearest < 0 {
				continue
			}

			base := cands[ti]
			for ci, cx := range centers {
				if ci == nearest || math.IsNaN(cx) {
					continue
				}
				d := math.Abs(cx - ref)
				if d > s.cfg.MaxWireDistance || d-nearestDist > s.cfg.AmbiguityWindow {
					continue
				}
				if len(cands) >= s.cfg.MaxTracks {
					capped = true
					break
				}
				alt := base
				alt.assign(sl, ci, cx)
				cands = append(cands, alt)
				used[ci] = true
			}
			cands[ti].assign(sl, nearest, centers[nearest])
			used[nearest] = true
		}

		for ci := range bucket {
			if used[ci] || math.IsNaN(centers[ci]) {
				continue
			}
			if len(cands) >= s.cfg.MaxTracks {
				capped = true
				break
			}
			t := NewTrack(s.cfg.MinSuperlayers)
			t.assign(sl, ci, centers[ci])
			cands = append(cands, t)
		}
	}
	if capped {
		monitoring.Logf("[Sector] sector=%d track candidates capped at %d", s.number, s.cfg.MaxTracks)
	}

	s.tracks = append(s.tracks, suppressContained(cands)...)

	for ti := range s.tracks {
		for sl, ci := range s.tracks[ti].clusters {
			if ci == Unassigned || ci >= len(s.clusters[sl]) {
				continue
			}
			if s.clusters[sl][ci].TrackID == Unassigned {
				s.clusters[sl][ci].TrackID = ti
			}
		}
	}
}

// suppressContained drops candidates contained in another candidate. Of a
// set of identical candidates only the first survives.
func suppressContained(cands []Track) []Track {
	out := make([]Track, 0, len(cands))
	for i := range cands {
		dropped := false
		for j := range cands {
			if i == j || !cands[j].Contains(&cands[i]) {
				continue
			}
			if cands[i].Contains(&cands[j]) && j > i {
				continue
			}
			dropped = true
			break
		}
		if !dropped {
			out = append(out, cands[i])
		}
	}
	return out
}

// Analyze scores every track and sets its status.
//
// The weight is the filled-slot fraction divided by one plus the RMS
// residual (in wires) of a straight-line fit of slot mean against
// superlayer. Tracks with fewer than three slots have no residual.
func (s *Sector) Analyze() {
	for i := range s.tracks {
		t := &s.tracks[i]
		t.Weight = trackWeight(t)
		if t.IsValid() {
			t.Status = StatusValid
		} else {
			t.Status = StatusInvalid
		}
	}
}

func trackWeight(t *Track) float64 {
	xs := make([]float64, 0, NumSuperlayers)
	ys := make([]float64, 0, NumSuperlayers)
	for sl, c := range t.clusters {
		if c != Unassigned {
			xs = append(xs, float64(sl))
			ys = append(ys, t.means[sl])
		}
	}
	if len(xs) == 0 {
		return 0
	}
	rms := 0.0
	if len(xs) >= 3 {
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		res := make([]float64, len(xs))
		for i := range xs {
			res[i] = ys[i] - (alpha + beta*xs[i])
		}
		rms = math.Sqrt(floats.Dot(res, res) / float64(len(res)))
	}
	return float64(len(xs)) / NumSuperlayers / (1 + rms)
}

// SetWeights replaces the track weights with externally computed scores,
// one per track in track order.
func (s *Sector) SetWeights(weights []float64) error {
	if len(weights) != len(s.tracks) {
		return ErrWeightCount
	}
	for i := range s.tracks {
		s.tracks[i].Weight = weights[i]
	}
	return nil
}

// bestTrack returns the index of the valid track with the largest weight,
// the lowest index on ties, or NoTrack.
func (s *Sector) bestTrack() int {
	best := NoTrack
	for i := range s.tracks {
		t := &s.tracks[i]
		if !t.IsValid() {
			continue
		}
		if best == NoTrack || t.Weight > s.tracks[best].Weight {
			best = i
		}
	}
	return best
}

// BestTrack returns the index of the best valid track.
func (s *Sector) BestTrack() (int, bool) {
	i := s.bestTrack()
	return i, i != NoTrack
}

// TrackCount returns the number of tracks.
func (s *Sector) TrackCount() int { return len(s.tracks) }

// BestTrackCount returns the number of valid tracks in the best class:
// those whose weight reaches BestWeightThreshold or equals the best weight.
// It is positive exactly when BestTrack reports a track.
func (s *Sector) BestTrackCount() int {
	best := s.bestTrack()
	if best == NoTrack {
		return 0
	}
	bestWeight := s.tracks[best].Weight
	n := 0
	for i := range s.tracks {
		t := &s.tracks[i]
		if t.IsValid() && (t.Weight >= s.cfg.BestWeightThreshold || t.Weight == bestWeight) {
			n++
		}
	}
	return n
}

// Track returns a copy of track i.
func (s *Sector) Track(i int) (Track, error) {
	if i < 0 || i >= len(s.tracks) {
		return Track{}, indexError("track", i, len(s.tracks))
	}
	return s.tracks[i], nil
}

// Tracks returns a copy of all tracks.
func (s *Sector) Tracks() []Track {
	return append([]Track(nil), s.tracks...)
}

// TrackID returns the reconstruction track id shared by every cluster of
// track i. It reports false when the track is out of range, a cluster has
// no reconstruction id, or the clusters disagree.
func (s *Sector) TrackID(i int) (int, bool) {
	if i < 0 || i >= len(s.tracks) {
		return Unassigned, false
	}
	id := Unassigned
	for sl, ci := range s.tracks[i].clusters {
		if ci == Unassigned {
			continue
		}
		if ci >= len(s.clusters[sl]) {
			return Unassigned, false
		}
		reco := s.clusters[sl][ci].RecoTrackID
		if reco == Unassigned || (id != Unassigned && reco != id) {
			return Unassigned, false
		}
		id = reco
	}
	return id, id != Unassigned
}

// TrackInfo joins track i with its reconstruction annotation.
func (s *Sector) TrackInfo(i int) (TrackInfo, bool) {
	id, ok := s.TrackID(i)
	if !ok {
		return TrackInfo{}, false
	}
	return s.LookupTrackInfo(id)
}
