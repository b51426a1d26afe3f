package dc

// TrackResult is the per-track summary a sector hands downstream after
// scoring: slot assignment, selection outcome, reconstruction join and
// feature vector.
type TrackResult struct {
	EventID     int64
	Sector      int
	TrackIndex  int
	Clusters    []int
	FilledSlots int
	Valid       bool
	Negative    bool
	IsBest      bool
	Weight      float64
	RecoTrackID int        // Unassigned when the join fails
	Info        *TrackInfo // nil when no annotation matches
	Features    []float64
}

// Results summarizes every track of the sector for one event.
func (s *Sector) Results(eventID int64) []TrackResult {
	best := s.bestTrack()
	out := make([]TrackResult, 0, len(s.tracks))
	for i := range s.tracks {
		t := &s.tracks[i]
		feats, _ := s.TrackFeatures(i)
		r := TrackResult{
			EventID:     eventID,
			Sector:      s.number,
			TrackIndex:  i,
			Clusters:    t.Clusters(),
			FilledSlots: t.FilledCount(),
			Valid:       t.IsValid(),
			Negative:    t.IsNegative(),
			IsBest:      i == best,
			Weight:      t.Weight,
			RecoTrackID: Unassigned,
			Features:    feats,
		}
		if id, ok := s.TrackID(i); ok {
			r.RecoTrackID = id
			if ti, ok := s.LookupTrackInfo(id); ok {
				r.Info = &ti
			}
		}
		out = append(out, r)
	}
	return out
}
