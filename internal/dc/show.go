package dc

import (
	"fmt"
	"io"
)

// Show writes every cluster and track of the sector to w.
func (s *Sector) Show(w io.Writer) {
	fmt.Fprintf(w, "sector %d: %d clusters, %d tracks\n", s.number, s.ClusterCount(), len(s.tracks))
	for sl := range s.clusters {
		for i := range s.clusters[sl] {
			fmt.Fprintf(w, "[%d:%d] %s", sl, i, s.clusters[sl][i].String())
		}
	}
	for i := range s.tracks {
		fmt.Fprintf(w, "%4d %s\n", i, s.tracks[i].String())
	}
}

// ShowBest writes the best track, or a note that there is none.
func (s *Sector) ShowBest(w io.Writer) {
	i := s.bestTrack()
	if i == NoTrack {
		fmt.Fprintf(w, "sector %d: no valid track\n", s.number)
		return
	}
	fmt.Fprintf(w, "sector %d best %d/%d %s\n", s.number, i, len(s.tracks), s.tracks[i].String())
	if ti, ok := s.TrackInfo(i); ok {
		fmt.Fprintf(w, "  %s\n", ti)
	}
}

// ShowTrackInfo writes every loaded track annotation.
func (s *Sector) ShowTrackInfo(w io.Writer) {
	for _, ti := range s.trackInfo {
		fmt.Fprintln(w, ti)
	}
}
