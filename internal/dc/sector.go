package dc

import (
	"fmt"
	"sort"

	"github.com/clas12-ai/dctrack/internal/bank"
)

// NoTrack is returned by best-track selection when no valid track exists.
const NoTrack = -1

// Sector owns the clusters, tracks, wire hits and track annotations of one
// detector sector for one event.
type Sector struct {
	cfg    SectorConfig
	number int
	loaded bool

	clusters  [NumSuperlayers][]Cluster
	tracks    []Track
	wireHits  [NumSuperlayers][]int
	trackInfo []TrackInfo
}

// NewSector creates an empty sector.
func NewSector(cfg SectorConfig) *Sector {
	return &Sector{cfg: cfg}
}

// Config returns the sector's configuration.
func (s *Sector) Config() SectorConfig { return s.cfg }

// Number returns the sector number given to Read, 0 before Read.
func (s *Sector) Number() int { return s.number }

// rawHit is one hit row of the current sector awaiting clustering.
type rawHit struct {
	layer, wire, value int
	clusterID, trkID   int
}

// Read ingests the rows of a hit bank belonging to sector. Each hit is
// appended to its superlayer's wire-hit sequence and clusters are formed per
// superlayer: rows with a positive cluster id are grouped by that id, the
// rest are split at wire gaps wider than WireGap.
//
// Read must be preceded by Reset when the sector already holds an event.
// A row with an out-of-range superlayer, layer or wire aborts the read with
// ErrInvalidIndex; the sector then needs a Reset.
func (s *Sector) Read(hits bank.Bank, sector int) error {
	if s.loaded {
		return ErrNotReset
	}
	s.loaded = true
	s.number = sector

	hasTDC := hits.Has(bank.ColTDC)
	var bySuperlayer [NumSuperlayers][]rawHit

	for row := 0; row < hits.Rows(); row++ {
		if hits.Int(bank.ColSector, row) != sector {
			continue
		}
		sl := hits.Int(bank.ColSuperlayer, row)
		if sl < 0 || sl >= NumSuperlayers {
			return fmt.Errorf("%s row %d: %w", hits.Name(), row, indexError("superlayer", sl, NumSuperlayers))
		}
		layer := hits.Int(bank.ColLayer, row)
		wire := hits.Int(bank.ColWire, row)
		idx, err := LinearIndex(layer, wire)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", hits.Name(), row, err)
		}
		value := 1
		if hasTDC {
			if v := hits.Int(bank.ColTDC, row); v > 0 {
				value = v
			}
		}
		s.wireHits[sl] = append(s.wireHits[sl], idx)
		bySuperlayer[sl] = append(bySuperlayer[sl], rawHit{
			layer:     layer,
			wire:      wire,
			value:     value,
			clusterID: hits.Int(bank.ColClusterID, row),
			trkID:     hits.Int(bank.ColTrackID, row),
		})
	}

	for sl := range bySuperlayer {
		s.formClusters(sl, bySuperlayer[sl])
	}
	return nil
}

// formClusters turns one superlayer's hits into clusters.
func (s *Sector) formClusters(sl int, hits []rawHit) {
	if len(hits) == 0 {
		return
	}

	var loose []rawHit
	var ids []int
	tagged := map[int][]rawHit{}
	for _, h := range hits {
		if h.clusterID > 0 {
			if _, ok := tagged[h.clusterID]; !ok {
				ids = append(ids, h.clusterID)
			}
			tagged[h.clusterID] = append(tagged[h.clusterID], h)
			continue
		}
		loose = append(loose, h)
	}
	for _, id := range ids {
		s.clusters[sl] = append(s.clusters[sl], s.buildCluster(sl, tagged[id]))
	}

	if len(loose) == 0 {
		return
	}
	sort.SliceStable(loose, func(i, j int) bool { return loose[i].wire < loose[j].wire })
	start := 0
	for i := 1; i <= len(loose); i++ {
		if i == len(loose) || loose[i].wire-loose[i-1].wire > s.cfg.WireGap {
			s.clusters[sl] = append(s.clusters[sl], s.buildCluster(sl, loose[start:i]))
			start = i
		}
	}
}

func (s *Sector) buildCluster(sl int, hits []rawHit) Cluster {
	c := NewCluster(sl, s.number)
	votes := map[int]int{}
	for _, h := range hits {
		// Indices were validated in Read.
		_ = c.Wires.Add(h.layer, h.wire, h.value)
		if h.trkID > 0 {
			votes[h.trkID]++
		}
	}
	best, bestVotes := Unassigned, 0
	for id, n := range votes {
		if n > bestVotes || (n == bestVotes && id < best) {
			best, bestVotes = id, n
		}
	}
	c.RecoTrackID = best
	return c
}

// ReadTrackInfo loads the track annotations of a track bank. Annotations of
// every sector are kept; lookups are by track id.
func (s *Sector) ReadTrackInfo(tracks bank.Bank) error {
	s.trackInfo = append(s.trackInfo, readTrackInfos(tracks)...)
	return nil
}

// AddCluster appends a copy of c to the bucket of its superlayer. No
// deduplication is done.
func (s *Sector) AddCluster(c Cluster) error {
	if c.Superlayer < 0 || c.Superlayer >= NumSuperlayers {
		return indexError("superlayer", c.Superlayer, NumSuperlayers)
	}
	s.loaded = true
	s.clusters[c.Superlayer] = append(s.clusters[c.Superlayer], c)
	return nil
}

// CreateWireHits rebuilds the per-superlayer wire-hit sequences from the
// current clusters.
func (s *Sector) CreateWireHits() {
	for sl := range s.clusters {
		s.wireHits[sl] = s.wireHits[sl][:0]
		for i := range s.clusters[sl] {
			s.wireHits[sl] = s.clusters[sl][i].WireHits(s.wireHits[sl])
		}
	}
}

// WireHits returns a copy of one superlayer's wire-hit sequence.
func (s *Sector) WireHits(superlayer int) ([]int, error) {
	if superlayer < 0 || superlayer >= NumSuperlayers {
		return nil, indexError("superlayer", superlayer, NumSuperlayers)
	}
	return append([]int(nil), s.wireHits[superlayer]...), nil
}

// Clusters returns the clusters of one superlayer. The slice aliases the
// sector's storage and is only valid until the next Reset.
func (s *Sector) Clusters(superlayer int) ([]Cluster, error) {
	if superlayer < 0 || superlayer >= NumSuperlayers {
		return nil, indexError("superlayer", superlayer, NumSuperlayers)
	}
	return s.clusters[superlayer], nil
}

// ClusterCount returns the number of clusters over all superlayers.
func (s *Sector) ClusterCount() int {
	n := 0
	for sl := range s.clusters {
		n += len(s.clusters[sl])
	}
	return n
}

// TrackInfos returns a copy of the loaded track annotations.
func (s *Sector) TrackInfos() []TrackInfo {
	return append([]TrackInfo(nil), s.trackInfo...)
}

// LookupTrackInfo finds the annotation of a reconstruction track id.
func (s *Sector) LookupTrackInfo(id int) (TrackInfo, bool) {
	for _, ti := range s.trackInfo {
		if ti.TrackID == id {
			return ti, true
		}
	}
	return TrackInfo{}, false
}

// Reset clears every owned collection so the sector can take the next
// event.
func (s *Sector) Reset() {
	for sl := range s.clusters {
		s.clusters[sl] = s.clusters[sl][:0]
		s.wireHits[sl] = s.wireHits[sl][:0]
	}
	s.tracks = s.tracks[:0]
	s.trackInfo = s.trackInfo[:0]
	s.number = 0
	s.loaded = false
}
