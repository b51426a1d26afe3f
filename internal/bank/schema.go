package bank

// Bank names used by the drift-chamber track builder.
const (
	HitsBankName   = "DC::hits"
	TracksBankName = "DC::tracks"
)

// Hit bank columns. Superlayer, layer and wire are 0-based; sector is 1-based.
const (
	ColSector     = "sector"
	ColSuperlayer = "superlayer"
	ColLayer      = "layer"
	ColWire       = "wire"
	ColTDC        = "tdc"
	ColClusterID  = "clusterid" // optional, >0 groups hits into a cluster
	ColTrackID    = "trkid"     // optional, conventional reconstruction track id
)

// Track annotation bank columns.
const (
	ColID     = "id"
	ColCharge = "q"
	ColChi2   = "chi2"
)

// HitColumns is the column layout of banks built by HitsBank.
var HitColumns = []string{ColSector, ColSuperlayer, ColLayer, ColWire, ColTDC, ColClusterID, ColTrackID}

// TrackColumns is the column layout of banks built by TracksBank.
var TrackColumns = []string{ColID, ColCharge, ColSector, ColChi2}

// Hit is one drift-chamber wire hit.
type Hit struct {
	Sector     int `json:"sector"`
	Superlayer int `json:"superlayer"`
	Layer      int `json:"layer"`
	Wire       int `json:"wire"`
	TDC        int `json:"tdc"`
	ClusterID  int `json:"cluster_id,omitempty"`
	TrackID    int `json:"trk_id,omitempty"`
}

// TrackRow is one track annotation produced by the conventional
// reconstruction (charge, sector and fit chi2).
type TrackRow struct {
	ID     int     `json:"id"`
	Charge int     `json:"q"`
	Sector int     `json:"sector"`
	Chi2   float64 `json:"chi2"`
}

// Event groups the banks of one physics event.
type Event struct {
	ID     int64      `json:"event"`
	Hits   []Hit      `json:"hits"`
	Tracks []TrackRow `json:"tracks,omitempty"`
}

// HitsBank builds a hit bank from rows.
func HitsBank(hits []Hit) *MemBank {
	b := NewMemBank(HitsBankName, HitColumns...)
	for _, h := range hits {
		// Column count always matches HitColumns.
		_ = b.Append(
			float64(h.Sector), float64(h.Superlayer), float64(h.Layer), float64(h.Wire),
			float64(h.TDC), float64(h.ClusterID), float64(h.TrackID),
		)
	}
	return b
}

// TracksBank builds a track annotation bank from rows.
func TracksBank(rows []TrackRow) *MemBank {
	b := NewMemBank(TracksBankName, TrackColumns...)
	for _, r := range rows {
		_ = b.Append(float64(r.ID), float64(r.Charge), float64(r.Sector), r.Chi2)
	}
	return b
}

// HitsBank returns the event's hits as a bank.
func (e *Event) HitsBank() *MemBank { return HitsBank(e.Hits) }

// TracksBank returns the event's track annotations as a bank.
func (e *Event) TracksBank() *MemBank { return TracksBank(e.Tracks) }

// Sectors returns the distinct sector numbers present in the event's hits,
// in ascending order.
func (e *Event) Sectors() []int {
	seen := map[int]bool{}
	for _, h := range e.Hits {
		seen[h.Sector] = true
	}
	out := make([]int, 0, len(seen))
	for s := 1; s <= 6; s++ {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}
