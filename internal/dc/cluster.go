package dc

import (
	"fmt"
	"math"
	"strings"
)

// Unassigned marks an unset superlayer, sector or track reference.
const Unassigned = -1

// Cluster is a group of wire hits in one superlayer attributed to a single
// track segment.
type Cluster struct {
	Wires      WireHitGrid
	Superlayer int // 0..5, Unassigned after Reset
	Sector     int // 1..6, Unassigned after Reset

	// TrackID is the index of the first track in the owning Sector that
	// uses this cluster, or Unassigned.
	TrackID int
	// RecoTrackID is the conventional reconstruction's track id carried by
	// the hit bank, or Unassigned.
	RecoTrackID int
}

// NewCluster returns an empty cluster bound to a superlayer and sector.
func NewCluster(superlayer, sector int) Cluster {
	return Cluster{
		Superlayer:  superlayer,
		Sector:      sector,
		TrackID:     Unassigned,
		RecoTrackID: Unassigned,
	}
}

// Reset zeroes the grid and sets all references to Unassigned.
func (c *Cluster) Reset() {
	c.Wires.Clear()
	c.Superlayer = Unassigned
	c.Sector = Unassigned
	c.TrackID = Unassigned
	c.RecoTrackID = Unassigned
}

// SetWire stores a hit value at (layer, wire).
func (c *Cluster) SetWire(layer, wire, value int) error {
	return c.Wires.Set(layer, wire, value)
}

// Wire returns the hit value at (layer, wire).
func (c *Cluster) Wire(layer, wire int) (int, error) {
	return c.Wires.Get(layer, wire)
}

// Region returns the detector region of the cluster's superlayer.
func (c *Cluster) Region() int {
	return RegionOf(c.Superlayer)
}

// HitCount returns the number of hit cells.
func (c *Cluster) HitCount() int {
	return c.Wires.Count()
}

// WireHits appends the linear indices of all hit cells to out, layer-major
// then wire-ascending, and returns the extended slice.
func (c *Cluster) WireHits(out []int) []int {
	c.Wires.each(func(layer, wire, _ int) {
		out = append(out, layer*NumWires+wire)
	})
	return out
}

// LayerCenterX returns the mean wire index of the hits in one layer.
// A layer without hits yields NaN.
func (c *Cluster) LayerCenterX(layer int) (float64, error) {
	if layer < 0 || layer >= NumLayers {
		return math.NaN(), indexError("layer", layer, NumLayers)
	}
	sum, n := 0, 0
	base := layer * NumWires
	for w := 0; w < NumWires; w++ {
		if c.Wires.cells[base+w] != 0 {
			sum += w
			n++
		}
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return float64(sum) / float64(n), nil
}

// CenterX returns the mean wire index over all hits, NaN if empty.
func (c *Cluster) CenterX() float64 {
	sum, n := 0, 0
	c.Wires.each(func(_, wire, _ int) {
		sum += wire
		n++
	})
	if n == 0 {
		return math.NaN()
	}
	return float64(sum) / float64(n)
}

// CenterY returns the mean nominal layer coordinate over all hits (cm),
// NaN if the cluster is empty or has no superlayer.
func (c *Cluster) CenterY() float64 {
	if c.Superlayer < 0 || c.Superlayer >= NumSuperlayers {
		return math.NaN()
	}
	sum, n := 0.0, 0
	c.Wires.each(func(layer, _, _ int) {
		sum += LayerY(c.Superlayer, layer)
		n++
	})
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// CopyTo deep-copies c into dst.
func (c *Cluster) CopyTo(dst *Cluster) {
	*dst = *c
}

// String renders the cluster as one row of hit wires per layer.
func (c *Cluster) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cluster sector=%d superlayer=%d region=%d track=%d reco=%d hits=%d x=%.2f\n",
		c.Sector, c.Superlayer, c.Region(), c.TrackID, c.RecoTrackID, c.HitCount(), c.CenterX())
	for l := 0; l < NumLayers; l++ {
		fmt.Fprintf(&b, "  L%d:", l+1)
		for w := 0; w < NumWires; w++ {
			if c.Wires.cells[l*NumWires+w] != 0 {
				fmt.Fprintf(&b, " %d", w)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
