package dc

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMinSuperlayers is the number of filled superlayer slots a track
// needs to be valid.
const DefaultMinSuperlayers = 3

// Track status values set by Analyze.
const (
	StatusUnscored = 0
	StatusValid    = 1
	StatusInvalid  = -1
)

// Track associates at most one cluster per superlayer. Slot k holds the
// index of a cluster in the owning Sector's superlayer-k bucket, or
// Unassigned, together with that cluster's mean wire position.
type Track struct {
	clusters [NumSuperlayers]int
	means    [NumSuperlayers]float64
	minSlots int

	Weight float64
	Status int
}

// NewTrack returns an empty track. minSlots <= 0 selects
// DefaultMinSuperlayers.
func NewTrack(minSlots int) Track {
	if minSlots <= 0 {
		minSlots = DefaultMinSuperlayers
	}
	t := Track{minSlots: minSlots}
	for i := range t.clusters {
		t.clusters[i] = Unassigned
	}
	return t
}

// SetCluster assigns a cluster index to a superlayer slot.
func (t *Track) SetCluster(superlayer, clusterID int) error {
	if superlayer < 0 || superlayer >= NumSuperlayers {
		return indexError("superlayer", superlayer, NumSuperlayers)
	}
	t.clusters[superlayer] = clusterID
	return nil
}

// SetClusterMean assigns a cluster index and its mean position to a
// superlayer slot.
func (t *Track) SetClusterMean(superlayer, clusterID int, mean float64) error {
	if err := t.SetCluster(superlayer, clusterID); err != nil {
		return err
	}
	t.means[superlayer] = mean
	return nil
}

// assign fills a slot whose superlayer is known to be in range.
func (t *Track) assign(superlayer, clusterID int, mean float64) {
	t.clusters[superlayer] = clusterID
	t.means[superlayer] = mean
}

// ClusterID returns the cluster index in a slot, Unassigned for an empty
// slot or an out-of-range superlayer.
func (t *Track) ClusterID(superlayer int) int {
	if superlayer < 0 || superlayer >= NumSuperlayers {
		return Unassigned
	}
	return t.clusters[superlayer]
}

// Mean returns the mean position stored in a slot, NaN when the slot is
// empty or out of range.
func (t *Track) Mean(superlayer int) float64 {
	if superlayer < 0 || superlayer >= NumSuperlayers || t.clusters[superlayer] == Unassigned {
		return math.NaN()
	}
	return t.means[superlayer]
}

// Clusters returns a copy of the per-superlayer cluster indices.
func (t *Track) Clusters() []int {
	return append([]int(nil), t.clusters[:]...)
}

// FilledCount returns the number of populated slots.
func (t *Track) FilledCount() int {
	n := 0
	for _, c := range t.clusters {
		if c != Unassigned {
			n++
		}
	}
	return n
}

// MinSlots returns the filled-slot threshold used by IsValid.
func (t *Track) MinSlots() int {
	if t.minSlots <= 0 {
		return DefaultMinSuperlayers
	}
	return t.minSlots
}

// IsValid reports whether enough superlayer slots are filled.
func (t *Track) IsValid() bool {
	return t.FilledCount() >= t.MinSlots()
}

// IsNegative reports whether the mean position decreases along the track:
// the sum of differences between consecutive filled slots is negative.
// Tracks with fewer than two filled slots are never negative.
func (t *Track) IsNegative() bool {
	prev := Unassigned
	sum := 0.0
	steps := 0
	for sl := 0; sl < NumSuperlayers; sl++ {
		if t.clusters[sl] == Unassigned {
			continue
		}
		if prev != Unassigned {
			sum += t.means[sl] - t.means[prev]
			steps++
		}
		prev = sl
	}
	return steps > 0 && sum < 0
}

// Contains reports whether every populated slot of other holds the same
// cluster in t.
func (t *Track) Contains(other *Track) bool {
	for sl, c := range other.clusters {
		if c != Unassigned && t.clusters[sl] != c {
			return false
		}
	}
	return true
}

// RunningMean returns the average of the filled slot means, NaN if none.
func (t *Track) RunningMean() float64 {
	sum, n := 0.0, 0
	for sl, c := range t.clusters {
		if c != Unassigned {
			sum += t.means[sl]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// String renders the track's slots, weight and status on one line.
func (t *Track) String() string {
	var b strings.Builder
	b.WriteString("track [")
	for sl, c := range t.clusters {
		if sl > 0 {
			b.WriteByte(' ')
		}
		if c == Unassigned {
			b.WriteString("   -")
			continue
		}
		fmt.Fprintf(&b, "%4d", c)
	}
	fmt.Fprintf(&b, "] means [")
	for sl, c := range t.clusters {
		if sl > 0 {
			b.WriteByte(' ')
		}
		if c == Unassigned {
			b.WriteString("     -")
			continue
		}
		fmt.Fprintf(&b, "%6.2f", t.means[sl])
	}
	fmt.Fprintf(&b, "] weight=%.4f status=%d valid=%t negative=%t", t.Weight, t.Status, t.IsValid(), t.IsNegative())
	return b.String()
}
