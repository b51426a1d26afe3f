package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemBank_AppendAndRead(t *testing.T) {
	b := NewMemBank("test", "a", "b")
	require.NoError(t, b.Append(1, 2.5))
	require.NoError(t, b.Append(-3, 4))

	assert.Equal(t, "test", b.Name())
	assert.Equal(t, 2, b.Rows())
	assert.True(t, b.Has("a"))
	assert.False(t, b.Has("c"))
	assert.Equal(t, 1, b.Int("a", 0))
	assert.Equal(t, 2, b.Int("b", 0))
	assert.InDelta(t, 2.5, b.Float("b", 0), 1e-12)
	assert.Equal(t, -3, b.Int("a", 1))
	assert.Equal(t, []string{"a", "b"}, b.Columns())
}

func TestMemBank_MissingColumnIsZero(t *testing.T) {
	b := NewMemBank("test", "a")
	require.NoError(t, b.Append(7))
	assert.Equal(t, 0, b.Int("missing", 0))
	assert.Equal(t, 0.0, b.Float("missing", 0))
}

func TestMemBank_AppendWrongWidth(t *testing.T) {
	b := NewMemBank("test", "a", "b")
	err := b.Append(1)
	assert.Error(t, err)
	assert.Equal(t, 0, b.Rows())
}

func TestHitsBank(t *testing.T) {
	hits := []Hit{
		{Sector: 2, Superlayer: 1, Layer: 3, Wire: 40, TDC: 120, ClusterID: 7, TrackID: 1},
	}
	b := HitsBank(hits)
	require.Equal(t, 1, b.Rows())
	assert.Equal(t, HitsBankName, b.Name())
	assert.Equal(t, 2, b.Int(ColSector, 0))
	assert.Equal(t, 1, b.Int(ColSuperlayer, 0))
	assert.Equal(t, 3, b.Int(ColLayer, 0))
	assert.Equal(t, 40, b.Int(ColWire, 0))
	assert.Equal(t, 120, b.Int(ColTDC, 0))
	assert.Equal(t, 7, b.Int(ColClusterID, 0))
	assert.Equal(t, 1, b.Int(ColTrackID, 0))
}

func TestTracksBank(t *testing.T) {
	b := TracksBank([]TrackRow{{ID: 3, Charge: -1, Sector: 4, Chi2: 1.25}})
	require.Equal(t, 1, b.Rows())
	assert.Equal(t, 3, b.Int(ColID, 0))
	assert.Equal(t, -1, b.Int(ColCharge, 0))
	assert.Equal(t, 4, b.Int(ColSector, 0))
	assert.InDelta(t, 1.25, b.Float(ColChi2, 0), 1e-12)
}

func TestEvent_Sectors(t *testing.T) {
	ev := Event{Hits: []Hit{{Sector: 5}, {Sector: 2}, {Sector: 5}, {Sector: 9}}}
	assert.Equal(t, []int{2, 5}, ev.Sectors())

	empty := Event{}
	assert.Empty(t, empty.Sectors())
}
