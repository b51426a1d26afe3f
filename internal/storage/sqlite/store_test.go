package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clas12-ai/dctrack/internal/bank"
	"github.com/clas12-ai/dctrack/internal/dc"
	"github.com/clas12-ai/dctrack/internal/testutil"
	"github.com/clas12-ai/dctrack/internal/timeutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.MigrateUp())
	return s
}

// =============================================================================
// Migrations
// =============================================================================

func TestMigrate_UpVersionDown(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "dc.db"))
	require.NoError(t, err)
	defer s.Close()

	v, dirty, err := s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
	assert.False(t, dirty)

	require.NoError(t, s.MigrateUp())
	require.NoError(t, s.MigrateUp(), "second up is a no-op")

	v, dirty, err = s.MigrateVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	require.NoError(t, s.MigrateDown())
	_, err = s.EventIDs()
	assert.Error(t, err, "tables dropped")
}

// =============================================================================
// Events
// =============================================================================

func TestStore_EventRoundTrip(t *testing.T) {
	s := openTestStore(t)

	hits := testutil.StraightTrack(3, 40, 2, 0, 1)
	hits = append(hits, bank.Hit{Sector: 3, Superlayer: 4, Layer: 2, Wire: 7, TDC: 0, ClusterID: 5})
	ev := testutil.Event(17, hits, bank.TrackRow{ID: 2, Charge: 1, Sector: 3, Chi2: 0.75})

	require.NoError(t, s.InsertEvent(ev))
	require.NoError(t, s.InsertEvent(testutil.Event(4, nil)))

	ids, err := s.EventIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 17}, ids)

	got, err := s.LoadEvent(17)
	require.NoError(t, err)
	if diff := cmp.Diff(ev, got); diff != "" {
		t.Errorf("event mismatch (-want +got):\n%s", diff)
	}

	empty, err := s.LoadEvent(4)
	require.NoError(t, err)
	assert.Empty(t, empty.Hits)
	assert.Empty(t, empty.Tracks)
}

func TestStore_ReimportReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.InsertEvent(testutil.Event(1, testutil.StraightTrack(1, 10, 0, 0, 1, 2))))
	require.NoError(t, s.InsertEvent(testutil.Event(1, []bank.Hit{testutil.Hit(2, 0, 5)})))

	got, err := s.LoadEvent(1)
	require.NoError(t, err)
	require.Len(t, got.Hits, 1)
	assert.Equal(t, 2, got.Hits[0].Sector)
}

func TestStore_LoadEventNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadEvent(99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

// =============================================================================
// Runs and results
// =============================================================================

func TestStore_RunsAndResults(t *testing.T) {
	s := openTestStore(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(timeutil.NewMockClock(started))

	runID, err := s.BeginRun([]byte(`{"min_superlayers":3}`))
	require.NoError(t, err)
	assert.Len(t, runID, 36)

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.True(t, runs[0].Started.Equal(started))
	assert.Equal(t, `{"min_superlayers":3}`, runs[0].ConfigJSON)

	in := []dc.TrackResult{
		{
			EventID: 2, Sector: 1, TrackIndex: 1,
			Clusters:    []int{0, 0, dc.Unassigned, dc.Unassigned, dc.Unassigned, dc.Unassigned},
			FilledSlots: 2, RecoTrackID: dc.Unassigned,
			Features: make([]float64, dc.FeatureStride),
		},
		{
			EventID: 2, Sector: 1, TrackIndex: 0,
			Clusters:    []int{0, 1, 0, 0, 0, 0},
			FilledSlots: 6, Valid: true, IsBest: true, Negative: true,
			Weight: 0.875, RecoTrackID: 4,
			Info:     &dc.TrackInfo{TrackID: 4, Charge: -1, Sector: 1, Chi2: 2.5},
			Features: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0.875},
		},
	}
	require.NoError(t, s.InsertResults(runID, in))

	got, err := s.Results(runID)
	require.NoError(t, err)
	want := []dc.TrackResult{in[1], in[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	other, err := s.Results("no-such-run")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStore_InsertResultsUnknownRun(t *testing.T) {
	s := openTestStore(t)
	err := s.InsertResults("missing", []dc.TrackResult{{EventID: 1, Sector: 1}})
	assert.Error(t, err, "foreign key on run id")
}
