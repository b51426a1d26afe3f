// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/clas12-ai/dctrack/internal/bank"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Hit returns a layer-0 hit with a unit TDC.
func Hit(sector, superlayer, wire int) bank.Hit {
	return bank.Hit{Sector: sector, Superlayer: superlayer, Wire: wire, TDC: 1}
}

// StraightTrack returns hits of a track crossing all six layers of the
// given superlayers at a fixed wire, tagged with a reconstruction id.
func StraightTrack(sector, wire, trkID int, superlayers ...int) []bank.Hit {
	var hits []bank.Hit
	for _, sl := range superlayers {
		for layer := 0; layer < 6; layer++ {
			hits = append(hits, bank.Hit{
				Sector:     sector,
				Superlayer: sl,
				Layer:      layer,
				Wire:       wire,
				TDC:        100 + layer,
				TrackID:    trkID,
			})
		}
	}
	return hits
}

// Event builds an event from hits and track annotations.
func Event(id int64, hits []bank.Hit, tracks ...bank.TrackRow) *bank.Event {
	return &bank.Event{ID: id, Hits: hits, Tracks: tracks}
}
