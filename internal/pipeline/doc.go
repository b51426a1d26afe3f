// Package pipeline drives the drift-chamber track builder over events.
//
// A Processor owns one dc.Sector per physical sector, runs the sectors of an
// event concurrently, optionally hands the track features to an external
// Scorer, and collects the per-track results. Run walks an EventSource and
// writes results to a ResultSink; the cmd layer wires both to the sqlite
// store.
package pipeline
