// Package sqlite persists drift-chamber events and track-builder results.
//
// The store holds the hit and track-annotation banks of imported events,
// a registry of processing runs, and the per-track results of each run.
// The schema is versioned with golang-migrate from migrations embedded in
// the binary.
package sqlite
