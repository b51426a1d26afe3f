// Package dc builds particle tracks from drift-chamber wire hits of one
// CLAS12 sector.
//
// Data flows wire → cluster → track → sector: Sector.Read ingests the hit
// bank and forms clusters per superlayer, Sector.MakeTracks combines
// clusters into track candidates, Sector.Analyze scores them and
// Sector.Features emits a fixed-stride feature vector for an external
// classifier, whose scores may be fed back through Sector.SetWeights.
//
// A Sector is single-threaded and per-event: call Reset at every event
// boundary. Different Sectors share nothing and may run concurrently.
package dc
