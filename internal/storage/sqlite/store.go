package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/clas12-ai/dctrack/internal/bank"
	"github.com/clas12-ai/dctrack/internal/dc"
	"github.com/clas12-ai/dctrack/internal/monitoring"
	"github.com/clas12-ai/dctrack/internal/timeutil"
)

// ErrEventNotFound is returned by LoadEvent for an id that was never
// imported.
var ErrEventNotFound = errors.New("event not found")

// Store is the sqlite-backed event store and result sink.
type Store struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Open opens (or creates) the database at path. Use ":memory:" for a
// throwaway store. The schema is not migrated; call MigrateUp.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return &Store{db: db, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the clock used for import and run timestamps.
func (s *Store) SetClock(c timeutil.Clock) {
	s.clock = c
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertEvent stores the hit and track banks of ev. Importing an event id a
// second time replaces its rows.
func (s *Store) InsertEvent(ev *bank.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM dc_events WHERE event_id = ?`, ev.ID); err != nil {
		return fmt.Errorf("failed to clear event %d: %w", ev.ID, err)
	}
	if _, err := tx.Exec(`INSERT INTO dc_events (event_id, imported_unix_nanos) VALUES (?, ?)`,
		ev.ID, s.clock.Now().UnixNano()); err != nil {
		return fmt.Errorf("failed to insert event %d: %w", ev.ID, err)
	}

	hitStmt, err := tx.Prepare(`
		INSERT INTO dc_hits (event_id, sector, superlayer, layer, wire, tdc, cluster_id, trk_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare hit insert: %w", err)
	}
	defer hitStmt.Close()
	for _, h := range ev.Hits {
		if _, err := hitStmt.Exec(ev.ID, h.Sector, h.Superlayer, h.Layer, h.Wire, h.TDC, h.ClusterID, h.TrackID); err != nil {
			return fmt.Errorf("failed to insert hit of event %d: %w", ev.ID, err)
		}
	}

	trackStmt, err := tx.Prepare(`
		INSERT INTO dc_track_info (event_id, track_id, charge, sector, chi2)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer trackStmt.Close()
	for _, tr := range ev.Tracks {
		if _, err := trackStmt.Exec(ev.ID, tr.ID, tr.Charge, tr.Sector, tr.Chi2); err != nil {
			return fmt.Errorf("failed to insert track of event %d: %w", ev.ID, err)
		}
	}

	return tx.Commit()
}

// EventIDs lists the imported event ids in ascending order.
func (s *Store) EventIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT event_id FROM dc_events ORDER BY event_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LoadEvent reads an event back with its rows in import order.
func (s *Store) LoadEvent(id int64) (*bank.Event, error) {
	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM dc_events WHERE event_id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %d: %w", id, ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up event %d: %w", id, err)
	}

	ev := &bank.Event{ID: id}

	rows, err := s.db.Query(`
		SELECT sector, superlayer, layer, wire, tdc, cluster_id, trk_id
		FROM dc_hits WHERE event_id = ? ORDER BY hit_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load hits of event %d: %w", id, err)
	}
	for rows.Next() {
		var h bank.Hit
		if err := rows.Scan(&h.Sector, &h.Superlayer, &h.Layer, &h.Wire, &h.TDC, &h.ClusterID, &h.TrackID); err != nil {
			rows.Close()
			return nil, err
		}
		ev.Hits = append(ev.Hits, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT track_id, charge, sector, chi2
		FROM dc_track_info WHERE event_id = ? ORDER BY row_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks of event %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var tr bank.TrackRow
		if err := rows.Scan(&tr.ID, &tr.Charge, &tr.Sector, &tr.Chi2); err != nil {
			return nil, err
		}
		ev.Tracks = append(ev.Tracks, tr)
	}
	return ev, rows.Err()
}

// BeginRun registers a processing run and returns its id.
func (s *Store) BeginRun(configJSON []byte) (string, error) {
	runID := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO dc_runs (run_id, started_unix_nanos, config_json) VALUES (?, ?, ?)`,
		runID, s.clock.Now().UnixNano(), string(configJSON))
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	monitoring.Logf("[Store] started run %s", runID)
	return runID, nil
}

// Run is a registered processing run.
type Run struct {
	ID         string
	Started    time.Time
	ConfigJSON string
}

// Runs lists the registered runs, oldest first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, started_unix_nanos, COALESCE(config_json, '') FROM dc_runs ORDER BY started_unix_nanos, run_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var nanos int64
		if err := rows.Scan(&r.ID, &nanos, &r.ConfigJSON); err != nil {
			return nil, err
		}
		r.Started = time.Unix(0, nanos)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// InsertResults stores the track results of one run in a single
// transaction.
func (s *Store) InsertResults(runID string, results []dc.TrackResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO dc_track_results (
			run_id, event_id, sector, track_index, clusters_json, filled_slots,
			is_best, valid, negative, weight, reco_track_id,
			charge, info_sector, chi2, features_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		clusters, err := json.Marshal(r.Clusters)
		if err != nil {
			return fmt.Errorf("failed to encode clusters: %w", err)
		}
		features, err := json.Marshal(r.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features: %w", err)
		}
		var charge, infoSector sql.NullInt64
		var chi2 sql.NullFloat64
		if r.Info != nil {
			charge = sql.NullInt64{Int64: int64(r.Info.Charge), Valid: true}
			infoSector = sql.NullInt64{Int64: int64(r.Info.Sector), Valid: true}
			chi2 = sql.NullFloat64{Float64: r.Info.Chi2, Valid: true}
		}
		if _, err := stmt.Exec(
			runID, r.EventID, r.Sector, r.TrackIndex, string(clusters), r.FilledSlots,
			r.IsBest, r.Valid, r.Negative, r.Weight, r.RecoTrackID,
			charge, infoSector, chi2, string(features),
		); err != nil {
			return fmt.Errorf("failed to insert result event=%d sector=%d track=%d: %w",
				r.EventID, r.Sector, r.TrackIndex, err)
		}
	}

	return tx.Commit()
}

// Results reads back the track results of a run ordered by event, sector
// and track index.
func (s *Store) Results(runID string) ([]dc.TrackResult, error) {
	rows, err := s.db.Query(`
		SELECT event_id, sector, track_index, clusters_json, filled_slots,
		       is_best, valid, negative, weight, reco_track_id,
		       charge, info_sector, chi2, features_json
		FROM dc_track_results
		WHERE run_id = ?
		ORDER BY event_id, sector, track_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results of run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []dc.TrackResult
	for rows.Next() {
		var r dc.TrackResult
		var clusters, features string
		var charge, infoSector sql.NullInt64
		var chi2 sql.NullFloat64
		if err := rows.Scan(
			&r.EventID, &r.Sector, &r.TrackIndex, &clusters, &r.FilledSlots,
			&r.IsBest, &r.Valid, &r.Negative, &r.Weight, &r.RecoTrackID,
			&charge, &infoSector, &chi2, &features,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(clusters), &r.Clusters); err != nil {
			return nil, fmt.Errorf("failed to decode clusters: %w", err)
		}
		if err := json.Unmarshal([]byte(features), &r.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
		if charge.Valid {
			r.Info = &dc.TrackInfo{
				TrackID: r.RecoTrackID,
				Charge:  int(charge.Int64),
				Sector:  int(infoSector.Int64),
				Chi2:    chi2.Float64,
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
