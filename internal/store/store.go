// Package store persists simulation runs, trajectories and player
// metadata in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pitchside-data/tracklab/internal/pitch"
	"github.com/pitchside-data/tracklab/internal/sim"
)

// DB wraps the SQLite handle with tracking-specific queries.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the database at path and brings the schema
// up to date via the embedded migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// Run is one recorded simulation run.
type Run struct {
	RunID     string
	Seed      int64
	Ticks     int
	CreatedAt time.Time
}

// CreateRun records a new run and returns its generated ID.
func (db *DB) CreateRun(seed int64, ticks int) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO runs (run_id, seed, ticks) VALUES (?, ?, ?)`,
		runID, seed, ticks,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// ListRuns returns all recorded runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(
		`SELECT run_id, seed, ticks, created_at FROM runs ORDER BY created_at DESC, run_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Seed, &r.Ticks, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// InsertSamples stores a batch of position samples for a run inside a
// single transaction.
func (db *DB) InsertSamples(runID string, samples []sim.Sample) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO positions (run_id, player_id, tick, x, y) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(runID, s.PlayerID, s.Tick, s.X, s.Y); err != nil {
			return fmt.Errorf("failed to insert sample (player %s, tick %d): %w", s.PlayerID, s.Tick, err)
		}
	}
	return tx.Commit()
}

// UpsertPlayerInfo stores player metadata, replacing any existing
// record for the same player.
func (db *DB) UpsertPlayerInfo(infos []sim.PlayerInfo) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO players (player_id, shirt_number, age, height_cm, weight_kg)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, info := range infos {
		if _, err := stmt.Exec(info.PlayerID, info.ShirtNumber, info.Age, info.HeightCM, info.WeightKG); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", info.PlayerID, err)
		}
	}
	return tx.Commit()
}

// ListPlayerInfo returns all stored player metadata ordered by shirt
// number.
func (db *DB) ListPlayerInfo() ([]sim.PlayerInfo, error) {
	rows, err := db.Query(
		`SELECT player_id, shirt_number, age, height_cm, weight_kg FROM players ORDER BY shirt_number`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var infos []sim.PlayerInfo
	for rows.Next() {
		var info sim.PlayerInfo
		if err := rows.Scan(&info.PlayerID, &info.ShirtNumber, &info.Age, &info.HeightCM, &info.WeightKG); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// RunPlayerIDs returns the distinct player IDs recorded for a run.
func (db *DB) RunPlayerIDs(runID string) ([]string, error) {
	rows, err := db.Query(
		`SELECT DISTINCT player_id FROM positions WHERE run_id = ? ORDER BY player_id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query run players: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PlayerTrajectory returns one player's position sequence for a run,
// ordered by tick.
func (db *DB) PlayerTrajectory(runID, playerID string) ([]pitch.Point, error) {
	rows, err := db.Query(
		`SELECT x, y FROM positions WHERE run_id = ? AND player_id = ? ORDER BY tick`,
		runID, playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trajectory: %w", err)
	}
	defer rows.Close()

	var pts []pitch.Point
	for rows.Next() {
		var p pitch.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		pts = append(pts, p)
	}
	return pts, rows.Err()
}
