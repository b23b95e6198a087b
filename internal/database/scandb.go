package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bryanroy/anomalyscan/internal/model"
	"github.com/bryanroy/anomalyscan/internal/store"
)

// ScanDB stores the history of scan runs and their anomaly-free hits.
// It manages connection pooling and provides methods for recording and
// querying runs.
//
// Design decision: We use a single database file for all runs rather than a
// file per run. This keeps cross-run queries (how often a given extension
// shows up, how grids grew over time) trivial, and backup is one file.
type ScanDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures ScanDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a ScanDB at the specified path.
func Open(dbPath string, opts Options) (*ScanDB, error) {
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; the history is write-light anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &ScanDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return sdb, nil
}

// Close closes the database connection.
func (sdb *ScanDB) Close() error {
	return sdb.db.Close()
}

// Path returns the path to the database file.
func (sdb *ScanDB) Path() string { return sdb.dbPath }

// createTables creates the database schema if it doesn't exist.
func (sdb *ScanDB) createTables() error {
	schema := `
	-- Runs store one row per comprehensive scan
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		started DATETIME NOT NULL,
		finished DATETIME,
		tested INTEGER DEFAULT 0,
		hits INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);

	-- Hits store one row per anomaly-free model found in a run
	CREATE TABLE IF NOT EXISTS hits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		hash TEXT NOT NULL,
		stage TEXT NOT NULL,
		description TEXT NOT NULL,
		signature TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(run_id, hash)
	);

	CREATE INDEX IF NOT EXISTS idx_hits_hash ON hits(hash);
	CREATE INDEX IF NOT EXISTS idx_hits_run ON hits(run_id);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// BeginRun records the start of a scan run. The source identifies what drove
// the run: a template path or a rule name.
func (sdb *ScanDB) BeginRun(ctx context.Context, source string) (int64, error) {
	result, err := sdb.db.ExecContext(ctx,
		`INSERT INTO runs (source, started) VALUES (?, ?)`,
		source, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// FinishRun records a run's completion counters.
func (sdb *ScanDB) FinishRun(ctx context.Context, runID int64, tested, hits int) error {
	_, err := sdb.db.ExecContext(ctx,
		`UPDATE runs SET finished = ?, tested = ?, hits = ? WHERE id = ?`,
		time.Now().UTC(), tested, hits, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", runID, err)
	}
	return nil
}

// RecordHit inserts one anomaly-free hit for a run.
// Uses UPSERT on (run, hash): rediscoveries of the same spectrum within a
// run update the stage and description rather than duplicating the row.
func (sdb *ScanDB) RecordHit(ctx context.Context, runID int64, result model.ScanResult) error {
	hash, err := store.ContentHash(result.Spectrum)
	if err != nil {
		return err
	}

	var signature string
	for i, f := range result.Spectrum {
		if i > 0 {
			signature += " "
		}
		signature += f.Signature()
	}

	query := `
	INSERT INTO hits (run_id, hash, stage, description, signature)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(run_id, hash) DO UPDATE SET
		stage = excluded.stage,
		description = excluded.description,
		signature = excluded.signature,
		timestamp = CURRENT_TIMESTAMP
	`
	if _, err := sdb.db.ExecContext(ctx, query,
		runID, hash, result.Stage.String(), result.Description, signature,
	); err != nil {
		return fmt.Errorf("failed to record hit %s: %w", hash, err)
	}
	return nil
}

// RunRecord is one stored scan run.
type RunRecord struct {
	ID       int64
	Source   string
	Started  time.Time
	Finished time.Time
	Tested   int
	Hits     int
}

// RecentRuns returns the most recent runs, newest first.
func (sdb *ScanDB) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := sdb.db.QueryContext(ctx,
		`SELECT id, source, started, COALESCE(finished, started), tested, hits
		 FROM runs ORDER BY started DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Source, &r.Started, &r.Finished, &r.Tested, &r.Hits); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// HitCount returns how many distinct runs discovered the given content hash.
func (sdb *ScanDB) HitCount(ctx context.Context, hash string) (int, error) {
	var count int
	err := sdb.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT run_id) FROM hits WHERE hash = ?`, hash).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count hits for %s: %w", hash, err)
	}
	return count, nil
}
