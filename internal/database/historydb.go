package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mdcrawl/mdcrawl/internal/model"
)

// HistoryDB stores page metadata records across runs.
//
// Design decision: one database file for all seeds rather than one per
// seed. Cross-seed queries ("when did this URL last change status?") stay a
// single SQL statement, and backup is one file copy.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended: the crawl
	// appends while summaries may read.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrNotFound is returned when no record exists for a (url, seed) pair.
var ErrNotFound = errors.New("page record not found")

// Open opens or creates a HistoryDB in the given directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "mdcrawl.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw prevents creating new files, mode=rwc
	// allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports one writer; extra connections only add lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		seed TEXT NOT NULL,
		title TEXT,
		status_code INTEGER,
		artifact_path TEXT,
		depth INTEGER NOT NULL DEFAULT 0,
		timestamp TEXT NOT NULL,
		UNIQUE(url, seed)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
	CREATE INDEX IF NOT EXISTS idx_pages_seed ON pages(seed);
	CREATE INDEX IF NOT EXISTS idx_pages_timestamp ON pages(timestamp);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SavePageRecord inserts or updates the record for its (url, seed) pair.
func (h *HistoryDB) SavePageRecord(ctx context.Context, record model.PageRecord) error {
	query := `
	INSERT INTO pages (url, seed, title, status_code, artifact_path, depth, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(url, seed) DO UPDATE SET
		title = excluded.title,
		status_code = excluded.status_code,
		artifact_path = excluded.artifact_path,
		depth = excluded.depth,
		timestamp = excluded.timestamp
	`

	_, err := h.db.ExecContext(ctx, query,
		record.URL,
		record.Seed,
		record.Title,
		record.StatusCode,
		record.ArtifactPath,
		record.Depth,
		record.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save page record: %w", err)
	}

	return nil
}

// GetPageRecord retrieves the stored record for a (url, seed) pair.
// Returns ErrNotFound when the pair has never been crawled.
func (h *HistoryDB) GetPageRecord(ctx context.Context, url, seed string) (*model.PageRecord, error) {
	query := `
	SELECT url, seed, title, status_code, artifact_path, depth, timestamp
	FROM pages
	WHERE url = ? AND seed = ?
	`

	var record model.PageRecord
	var timestamp string

	err := h.db.QueryRowContext(ctx, query, url, seed).Scan(
		&record.URL,
		&record.Seed,
		&record.Title,
		&record.StatusCode,
		&record.ArtifactPath,
		&record.Depth,
		&timestamp,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get page record: %w", err)
	}

	if ts, err := time.Parse(time.RFC3339, timestamp); err == nil {
		record.Timestamp = ts
	}

	return &record, nil
}

// CountPages returns the number of stored page records.
func (h *HistoryDB) CountPages(ctx context.Context) (int, error) {
	var count int
	if err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}
