// Package mirror keeps a local copy of provider records. It runs on
// database/sql so the same store serves an embedded SQLite file in
// development and a PostgreSQL database in production.
package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS sync_records (
	tenant_id         TEXT NOT NULL,
	connector_id      TEXT NOT NULL,
	provider          TEXT NOT NULL,
	entity            TEXT NOT NULL,
	external_id       TEXT NOT NULL,
	data              TEXT NOT NULL,
	source_updated_at BIGINT NOT NULL,
	deleted_at        BIGINT,
	synced_at         BIGINT NOT NULL,
	PRIMARY KEY (connector_id, entity, external_id)
)`

const indexSQL = `CREATE INDEX IF NOT EXISTS idx_sync_records_tenant ON sync_records (tenant_id, provider, entity)`

// Store implements ports.RecordStore on a *sql.DB.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// New wraps an open database. driver names the database/sql driver in use.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver, now: time.Now}
}

// Open picks a backend from the DSN scheme and ensures the schema exists.
//
//	sqlite://path/to/file.db   embedded SQLite file
//	memory://                  in-memory SQLite, lost on exit
//	postgres://... | postgresql://...
func Open(ctx context.Context, dsn string) (*Store, error) {
	driver, source, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	if driver == driverSQLite {
		// single writer avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mirror: %w", err)
	}

	s := New(db, driver)
	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func parseDSN(dsn string) (driver, source string, err error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", "", fmt.Errorf("mirror dsn is empty")
	}
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", "", fmt.Errorf("mirror dsn %q has no scheme", dsn)
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3", "file":
		if rest == "" {
			return "", "", fmt.Errorf("mirror dsn %q has no path", dsn)
		}
		return driverSQLite, rest, nil
	case "memory", "mem":
		return driverSQLite, ":memory:", nil
	case "postgres", "postgresql":
		if _, err := url.Parse(dsn); err != nil {
			return "", "", fmt.Errorf("parse mirror dsn: %w", err)
		}
		return driverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported mirror scheme: %s", scheme)
	}
}

// EnsureSchema creates the records table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s.driver == driverSQLite {
		if _, err := s.db.ExecContext(ctx, `PRAGMA journal_mode=WAL`); err != nil {
			return fmt.Errorf("mirror pragma: %w", err)
		}
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create sync_records: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, indexSQL); err != nil {
		return fmt.Errorf("create sync_records index: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports mirror reachability for GET /health.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Name() string { return "mirror" }
