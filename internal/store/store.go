// Package store persists the coaching platform's relational data in SQLite.
//
// The schema mirrors the platform's domain: programs own groups, groups hold
// member rosters through group_members, and every processed session fans out
// into attendance, goals, challenges (+strategies), marketing activities
// (+outcomes), stuck detections and sentiment (+statements).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ownersup/coachd/internal/logging"
)

// Sentinel errors returned by store operations.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store wraps the SQLite handle. It is constructed explicitly and injected
// into every component; there is no package-level singleton.
type Store struct {
	db     *sql.DB
	logger *logging.Logger
}

// Open opens (creating if needed) the SQLite database at path and applies
// the production pragmas and schema.
//
// Pragmas: foreign_keys=ON, journal_mode=WAL, busy_timeout=10000,
// synchronous=NORMAL.
func Open(path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db, logger: logger.Named("store")}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// now returns the current unix timestamp; all created_at/updated_at columns
// store unix seconds.
func now() int64 {
	return time.Now().Unix()
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}

// execContext is a small helper for write statements.
func (s *Store) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}
