// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/holocron/internal/models"
	"github.com/mmynk/holocron/internal/storage"
)

// Ensure SQLiteStore implements storage.SeedableStore
var _ storage.SeedableStore = (*SQLiteStore)(nil)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries holds the statements shared by the store and its transactions.
type queries struct {
	q querier
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	queries
	db *sql.DB
}

// sqliteTx implements storage.Tx on top of a *sql.Tx.
type sqliteTx struct {
	queries
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so that every pooled connection gets them.
	// Write transactions take the lock up front (BEGIN IMMEDIATE) so a
	// check-then-insert cannot interleave with another writer.
	dsn := "file:" + dbPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_txlock=immediate"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{queries: queries{q: db}, db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// InTx runs fn inside a transaction, committing on success.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{queries: queries{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Reset deletes all rows and restarts the ID sequences.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// favorite first: it references the other three tables.
	for _, stmt := range []string{
		`DELETE FROM favorite`,
		`DELETE FROM "user"`,
		`DELETE FROM people`,
		`DELETE FROM planet`,
		`DELETE FROM sqlite_sequence WHERE name IN ('favorite', 'user', 'people', 'planet')`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset tables: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// translateError maps SQLite constraint violations to storage errors.
func translateError(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	// Extended codes carry the primary code in the low byte.
	if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return err
	}
	switch {
	case se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		strings.Contains(se.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	case se.Code() == sqlite3.SQLITE_CONSTRAINT_CHECK,
		strings.Contains(se.Error(), "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", models.ErrInvalidTarget, err)
	}
	return err
}

// unixOrNull converts a time to a nullable unix timestamp column value.
func unixOrNull(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}

// timeFromNull converts a nullable unix timestamp column back to a time.
func timeFromNull(v sql.NullInt64) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return time.Unix(v.Int64, 0).UTC()
}
