package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpaulson/cartful/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MaxHistoryRecords caps the purchase history. Appends prune the oldest
// records so the invariant len(history) <= MaxHistoryRecords holds after
// every write.
const MaxHistoryRecords = 500

// Compile-time check that the store satisfies the service contract.
var _ service.HistoryStore = (*SQLiteStore)(nil)

// SQLiteStore implements the HistoryStore interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite-backed history store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
