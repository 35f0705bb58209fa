package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jpaulson/cartful/internal/common"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial purchase history schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS purchases (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item_name TEXT NOT NULL,
					category TEXT NOT NULL DEFAULT '',
					price REAL,
					purchase_date DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_purchases_item ON purchases(item_name)`,
				`CREATE INDEX idx_purchases_date ON purchases(purchase_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Remote sync bookkeeping",
		Up: func(tx *sql.Tx) error {
			// Tracks which purchases were already pushed to the remote
			// suggestion service so a restart doesn't re-send everything.
			_, err := tx.Exec(`ALTER TABLE purchases ADD COLUMN synced_at DATETIME`)
			if err != nil {
				return fmt.Errorf("failed to add synced_at column: %w", err)
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current > ExpectedSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d",
			common.ErrDatabaseCorrupted, current, ExpectedSchemaVersion)
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	return nil
}
