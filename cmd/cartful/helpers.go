package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jpaulson/cartful/internal/common"
	"github.com/jpaulson/cartful/internal/config"
	"github.com/jpaulson/cartful/internal/remote"
	"github.com/jpaulson/cartful/internal/storage"
)

// initStore opens the history database with proper path expansion and
// runs pending migrations.
func initStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("could not open the history database at %s", dbPath), err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("could not upgrade the history database", err)
	}

	return store, nil
}

// initBridge builds the remote suggestion bridge from config, or returns
// nil when no remote service is configured.
func initBridge() (*remote.Bridge, error) {
	baseURL := viper.GetString("remote.url")
	if baseURL == "" {
		return nil, nil
	}

	return remote.NewBridge(remote.Config{
		BaseURL: baseURL,
		Timeout: viper.GetDuration("remote.timeout"),
	})
}
