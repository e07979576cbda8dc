// Package db opens the configured storage backend and keeps the load
// history for pgedge-olist.
package db

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-olist/internal/config"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// Open connects to the database described by cfg. The backend package for
// cfg.Driver must have been imported so that it is registered.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Debug().
		Str("driver", cfg.Driver).
		Msg("Connecting to database")

	st, err := store.Open(ctx, cfg.Driver, cfg.Connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Msg("Connected to database")

	return st, nil
}
