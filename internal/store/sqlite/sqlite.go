//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sqlite implements an embedded SQLite storage backend using
// modernc.org/sqlite. Foreign keys are always enforced so load-order
// violations surface exactly as they would on a server database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// DriverName is the registry key for this backend.
const DriverName = "sqlite"

// Dialect is the SQLite SQL dialect.
type Dialect struct{}

// Name implements store.Dialect.
func (Dialect) Name() string { return DriverName }

// Placeholder implements store.Dialect.
func (Dialect) Placeholder(int) string { return "?" }

// MaxParams implements store.Dialect (SQLITE_MAX_VARIABLE_NUMBER).
func (Dialect) MaxParams() int { return 32766 }

// MaxRowsPerInsert implements store.Dialect.
func (Dialect) MaxRowsPerInsert() int { return 500 }

// Open opens (creating if needed) the database file named by dsn.
func Open(ctx context.Context, dsn string) (store.Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	s := store.NewSQLStore(db, Dialect{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	logging.Debug().Str("dsn", dsn).Msg("Opened sqlite database")

	return s, nil
}

// withForeignKeys appends the driver pragma that turns on foreign key
// enforcement for every connection the driver opens.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func init() {
	store.Register(DriverName, Open)
}
