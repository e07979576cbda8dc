//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package postgres implements the PostgreSQL storage backend on a single
// pgx connection.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// DriverName is the registry key for this backend.
const DriverName = "postgres"

// Dialect is the PostgreSQL SQL dialect.
type Dialect struct{}

// Name implements store.Dialect.
func (Dialect) Name() string { return DriverName }

// Placeholder implements store.Dialect.
func (Dialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

// MaxParams implements store.Dialect. The wire protocol uses a 16-bit
// parameter count.
func (Dialect) MaxParams() int { return 65535 }

// MaxRowsPerInsert implements store.Dialect.
func (Dialect) MaxRowsPerInsert() int { return 0 }

// Store is a store.Store backed by one *pgx.Conn.
type Store struct {
	conn *pgx.Conn
}

// ConnectSingle establishes a single (non-pooled) connection. The
// application_name is tagged with suffix so sessions are identifiable in
// pg_stat_activity.
func ConnectSingle(ctx context.Context, connString, suffix string) (*pgx.Conn, error) {
	config, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	appName := "pgedge-olist"
	if suffix != "" {
		appName += "-" + suffix
	}
	config.RuntimeParams["application_name"] = appName

	logging.Debug().
		Str("host", config.Host).
		Uint16("port", config.Port).
		Str("database", config.Database).
		Msg("Connecting to database")

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", config.Host).
		Str("database", config.Database).
		Msg("Connected to database")

	return conn, nil
}

// Open connects a Store.
func Open(ctx context.Context, connString string) (store.Store, error) {
	conn, err := ConnectSingle(ctx, connString, "loader")
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// New wraps an existing connection.
func New(conn *pgx.Conn) *Store {
	return &Store{conn: conn}
}

// Conn returns the underlying connection.
func (s *Store) Conn() *pgx.Conn {
	return s.conn
}

// Dialect implements store.Store.
func (s *Store) Dialect() store.Dialect {
	return Dialect{}
}

// Exec implements store.Execer.
func (s *Store) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := s.conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// QueryRow implements store.Store.
func (s *Store) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	return s.conn.QueryRow(ctx, sql, args...)
}

// Query implements store.Store.
func (s *Store) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rows}, nil
}

// pgRows adapts pgx.Rows, whose Close reports errors through Err.
type pgRows struct {
	pgx.Rows
}

func (r pgRows) Close() error {
	r.Rows.Close()
	return r.Rows.Err()
}

// Begin implements store.Store.
func (s *Store) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

// Close implements store.Store.
func (s *Store) Close(ctx context.Context) error {
	if s.conn.IsClosed() {
		return nil
	}
	return s.conn.Close(ctx)
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (t *pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func init() {
	store.Register(DriverName, Open)
}
