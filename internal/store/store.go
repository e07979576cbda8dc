//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store defines the storage client the loader drives.
//
// A Store wraps exactly one database connection. It is constructed by the
// entry point and handed to every component; nothing in this module keeps a
// process-wide connection. Statements executed directly on a Store are
// auto-committed; statements executed on a Tx are not visible until Commit.
package store

import "context"

// Execer executes a statement and reports the number of rows affected.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Row is a single-row query result. Both pgx.Row and *sql.Row satisfy it.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a multi-row query result. Close must be called when done.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Tx is an open transaction on the Store's connection.
type Tx interface {
	Execer

	// Commit makes the transaction's changes durable.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Calling Rollback after Commit is
	// a no-op for every backend.
	Rollback(ctx context.Context) error
}

// Store is a single-connection storage client.
type Store interface {
	Execer

	// Dialect describes the SQL flavour spoken by the backend.
	Dialect() Dialect

	// Begin opens a transaction.
	Begin(ctx context.Context) (Tx, error)

	// QueryRow runs a query expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// Query runs a query returning any number of rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Dialect captures the differences between SQL backends that matter to
// bulk inserts.
type Dialect interface {
	// Name is the driver name the Store was registered under.
	Name() string

	// Placeholder returns the bind marker for the n-th parameter (1-based).
	Placeholder(n int) string

	// MaxParams is the largest number of bind parameters in one statement.
	MaxParams() int

	// MaxRowsPerInsert caps the VALUES tuples in one INSERT. 0 means no cap.
	MaxRowsPerInsert() int
}
