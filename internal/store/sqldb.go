package store

import (
	"context"
	"database/sql"
	"errors"
)

// SQLStore adapts a database/sql handle to Store. The handle is pinned to a
// single open connection so session state (pragmas, temp objects) is stable.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps db. It limits the pool to one connection.
func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return &SQLStore{db: db, dialect: d}
}

// DB exposes the underlying handle for backend-specific setup.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect implements Store.
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Exec implements Execer.
func (s *SQLStore) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res), nil
}

// QueryRow implements Store.
func (s *SQLStore) QueryRow(ctx context.Context, query string, args ...any) Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

// Query implements Store. *sql.Rows satisfies Rows directly.
func (s *SQLStore) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Begin implements Store.
func (s *SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlTx{tx: tx}, nil
}

// Close implements Store.
func (s *SQLStore) Close(_ context.Context) error {
	return s.db.Close()
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return rowsAffected(res), nil
}

func (t *sqlTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t *sqlTx) Rollback(_ context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func rowsAffected(res sql.Result) int64 {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
