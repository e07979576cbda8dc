//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-olist/internal/store"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "olist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)", withForeignKeys("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_pragma=foreign_keys(1)", withForeignKeys("file:a.db?mode=rwc"))
	assert.Equal(t, "a.db?_pragma=foreign_keys(0)", withForeignKeys("a.db?_pragma=foreign_keys(0)"))
}

func TestOpenEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, store.Drivers(), DriverName)
}

func TestForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	_, err := st.Exec(ctx, `CREATE TABLE parent (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = st.Exec(ctx, `CREATE TABLE child (id TEXT PRIMARY KEY, parent_id TEXT NOT NULL REFERENCES parent(id))`)
	require.NoError(t, err)

	_, err = st.Exec(ctx, `INSERT INTO child (id, parent_id) VALUES (?, ?)`, "c1", "missing")
	assert.Error(t, err, "insert referencing a missing parent must fail")
}

func TestTransactionCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	_, err := st.Exec(ctx, `CREATE TABLE t (v TEXT)`)
	require.NoError(t, err)

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	_, err = store.InsertRows(ctx, tx, st.Dialect(), "t", []string{"v"}, [][]any{{"a"}, {"b"}, {nil}})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	var n int64
	require.NoError(t, st.QueryRow(ctx, `SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Zero(t, n)

	tx, err = st.Begin(ctx)
	require.NoError(t, err)
	_, err = store.InsertRows(ctx, tx, st.Dialect(), "t", []string{"v"}, [][]any{{"a"}, {nil}})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx), "rollback after commit is a no-op")

	require.NoError(t, st.QueryRow(ctx, `SELECT COUNT(*) FROM t WHERE v IS NULL`).Scan(&n))
	assert.Equal(t, int64(1), n)
}

func TestInsertRowsAboveRowCap(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	_, err := st.Exec(ctx, `CREATE TABLE t (a TEXT, b TEXT)`)
	require.NoError(t, err)

	rows := make([][]any, 1203)
	for i := range rows {
		rows[i] = []any{"x", "y"}
	}
	n, err := store.InsertRows(ctx, st, st.Dialect(), "t", []string{"a", "b"}, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(1203), n)
}
