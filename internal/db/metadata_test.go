//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-olist/internal/config"
	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/testutil"
	"github.com/pgEdge/pgedge-olist/pkg/version"
)

func TestSaveAndGetMetadata(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)

	require.NoError(t, SaveMetadata(ctx, st, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, SaveMetadata(ctx, st, map[string]string{"b": "3"}))

	v, err := GetMetadataValue(ctx, st, "b")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	_, err = GetMetadataValue(ctx, st, "missing")
	assert.Error(t, err)

	all, err := GetAllMetadata(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, all)
}

func TestHistoryRecordPhase(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)

	h := NewHistory(st)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	err := h.RecordPhase(ctx, "run-1", &loader.PhaseResult{
		Number: 1,
		Name:   "reference",
		Tables: []loader.TableResult{
			{Table: olist.States, Rows: 27},
			{Table: olist.Categories, Rows: 71, Checksum: "00000000deadbeef"},
		},
	})
	require.NoError(t, err)

	all, err := GetAllMetadata(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "run-1", all[KeyRunID])
	assert.Equal(t, version.Short(), all[KeyVersion])
	assert.Equal(t, "1", all[KeyLastPhase])
	assert.Equal(t, "2026-03-01T12:00:00Z", all[PhaseKey(1)])
	assert.Equal(t, "27", all[RowsKey(olist.States)])
	assert.Equal(t, "71", all[RowsKey(olist.Categories)])
	assert.Equal(t, "00000000deadbeef", all[ChecksumKey(olist.Categories)])
	_, ok := all[ChecksumKey(olist.States)]
	assert.False(t, ok, "static tables have no checksum")
}

func TestHistoryWithoutMetadataTable(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewSQLiteStore(t)
	_, err := st.Exec(ctx, "DROP TABLE "+olist.MetadataTable)
	require.NoError(t, err)

	err = NewHistory(st).RecordPhase(ctx, "run-1", &loader.PhaseResult{Number: 1})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Driver = "sqlite"
	cfg.Connection = filepath.Join(t.TempDir(), "olist.db")

	st, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer st.Close(ctx)
	assert.Equal(t, "sqlite", st.Dialect().Name())
}

func TestOpenInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := Open(context.Background(), cfg)
	assert.Error(t, err, "connection is required")

	cfg.Connection = "x"
	cfg.Driver = "oracle"
	_, err = Open(context.Background(), cfg)
	assert.Error(t, err)
}
