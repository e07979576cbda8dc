//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests against PostgreSQL.
// Run with: go test -tags=integration ./internal/loader/...
// Set PGEDGE_TEST_CONN environment variable to override connection string.

package loader_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pgEdge/pgedge-olist/internal/datagen"
	"github.com/pgEdge/pgedge-olist/internal/db"
	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/testutil"
)

// TestPostgresIntegration loads a generated snapshot into PostgreSQL,
// clears it and loads it again.
func TestPostgresIntegration(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewPostgresStore(t)

	dir := t.TempDir()
	expected, err := datagen.WriteSnapshot(dir, datagen.SnapshotConfig{Orders: 500, Seed: 1, ShortRowRate: 0.01})
	if err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	l := loader.New(st, loader.Options{DataDir: dir, BatchSize: 100, History: db.NewHistory(st)})

	for round := 1; round <= 2; round++ {
		if _, err := l.PopulateAll(ctx); err != nil {
			t.Fatalf("Round %d: load failed: %v", round, err)
		}
		for _, tbl := range olist.LoadOrder() {
			if got := testutil.CountRows(t, st, tbl.Name); got != expected[tbl.Name] {
				t.Errorf("Round %d: %s has %d rows, want %d", round, tbl.Name, got, expected[tbl.Name])
			}
		}

		s, err := l.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if s.Status != loader.Full {
			t.Errorf("Status = %s, want full", s.Status)
		}

		if _, err := l.ClearAll(ctx); err != nil {
			t.Fatalf("Round %d: clear failed: %v", round, err)
		}
	}

	runID, err := db.GetMetadataValue(ctx, st, db.KeyRunID)
	if err != nil || runID != l.RunID() {
		t.Errorf("run_id = %q (%v), want %q", runID, err, l.RunID())
	}
}

// TestPostgresForeignKeyViolation checks that loading a phase before its
// parents surfaces the server's foreign key error.
func TestPostgresForeignKeyViolation(t *testing.T) {
	ctx := context.Background()
	st := testutil.NewPostgresStore(t)

	dir := t.TempDir()
	if _, err := datagen.WriteSnapshot(dir, datagen.SnapshotConfig{Orders: 20, Seed: 5}); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}

	l := loader.New(st, loader.Options{DataDir: dir})
	_, err := l.PopulatePhase(ctx, 3)
	if err == nil {
		t.Fatal("expected phase 3 to fail without customers")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Errorf("expected foreign key violation (23503), got %v", err)
	}
	if n := testutil.CountRows(t, st, olist.Orders); n != 0 {
		t.Errorf("ORDERS has %d rows after failed load", n)
	}
}
