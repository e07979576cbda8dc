//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides database fixtures for unit and integration
// tests.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
	"github.com/pgEdge/pgedge-olist/internal/store/postgres"
	"github.com/pgEdge/pgedge-olist/internal/store/sqlite"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with PGEDGE_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for test databases.
	TestDBPrefix = "olist_test_"
)

// NewSQLiteStore opens a fresh SQLite database in a temporary directory,
// with foreign keys enforced and the Olist schema created. It is closed
// when the test ends.
func NewSQLiteStore(t *testing.T) store.Store {
	t.Helper()

	ctx := context.Background()
	st, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "olist.db"))
	if err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	if err := olist.CreateSchema(ctx, st); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return st
}

// WriteCSV writes a CSV file made of header and lines into dir.
func WriteCSV(t *testing.T, dir, name, header string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := header + "\n" + strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// CountRows returns the number of rows in table, failing the test on error.
func CountRows(t *testing.T, st store.Store, table string) int64 {
	t.Helper()

	var n int64
	if err := st.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("PGEDGE_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return ""
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// CreateTestDB creates a test database and returns its connection string
// and name.
func CreateTestDB(t *testing.T, baseConnStr string) (string, string) {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	dbName := TestDBPrefix + hex.EncodeToString(randomBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// ConnString() doesn't reflect changes made to Database, so build
	// the new connection string by hand.
	config := conn.Config()
	var testConnStr string
	if config.Password != "" {
		testConnStr = fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			config.User, config.Password, config.Host, config.Port, dbName)
	} else {
		testConnStr = fmt.Sprintf("postgres://%s@%s:%d/%s",
			config.User, config.Host, config.Port, dbName)
	}

	return testConnStr, dbName
}

// DropTestDB drops the test database.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", dbName))
	if err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}

// NewPostgresStore creates a scratch database with the Olist schema and
// returns a store connected to it. The database is dropped when the test
// ends, unless the test failed; it is then kept for diagnostics.
func NewPostgresStore(t *testing.T) store.Store {
	t.Helper()

	baseConnStr := SkipIfNoPostgres(t)
	connStr, dbName := CreateTestDB(t, baseConnStr)

	ctx := context.Background()
	st, err := postgres.Open(ctx, connStr)
	if err != nil {
		DropTestDB(t, baseConnStr, dbName)
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		_ = st.Close(ctx)
		if t.Failed() {
			t.Logf("Test failed - keeping database %s for diagnostics", dbName)
			return
		}
		DropTestDB(t, baseConnStr, dbName)
	})

	if err := olist.CreateSchema(ctx, st); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return st
}
