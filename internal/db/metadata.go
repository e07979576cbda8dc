//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
	"github.com/pgEdge/pgedge-olist/pkg/version"
)

// Metadata keys.
const (
	KeyRunID     = "run_id"
	KeyVersion   = "version"
	KeyLastPhase = "last_phase"
)

// PhaseKey is the key holding the completion time of phase n.
func PhaseKey(n int) string {
	return "phase." + strconv.Itoa(n) + ".completed_at"
}

// RowsKey is the key holding the rows loaded into table by the last run.
func RowsKey(table string) string {
	return "table." + table + ".rows"
}

// ChecksumKey is the key holding the source fingerprint of table.
func ChecksumKey(table string) string {
	return "table." + table + ".checksum"
}

// SaveMetadata upserts values into the metadata table in one transaction.
// The table is created by olist.CreateSchema.
func SaveMetadata(ctx context.Context, st store.Store, values map[string]string) error {
	d := st.Dialect()
	del := fmt.Sprintf(`DELETE FROM %s WHERE "key" = %s`, olist.MetadataTable, d.Placeholder(1))
	ins := fmt.Sprintf(`INSERT INTO %s ("key", "value") VALUES (%s, %s)`,
		olist.MetadataTable, d.Placeholder(1), d.Placeholder(2))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := st.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin metadata transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logging.Warn().Err(rbErr).Msg("Metadata rollback failed")
		}
	}()

	for _, k := range keys {
		if _, err := tx.Exec(ctx, del, k); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", k, err)
		}
		if _, err := tx.Exec(ctx, ins, k, values[k]); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", k, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit metadata: %w", err)
	}

	logging.Debug().
		Int("keys", len(keys)).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, st store.Store, key string) (string, error) {
	var value string
	err := st.QueryRow(ctx,
		fmt.Sprintf(`SELECT "value" FROM %s WHERE "key" = %s`, olist.MetadataTable, st.Dialect().Placeholder(1)),
		key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, st store.Store) (map[string]string, error) {
	rows, err := st.Query(ctx, fmt.Sprintf(`SELECT "key", "value" FROM %s`, olist.MetadataTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// History records completed load phases in the metadata table.
type History struct {
	st  store.Store
	now func() time.Time
}

// NewHistory creates a History writing through st.
func NewHistory(st store.Store) *History {
	return &History{st: st, now: time.Now}
}

// RecordPhase implements loader.HistoryRecorder.
func (h *History) RecordPhase(ctx context.Context, runID string, res *loader.PhaseResult) error {
	values := map[string]string{
		KeyRunID:     runID,
		KeyVersion:   version.Short(),
		KeyLastPhase: strconv.Itoa(res.Number),
	}
	values[PhaseKey(res.Number)] = h.now().UTC().Format(time.RFC3339)
	for _, t := range res.Tables {
		values[RowsKey(t.Table)] = strconv.FormatInt(t.Rows, 10)
		if t.Checksum != "" {
			values[ChecksumKey(t.Table)] = t.Checksum
		}
	}
	return SaveMetadata(ctx, h.st, values)
}
