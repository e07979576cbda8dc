//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// DefaultBatchSize is the number of rows committed per transaction.
const DefaultBatchSize = 5000

// BatchWriter accumulates rows for one table and commits them in
// fixed-size batches, one transaction per batch.
//
// A failed batch is rolled back and returned as a *BatchError; batches
// committed before it stay committed. Every batch transaction is finished
// before Write or Flush returns, so the connection is never left inside an
// open transaction.
type BatchWriter struct {
	st        store.Store
	table     string
	columns   []string
	size      int
	rows      [][]any
	batches   int
	committed int64
	progress  *ProgressReporter
}

// NewBatchWriter creates a writer for table. A size below 1 uses
// DefaultBatchSize. progress may be nil.
func NewBatchWriter(st store.Store, table string, columns []string, size int, progress *ProgressReporter) *BatchWriter {
	if size < 1 {
		size = DefaultBatchSize
	}
	if progress == nil {
		progress = NewProgressReporter(table, nil)
	}
	return &BatchWriter{
		st:       st,
		table:    table,
		columns:  columns,
		size:     size,
		rows:     make([][]any, 0, size),
		progress: progress,
	}
}

// Write queues one row and commits the batch when it reaches the batch
// size. Cancellation of ctx is honoured only here, at a batch boundary: the
// queued rows are discarded and ctx's error returned.
func (w *BatchWriter) Write(ctx context.Context, row []any) error {
	w.rows = append(w.rows, row)
	if len(w.rows) < w.size {
		return nil
	}
	if err := w.flush(ctx); err != nil {
		return err
	}
	w.progress.Batch(int64(w.size))
	return nil
}

// Flush commits any queued rows as a final, possibly short, batch.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.rows) == 0 {
		return nil
	}
	n := len(w.rows)
	if err := w.flush(ctx); err != nil {
		return err
	}
	w.progress.Add(int64(n))
	return nil
}

// Committed returns the rows committed so far.
func (w *BatchWriter) Committed() int64 {
	return w.committed
}

// Pending returns the rows queued but not yet committed.
func (w *BatchWriter) Pending() int {
	return len(w.rows)
}

func (w *BatchWriter) flush(ctx context.Context) error {
	n := len(w.rows)
	defer func() { w.rows = w.rows[:0] }()

	if err := ctx.Err(); err != nil {
		logging.Warn().
			Str("table", w.table).
			Int("discarded_rows", n).
			Msg("Load cancelled at batch boundary")
		return fmt.Errorf("load of %s cancelled: %w", w.table, err)
	}

	w.batches++

	// A batch in flight is not interrupted by cancellation.
	if err := w.commitBatch(context.WithoutCancel(ctx)); err != nil {
		return &BatchError{
			Table:  w.table,
			Batch:  w.batches,
			Offset: w.committed,
			Size:   n,
			Err:    err,
		}
	}

	w.committed += int64(n)
	return nil
}

func (w *BatchWriter) commitBatch(ctx context.Context) error {
	tx, err := w.st.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		// A failed rollback is reported but never replaces the cause.
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logging.Error().
				Err(rbErr).
				Str("table", w.table).
				Int("batch", w.batches).
				Msg("Rollback failed")
		}
	}()

	if _, err := store.InsertRows(ctx, tx, w.st.Dialect(), w.table, w.columns, w.rows); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	done = true

	logging.Debug().
		Str("table", w.table).
		Int("batch", w.batches).
		Int("rows", len(w.rows)).
		Msg("Batch flushed")

	return nil
}
