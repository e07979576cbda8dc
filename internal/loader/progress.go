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
	"time"

	"github.com/pgEdge/pgedge-olist/internal/logging"
)

// Progress is a snapshot of one table load, emitted after every committed
// full batch and once when the table completes.
type Progress struct {
	Table      string
	Rows       int64
	Batches    int
	Elapsed    time.Duration
	RowsPerSec float64
	Done       bool
}

// ProgressFunc receives progress snapshots. It must not block for long;
// it runs on the loading goroutine between batches.
type ProgressFunc func(Progress)

// ProgressReporter tracks and reports load progress for one table.
type ProgressReporter struct {
	table   string
	start   time.Time
	rows    int64
	batches int
	notify  ProgressFunc
}

// NewProgressReporter creates a progress reporter; notify may be nil.
func NewProgressReporter(table string, notify ProgressFunc) *ProgressReporter {
	return &ProgressReporter{
		table:  table,
		start:  time.Now(),
		notify: notify,
	}
}

// Batch records a committed full batch and reports it.
func (p *ProgressReporter) Batch(rows int64) {
	p.rows += rows
	p.batches++

	snap := p.snapshot(false)
	logging.Info().
		Str("table", p.table).
		Int64("rows", snap.Rows).
		Int("batch", snap.Batches).
		Float64("rows_per_sec", snap.RowsPerSec).
		Msg("Batch committed")

	if p.notify != nil {
		p.notify(snap)
	}
}

// Add records rows committed by the final partial batch without logging.
func (p *ProgressReporter) Add(rows int64) {
	p.rows += rows
	p.batches++
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	snap := p.snapshot(true)
	logging.Info().
		Str("table", p.table).
		Int64("rows", snap.Rows).
		Dur("elapsed", snap.Elapsed).
		Float64("rows_per_sec", snap.RowsPerSec).
		Msg("Table complete")

	if p.notify != nil {
		p.notify(snap)
	}
}

// Rows returns the number of rows committed so far.
func (p *ProgressReporter) Rows() int64 {
	return p.rows
}

func (p *ProgressReporter) snapshot(done bool) Progress {
	elapsed := time.Since(p.start)
	var rate float64
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(p.rows) / secs
	}
	return Progress{
		Table:      p.table,
		Rows:       p.rows,
		Batches:    p.batches,
		Elapsed:    elapsed,
		RowsPerSec: rate,
		Done:       done,
	}
}
