//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package loader moves the Olist CSV files into a database: it streams each
// file through a batch writer, runs the tables in dependency phases, and
// clears them again in reverse order.
package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// HistoryRecorder persists the completion of a phase. Failures are logged
// and never fail a load.
type HistoryRecorder interface {
	RecordPhase(ctx context.Context, runID string, res *PhaseResult) error
}

// Options configures a Loader.
type Options struct {
	// DataDir holds the CSV files.
	DataDir string

	// BatchSize is the number of rows per transaction. Defaults to
	// DefaultBatchSize.
	BatchSize int

	// OnProgress, if set, receives progress snapshots.
	OnProgress ProgressFunc

	// History, if set, records completed phases.
	History HistoryRecorder
}

// Loader populates and clears the Olist tables over a single store.
type Loader struct {
	st    store.Store
	opts  Options
	runID string
}

// New creates a Loader. The store is owned by the caller.
func New(st store.Store, opts Options) *Loader {
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Loader{
		st:    st,
		opts:  opts,
		runID: uuid.NewString(),
	}
}

// RunID identifies this Loader's runs in the load history.
func (l *Loader) RunID() string {
	return l.runID
}

// PhaseResult summarises one phase.
type PhaseResult struct {
	Number  int
	Name    string
	Tables  []TableResult
	Elapsed time.Duration
}

// Rows returns the rows submitted across the phase's tables.
func (r *PhaseResult) Rows() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Result summarises a full population run.
type Result struct {
	RunID   string
	Phases  []PhaseResult
	Elapsed time.Duration
}

// Rows returns the rows submitted across all phases.
func (r *Result) Rows() int64 {
	var total int64
	for i := range r.Phases {
		total += r.Phases[i].Rows()
	}
	return total
}

// TableRows returns rows submitted keyed by table name.
func (r *Result) TableRows() map[string]int64 {
	counts := make(map[string]int64)
	for _, p := range r.Phases {
		for _, t := range p.Tables {
			counts[t.Table] = t.Rows
		}
	}
	return counts
}

// PopulatePhase loads every table of phase n (1-4) in order. The first
// failing table aborts the phase with a *TableError; tables completed
// before it are reported in the result.
func (l *Loader) PopulatePhase(ctx context.Context, n int) (*PhaseResult, error) {
	phase, err := olist.GetPhase(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPhase, n)
	}
	return l.populate(ctx, phase)
}

// PopulateAll runs phases 1-4 back to back. Committed data is left in
// place when a phase fails.
func (l *Loader) PopulateAll(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: l.runID}

	logging.Info().
		Str("run_id", l.runID).
		Str("data_dir", l.opts.DataDir).
		Int("batch_size", l.opts.BatchSize).
		Msg("Starting full load")

	for _, phase := range olist.Phases {
		pr, err := l.populate(ctx, phase)
		if pr != nil {
			res.Phases = append(res.Phases, *pr)
		}
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, err
		}
	}

	res.Elapsed = time.Since(start)
	logging.Info().
		Int64("rows", res.Rows()).
		Dur("elapsed", res.Elapsed).
		Msg("Full load complete")

	return res, nil
}

func (l *Loader) populate(ctx context.Context, phase olist.Phase) (*PhaseResult, error) {
	start := time.Now()
	res := &PhaseResult{Number: phase.Number, Name: phase.Name}

	logging.Info().
		Int("phase", phase.Number).
		Str("name", phase.Name).
		Msg("Starting phase")

	for _, tbl := range phase.Tables {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(start)
			return res, &TableError{Op: "load", Phase: phase.Number, Table: tbl.Name, Err: err}
		}

		tr, err := LoadTable(ctx, l.st, tbl, l.opts.DataDir, l.opts.BatchSize, l.opts.OnProgress)
		if err != nil {
			res.Elapsed = time.Since(start)
			logging.Error().
				Err(err).
				Int("phase", phase.Number).
				Str("table", tbl.Name).
				Msg("Table load failed")
			return res, &TableError{Op: "load", Phase: phase.Number, Table: tbl.Name, Err: err}
		}
		res.Tables = append(res.Tables, *tr)
	}

	res.Elapsed = time.Since(start)
	logging.Info().
		Int("phase", phase.Number).
		Int64("rows", res.Rows()).
		Dur("elapsed", res.Elapsed).
		Msg("Phase complete")

	if l.opts.History != nil {
		if err := l.opts.History.RecordPhase(ctx, l.runID, res); err != nil {
			logging.Warn().
				Err(err).
				Int("phase", phase.Number).
				Msg("Failed to record load history")
		}
	}

	return res, nil
}
