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
	"time"

	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
)

// TableCount pairs a table with a row count.
type TableCount struct {
	Table string
	Phase int
	Rows  int64
}

// ClearResult lists the rows deleted per table, in deletion order.
type ClearResult struct {
	Tables  []TableCount
	Elapsed time.Duration
}

// Rows returns the total number of rows deleted.
func (r *ClearResult) Rows() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// ClearAll deletes every row from the ten dataset tables, children before
// parents. Each DELETE commits on its own; the first failure stops the
// operation and tables already cleared stay cleared. The load history is
// not touched.
func (l *Loader) ClearAll(ctx context.Context) (*ClearResult, error) {
	start := time.Now()
	res := &ClearResult{}

	for _, name := range olist.ClearOrder() {
		n, err := l.st.Exec(ctx, "DELETE FROM "+name)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, &TableError{
				Op:    "clear",
				Phase: olist.PhaseOf(name),
				Table: name,
				Err:   fmt.Errorf("delete failed: %w", err),
			}
		}
		res.Tables = append(res.Tables, TableCount{Table: name, Phase: olist.PhaseOf(name), Rows: n})
		logging.Info().
			Str("table", name).
			Int64("rows", n).
			Msg("Table cleared")
	}

	res.Elapsed = time.Since(start)
	logging.Info().
		Int64("rows", res.Rows()).
		Dur("elapsed", res.Elapsed).
		Msg("All tables cleared")

	return res, nil
}
