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

	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// Completeness summarises how much of the dataset is present.
type Completeness string

const (
	Empty   Completeness = "empty"
	Partial Completeness = "partial"
	Full    Completeness = "full"
)

// Stats holds per-table row counts in load order.
type Stats struct {
	Tables []TableCount
	Total  int64
	Status Completeness

	// IncompletePhases lists phases with at least one empty table. Nil
	// when Status is Full.
	IncompletePhases []int
}

// Phase returns the counts of the tables loaded by phase n.
func (s *Stats) Phase(n int) []TableCount {
	var out []TableCount
	for _, t := range s.Tables {
		if t.Phase == n {
			out = append(out, t)
		}
	}
	return out
}

// CountRows returns the number of rows in table.
func CountRows(ctx context.Context, st store.Store, table string) (int64, error) {
	var n int64
	if err := st.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// Stats counts the rows of every dataset table and derives completeness.
func (l *Loader) Stats(ctx context.Context) (*Stats, error) {
	s := &Stats{}
	empty := 0
	incomplete := make(map[int]bool)

	for _, phase := range olist.Phases {
		for _, tbl := range phase.Tables {
			n, err := CountRows(ctx, l.st, tbl.Name)
			if err != nil {
				return nil, err
			}
			s.Tables = append(s.Tables, TableCount{Table: tbl.Name, Phase: phase.Number, Rows: n})
			s.Total += n
			if n == 0 {
				empty++
				if !incomplete[phase.Number] {
					incomplete[phase.Number] = true
					s.IncompletePhases = append(s.IncompletePhases, phase.Number)
				}
			}
		}
	}

	switch empty {
	case 0:
		s.Status = Full
	case len(s.Tables):
		s.Status = Empty
	default:
		s.Status = Partial
	}
	return s, nil
}
