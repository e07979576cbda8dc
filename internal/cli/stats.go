//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-olist/internal/db"
	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show row counts and load completeness",
	Long: `Count the rows of every Olist table, grouped by load phase, and report
whether the dataset is empty, partially loaded (naming the incomplete
phases) or fully loaded, together with the last recorded load run.`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	s, err := loader.New(st, loader.Options{}).Stats(ctx)
	if err != nil {
		return err
	}

	meta, err := db.GetAllMetadata(ctx, st)
	if err != nil {
		logging.Debug().Err(err).Msg("No load history available")
		meta = nil
	}

	printStats(cmd.OutOrStdout(), s, meta)
	return nil
}

func printStats(w io.Writer, s *loader.Stats, meta map[string]string) {
	p := newPrinter()

	for _, phase := range olist.Phases {
		p.Fprintf(w, "Phase %d (%s)\n", phase.Number, phase.Name)
		for _, t := range s.Phase(phase.Number) {
			p.Fprintf(w, "  %-15s %12d\n", t.Table, t.Rows)
		}
	}
	p.Fprintln(w)
	p.Fprintf(w, "Total rows: %d\n", s.Total)

	switch s.Status {
	case loader.Partial:
		phases := make([]string, len(s.IncompletePhases))
		for i, n := range s.IncompletePhases {
			phases[i] = strconv.Itoa(n)
		}
		p.Fprintf(w, "Status: partial (incomplete phases: %s)\n", strings.Join(phases, ", "))
	case loader.Empty:
		p.Fprintf(w, "Status: empty (run 'pgedge-olist load')\n")
	default:
		p.Fprintf(w, "Status: %s\n", s.Status)
	}

	if runID := meta[db.KeyRunID]; runID != "" {
		p.Fprintf(w, "Last run: %s", runID)
		if last := meta[db.KeyLastPhase]; last != "" {
			if n, err := strconv.Atoi(last); err == nil {
				p.Fprintf(w, " (phase %d completed %s)", n, meta[db.PhaseKey(n)])
			}
		}
		p.Fprintln(w)
	}
}
