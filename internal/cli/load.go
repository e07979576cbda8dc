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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-olist/internal/db"
	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/logging"
)

var (
	loadPhase     int
	loadBatchSize int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the Olist CSV files into the database",
	Long: `Load the Olist CSV snapshot from the data directory. Without --phase all
four phases run in order:

  1 reference     STATES, CATEGORIES, GEOLOCATION
  2 entity        CUSTOMERS, SELLERS, PRODUCTS
  3 transaction   ORDERS
  4 relationship  ORDER_ITEMS, ORDER_PAYMENTS, ORDER_REVIEWS

Rows are committed in batches; a failed batch is rolled back and stops the
load, leaving earlier batches in place. Tables must be empty: run 'clear'
before loading again. Ctrl+C stops the load at the next batch boundary.

Example:
  pgedge-olist load --driver sqlite --connection olist.db --data-dir ./data
  pgedge-olist load --phase 1 --batch-size 10000`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&loadPhase, "phase", 0,
		"load a single phase (1-4) instead of all phases")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0,
		"rows committed per transaction (default: 5000)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadPhase != 0 {
		cfg.Load.Phase = loadPhase
	}
	if loadBatchSize > 0 {
		cfg.Load.BatchSize = loadBatchSize
	}

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal; stopping after the current batch")
			cancel()
		case <-ctx.Done():
		}
	}()

	// The store outlives ctx so it can be closed after cancellation.
	st, err := db.Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	l := loader.New(st, loader.Options{
		DataDir:   cfg.DataDir,
		BatchSize: cfg.Load.BatchSize,
		History:   db.NewHistory(st),
	})

	start := time.Now()
	var phases []loader.PhaseResult
	if cfg.Load.Phase > 0 {
		res, err := l.PopulatePhase(ctx, cfg.Load.Phase)
		if res != nil {
			phases = append(phases, *res)
		}
		printLoadSummary(cmd.OutOrStdout(), l.RunID(), phases, time.Since(start))
		return err
	}

	res, err := l.PopulateAll(ctx)
	if res != nil {
		phases = res.Phases
	}
	printLoadSummary(cmd.OutOrStdout(), l.RunID(), phases, time.Since(start))
	return err
}

func printLoadSummary(w io.Writer, runID string, phases []loader.PhaseResult, elapsed time.Duration) {
	p := newPrinter()
	var total int64
	p.Fprintf(w, "Load run %s\n", runID)
	for _, phase := range phases {
		p.Fprintf(w, "Phase %d (%s): %d rows in %s\n",
			phase.Number, phase.Name, phase.Rows(), phase.Elapsed.Round(time.Millisecond))
		for _, t := range phase.Tables {
			p.Fprintf(w, "  %-15s %12d rows", t.Table, t.Rows)
			if t.Skipped > 0 {
				p.Fprintf(w, "  (%d short lines skipped)", t.Skipped)
			}
			p.Fprintln(w)
		}
		total += phase.Rows()
	}
	p.Fprintf(w, "Total: %d rows in %s\n", total, elapsed.Round(time.Millisecond))
}
