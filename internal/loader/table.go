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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/pgEdge/pgedge-olist/internal/csvline"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/internal/store"
)

// maxLineSize bounds a single CSV line. Review messages are the longest
// fields in the dataset and stay well below this.
const maxLineSize = 4 * 1024 * 1024

// TableResult describes one completed (or partially completed) table load.
type TableResult struct {
	Table string
	Phase int

	// Rows is the number of rows submitted to the batch writer.
	Rows int64

	// Skipped counts data lines with fewer fields than the table needs.
	Skipped int64

	Elapsed time.Duration

	// Checksum is the xxh3 fingerprint of the source file, empty for
	// tables with static rows.
	Checksum string
}

// LoadTable streams one table's rows into st in batches of batchSize.
// CSV-driven tables read dataDir/<file>, skip the header line, and submit
// the first Width() normalized fields of every line that has at least that
// many; shorter lines are counted in Skipped. On error the result reports
// what was submitted before the failure.
func LoadTable(ctx context.Context, st store.Store, tbl olist.Table, dataDir string, batchSize int, notify ProgressFunc) (*TableResult, error) {
	start := time.Now()
	res := &TableResult{Table: tbl.Name, Phase: olist.PhaseOf(tbl.Name)}

	progress := NewProgressReporter(tbl.Name, notify)
	w := NewBatchWriter(st, tbl.Name, tbl.Columns, batchSize, progress)

	var err error
	if tbl.File == "" {
		logging.Info().
			Str("table", tbl.Name).
			Int("rows", len(tbl.Static)).
			Msg("Loading static rows")
		err = loadStatic(ctx, w, tbl, res)
	} else {
		path := filepath.Join(dataDir, tbl.File)
		logging.Info().
			Str("table", tbl.Name).
			Str("file", path).
			Msg("Loading table")
		err = loadFile(ctx, w, tbl, path, res)
	}
	res.Elapsed = time.Since(start)
	if err != nil {
		return res, err
	}

	progress.Done()
	return res, nil
}

func loadStatic(ctx context.Context, w *BatchWriter, tbl olist.Table, res *TableResult) error {
	n := tbl.Width()
	for _, fields := range tbl.Static {
		if len(fields) < n {
			res.Skipped++
			continue
		}
		if err := w.Write(ctx, csvline.NormalizeRow(fields, n)); err != nil {
			return err
		}
		res.Rows++
	}
	return w.Flush(ctx)
}

func loadFile(ctx context.Context, w *BatchWriter, tbl olist.Table, path string, res *TableResult) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	hash := xxh3.New()
	scanner := bufio.NewScanner(io.TeeReader(f, hash))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := tbl.Width()
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}

		// ScanLines already drops a trailing \r.
		fields := csvline.Split(scanner.Text())
		if len(fields) < n {
			res.Skipped++
			logging.Debug().
				Str("table", tbl.Name).
				Int("line", lineNo).
				Int("fields", len(fields)).
				Int("want", n).
				Msg("Skipping short row")
			continue
		}

		if err := w.Write(ctx, csvline.NormalizeRow(fields, n)); err != nil {
			return err
		}
		res.Rows++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s at line %d: %w", path, lineNo+1, err)
	}

	if err := w.Flush(ctx); err != nil {
		return err
	}

	res.Checksum = fmt.Sprintf("%016x", hash.Sum64())
	if res.Skipped > 0 {
		logging.Debug().
			Str("table", tbl.Name).
			Int64("skipped", res.Skipped).
			Msg("Short rows skipped")
	}
	return nil
}
