package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-olist/internal/db"
	"github.com/pgEdge/pgedge-olist/internal/loader"
	"github.com/pgEdge/pgedge-olist/internal/olist"
)

// clearConfirmation must be typed to confirm an interactive clear.
const clearConfirmation = "DELETE ALL DATA"

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every row from the Olist tables",
	Long: `Delete all rows from the ten Olist tables, dependents first, so that
the dataset can be loaded again. Tables keep their structure and the load
history is kept. You are asked to type '` + clearConfirmation + `' unless
--yes is given.`,
	RunE: runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false,
		"skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !clearYes {
		ok, err := confirmClear(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Clear cancelled.")
			return nil
		}
	}

	ctx := context.Background()
	st, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	res, err := loader.New(st, loader.Options{}).ClearAll(ctx)
	if res != nil {
		printClearSummary(cmd.OutOrStdout(), res)
	}
	return err
}

// confirmClear asks for the confirmation phrase on out and reads it from in.
func confirmClear(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprintf(out, "This deletes every row from all %d Olist tables.\n", len(olist.ClearOrder()))
	fmt.Fprintf(out, "Type '%s' to confirm: ", clearConfirmation)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == clearConfirmation, nil
}

func printClearSummary(w io.Writer, res *loader.ClearResult) {
	p := newPrinter()
	for _, t := range res.Tables {
		p.Fprintf(w, "  %-15s %12d rows deleted\n", t.Table, t.Rows)
	}
	p.Fprintf(w, "Total: %d rows deleted\n", res.Rows())
}
