package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-olist/internal/db"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/pkg/version"
)

var initDropExisting bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Olist schema",
	Long: `Create the ten Olist tables, with their keys and foreign keys, and the
load history table. Existing tables are left alone unless --drop-existing
is given, in which case they are dropped (with their data) first.

Example:
  pgedge-olist init --driver postgres --connection "postgres://..."
  pgedge-olist init --driver sqlite --connection olist.db --drop-existing`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing tables before creating them")
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(ctx)

	if initDropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := olist.DropSchema(ctx, st); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Msg("Creating schema")
	if err := olist.CreateSchema(ctx, st); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.SaveMetadata(ctx, st, map[string]string{
		"initialized_at": time.Now().UTC().Format(time.RFC3339),
		"driver":         cfg.Driver,
		db.KeyVersion:    version.Short(),
	}); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().Msg("Schema initialization complete")
	return nil
}
