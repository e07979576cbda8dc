//-------------------------------------------------------------------------
//
// pgEdge Olist Loader
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-olist.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pgEdge/pgedge-olist/internal/config"
	"github.com/pgEdge/pgedge-olist/internal/logging"
	"github.com/pgEdge/pgedge-olist/internal/olist"
	"github.com/pgEdge/pgedge-olist/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	driver     string
	connection string
	dataDir    string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-olist",
		Short: "Bulk loader for the Olist Brazilian e-commerce dataset",
		Long: `pgedge-olist loads the public Olist Brazilian e-commerce CSV snapshot
into a relational database (PostgreSQL, SQLite or SQL Server).

Tables are loaded in four dependency phases so that foreign keys are always
satisfied, in batches of rows committed one transaction at a time. The
tables can be cleared again in reverse order and reloaded.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-olist.yaml)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"storage driver ("+strings.Join(config.Drivers, ", ")+")")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"driver-specific connection string")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory holding the Olist CSV files")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sampleCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if driver != "" {
		cfg.Driver = driver
	}
	if connection != "" {
		cfg.Connection = connection
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// newPrinter returns a printer that groups digits in counts.
func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the load phases and their tables",
	Long: `List the ten Olist tables in load order, grouped by phase, with the
CSV file each one is read from. Clearing runs in the exact reverse order.`,
	Run: func(cmd *cobra.Command, args []string) {
		p := newPrinter()
		out := cmd.OutOrStdout()
		for _, phase := range olist.Phases {
			p.Fprintf(out, "Phase %d (%s)\n", phase.Number, phase.Name)
			for _, t := range phase.Tables {
				source := t.File
				if source == "" {
					source = p.Sprintf("(%d built-in rows)", len(t.Static))
				}
				p.Fprintf(out, "  %-15s %-40s %d columns\n", t.Name, source, t.Width())
			}
			p.Fprintln(out)
		}
		p.Fprintf(out, "Clear order: %s\n", strings.Join(olist.ClearOrder(), ", "))
	},
}
