// Package main is the entry point for pgedge-olist.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-olist/internal/cli"

	// Register storage backends
	_ "github.com/pgEdge/pgedge-olist/internal/store/postgres"
	_ "github.com/pgEdge/pgedge-olist/internal/store/sqlite"
	_ "github.com/pgEdge/pgedge-olist/internal/store/sqlserver"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
