package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"PoolKeeper/internal/catalog"
	"PoolKeeper/internal/pool"
)

var (
	// Global flags
	catalogPath string
	output      string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "poolctl",
	Short: "Inspect and simulate the motivation pool",
	Long: `poolctl runs the pool engine outside the bot.

Simulation:
  morning    Morning level for a sleep report
  classify   How an activity name resolves in the drain catalog

State and history:
  current    Current level of the saved day, term by term
  capacity   Capacity expansion from recorded exercise
  assess     Dysregulation tier from recorded usage`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog override file (default: built-in tables)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (json, table, yaml)")
}

func loadEngine() (*pool.Engine, error) {
	c, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cfg := pool.DefaultConfig()
	cfg.Catalog = c
	return pool.New(cfg)
}

// render writes v in the selected structured format, or calls table for the
// default human-readable output.
func render(w io.Writer, v any, table func(io.Writer)) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return yaml.NewEncoder(w).Encode(v)
	case "table", "":
		table(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
