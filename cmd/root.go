package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/aliasim/internal/config"
	"github.com/theirongolddev/aliasim/internal/econ"
	"github.com/theirongolddev/aliasim/internal/grid"
	"github.com/theirongolddev/aliasim/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagQuiet     bool
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "aliasim",
	Short: "Field-alias token economics simulator",
	Long: "Model whether abbreviated field-name aliases pay for themselves across\n" +
		"agent sessions, given the recurring cost of re-fetching the alias schema\n" +
		"after context eviction.",
	RunE: runSimulate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: XDG config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording the run in the history database")
}

// loadConfig is the shared configuration loading path used by all commands.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}

// saveConfig writes back to the same file loadConfig read from.
func saveConfig(cfg config.Config) error {
	return config.Save(cfg, flagConfig)
}

// scenarioGrid builds the evaluation grid from the configured axes.
func scenarioGrid(cfg config.Config) grid.Grid {
	return grid.Grid{
		SessionLengths: cfg.Grid.SessionLengths,
		Evictions:      cfg.Grid.EvictionRates,
		Formats:        cfg.Grid.Formats,
	}
}

// recordRun stores an evaluated grid in the history database. History is
// best-effort: a broken database warns instead of failing the command.
func recordRun(label string, model econ.CostModel, results []econ.Result) {
	if flagNoHistory {
		return
	}

	st, err := store.Open(store.DefaultPath())
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  History unavailable: %v\n", err)
		}
		return
	}
	defer func() { _ = st.Close() }()

	if _, err := st.SaveRun(label, model, results); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Could not record run: %v\n", err)
	}
}
