// Package cmd implements the aliasim CLI commands.
package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/aliasim/internal/config"
	"github.com/theirongolddev/aliasim/internal/econ"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := flagConfig
	if path == "" {
		path = config.ConfigPath()
	}
	fmt.Printf("  Config file: %s\n", path)
	if flagConfig != "" || config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	model := cfg.CostModel()
	fmt.Println("  [Costs]")
	fmt.Printf("    Schema call:       %d tok\n", model.SchemaCallTokens)
	fmt.Printf("    Schema response:   %d tok\n", model.SchemaResponseTokens)
	fmt.Printf("    Result overhead:   %d tok\n", model.SchemaResultOverhead)
	fmt.Printf("    Round trip:        %d tok\n", model.SchemaRoundTrip())
	fmt.Printf("    Compact list/get:  %d / %d tok per query\n", model.CompactList, model.CompactGet)
	fmt.Printf("    JSON get:          %d tok per query\n", model.JSONGet)
	fmt.Printf("    JSON list:         %d tok per item, %d items avg\n", model.JSONListPerItem, model.AvgListItems)
	fmt.Println()

	fmt.Println("  [Mix]")
	fmt.Printf("    get=%.2f list=%.2f summary=%.2f other=%.2f\n",
		cfg.Mix.Get, cfg.Mix.List, cfg.Mix.Summary, cfg.Mix.Other)
	fmt.Println()

	fmt.Println("  [Grid]")
	fmt.Printf("    Session lengths: %s\n", joinInts(cfg.Grid.SessionLengths))
	fmt.Printf("    Eviction rates:  %s\n", joinEvictions(cfg.Grid.EvictionRates))
	fmt.Printf("    Formats:         %s\n", joinFormats(cfg.Grid.Formats))
	fmt.Println()

	fmt.Println("  [Corpus]")
	fmt.Printf("    Seed:   %d\n", cfg.Corpus.Seed)
	fmt.Printf("    Scales: %s\n", joinInts(cfg.Corpus.Scales))
	fmt.Println()

	fmt.Println("  Run `aliasim setup` to reconfigure.")
	return nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

func joinEvictions(es []econ.Eviction) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinFormats(fs []econ.Format) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
