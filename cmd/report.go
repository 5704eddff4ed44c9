package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/aliasim/internal/grid"
	"github.com/theirongolddev/aliasim/internal/report"

	"github.com/spf13/cobra"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the full Markdown and JSON report",
	Long: "Evaluate the scenario grid and write results.md (Markdown report with\n" +
		"per-format tables, head-to-head comparison and analysis) plus results.json\n" +
		"(machine-readable results) to the output directory.",
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", ".", "Output directory")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model := cfg.CostModel()
	mix := cfg.QueryMix()
	g := scenarioGrid(cfg)

	results := grid.Evaluate(model, mix, g, gridProgress())

	if err := os.MkdirAll(flagReportOut, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	mdPath := filepath.Join(flagReportOut, "results.md")
	md := report.Markdown(model, mix, g, results, time.Now())
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mdPath, err)
	}

	jsonPath := filepath.Join(flagReportOut, "results.json")
	f, err := os.Create(jsonPath)
	if err != nil {
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	if err := report.WriteJSON(f, results); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Printf("  Wrote %s (%d scenarios)\n", mdPath, len(results))
		fmt.Printf("  Wrote %s\n", jsonPath)
	}

	recordRun("report", model, results)
	return nil
}
