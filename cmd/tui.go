package cmd

import (
	"github.com/theirongolddev/aliasim/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive results browser",
	Long: "Browse the evaluated scenario grid in a full-screen terminal UI with\n" +
		"tabs for each output format, the head-to-head comparison, and the\n" +
		"cost-model constants.",
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return tui.Run(cfg)
}
