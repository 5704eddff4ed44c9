package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/aliasim/internal/cli"
	"github.com/theirongolddev/aliasim/internal/store"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded simulation runs",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the stored results of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a recorded run and its results",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Maximum runs to list")
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	runs, err := st.ListRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("  No recorded runs.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Label,
			r.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(r.ScenarioCount),
			fmt.Sprintf("%d/%d", r.PositiveCount, r.ScenarioCount),
			strconv.Itoa(r.SchemaRoundTrip),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Run History",
		Headers: []string{"ID", "Label", "Created", "Scenarios", "Positive", "Round Trip"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	st, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	results, err := st.LoadResults(runID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("run %d not found", runID)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(r.SessionLength),
			r.Eviction.String(),
			string(r.Format),
			strconv.Itoa(r.SchemaCalls),
			strconv.Itoa(r.TotalSchemaCost),
			strconv.Itoa(r.TotalAliasSavings),
			cli.FormatSigned(r.NetBalance),
			r.BreakEven.String(),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Run %d", runID),
		Headers: []string{"Session", "Evict", "Format", "Calls", "Cost", "Savings", "Net", "Break-even"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	st, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteRun(runID); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Deleted run %d.\n", runID)
	}
	return nil
}
