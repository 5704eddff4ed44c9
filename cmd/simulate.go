package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/aliasim/internal/cli"
	"github.com/theirongolddev/aliasim/internal/econ"
	"github.com/theirongolddev/aliasim/internal/grid"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	flagSession int
	flagEvict   string
	flagFormat  string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Evaluate session economics over the scenario grid",
	Long: "Run the cost model over every configured scenario and print per-format\n" +
		"tables plus a head-to-head comparison. With --session/--evict/--format,\n" +
		"evaluate a single scenario and show its per-query-type breakdown.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSession, "session", 0, "Single scenario: session length in data queries")
	simulateCmd.Flags().StringVar(&flagEvict, "evict", "", "Single scenario: eviction cadence (e.g. 10, or \"never\")")
	simulateCmd.Flags().StringVar(&flagFormat, "format", "", "Single scenario: output format (compact or json)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	model := cfg.CostModel()
	mix := cfg.QueryMix()

	if flagSession > 0 || flagEvict != "" || flagFormat != "" {
		return runSingleScenario(model, mix)
	}

	g := scenarioGrid(cfg)
	results := grid.Evaluate(model, mix, g, gridProgress())

	fmt.Println(cli.RenderTitle("Session Economics"))
	for _, format := range g.Formats {
		printFormatTable(format, results)
	}
	printHeadToHead(g, results)

	recordRun("simulate", model, results)
	return nil
}

func runSingleScenario(model econ.CostModel, mix econ.QueryMix) error {
	if flagSession <= 0 {
		return fmt.Errorf("--session must be a positive query count")
	}
	eviction := econ.EvictNever()
	if flagEvict != "" {
		var err error
		eviction, err = econ.ParseEviction(flagEvict)
		if err != nil {
			return err
		}
	}
	format := econ.FormatCompact
	if flagFormat != "" {
		var err error
		format, err = econ.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
	}

	res := econ.Simulate(model, mix, econ.Scenario{
		SessionLength: flagSession,
		Eviction:      eviction,
		Format:        format,
	})

	fmt.Println(cli.RenderTitle(fmt.Sprintf("Scenario: %d queries, evict %s, %s", res.SessionLength, res.Eviction, res.Format)))
	fmt.Println(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Schema calls", strconv.Itoa(res.SchemaCalls)},
			{"Schema cost", fmt.Sprintf("%d tok", res.TotalSchemaCost)},
			{"Alias savings", fmt.Sprintf("%d tok", res.TotalAliasSavings)},
			{"Net balance", fmt.Sprintf("%s tok", cli.FormatSigned(res.NetBalance))},
			{"Avg saving/query", fmt.Sprintf("%.2f tok", res.AvgSavingPerQuery)},
			{"Break-even", res.BreakEven.String()},
		},
	}))

	rows := make([][]string, 0, len(res.Breakdown))
	for _, row := range res.Breakdown {
		rows = append(rows, []string{
			string(row.Type),
			strconv.Itoa(row.Count),
			strconv.Itoa(row.PerQuery),
			strconv.Itoa(row.Subtotal),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Query Breakdown",
		Headers: []string{"Type", "Count", "Per Query", "Subtotal"},
		Rows:    rows,
	}))
	return nil
}

func printFormatTable(format econ.Format, results []econ.Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Format != format {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(r.SessionLength),
			r.Eviction.String(),
			strconv.Itoa(r.SchemaCalls),
			strconv.Itoa(r.TotalSchemaCost),
			strconv.Itoa(r.TotalAliasSavings),
			cli.FormatSigned(r.NetBalance),
			r.BreakEven.String(),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   strings.ToUpper(string(format[:1])) + string(format[1:]) + " Format",
		Headers: []string{"Session", "Evict", "Calls", "Cost", "Savings", "Net", "Break-even"},
		Rows:    rows,
	}))
}

func printHeadToHead(g grid.Grid, results []econ.Result) {
	byKey := make(map[string]econ.Result, len(results))
	for _, r := range results {
		byKey[fmt.Sprintf("%d/%s/%s", r.SessionLength, r.Eviction, r.Format)] = r
	}

	rows := make([][]string, 0, len(g.SessionLengths)*len(g.Evictions))
	for _, length := range g.SessionLengths {
		for _, eviction := range g.Evictions {
			compact, okC := byKey[fmt.Sprintf("%d/%s/%s", length, eviction, econ.FormatCompact)]
			jsonRes, okJ := byKey[fmt.Sprintf("%d/%s/%s", length, eviction, econ.FormatJSON)]
			if !okC || !okJ {
				continue
			}
			winner := string(econ.FormatJSON)
			margin := jsonRes.NetBalance - compact.NetBalance
			if compact.NetBalance >= jsonRes.NetBalance {
				winner = string(econ.FormatCompact)
				margin = compact.NetBalance - jsonRes.NetBalance
			}
			rows = append(rows, []string{
				strconv.Itoa(length),
				eviction.String(),
				cli.FormatSigned(compact.NetBalance),
				cli.FormatSigned(jsonRes.NetBalance),
				winner,
				strconv.Itoa(margin),
			})
		}
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Compact vs JSON",
		Headers: []string{"Session", "Evict", "Compact Net", "JSON Net", "Winner", "Margin"},
		Rows:    rows,
	}))
}

// gridProgress returns a progress callback that overwrites a single status
// line, or nil when --quiet is set.
func gridProgress() grid.ProgressFunc {
	if flagQuiet {
		return nil
	}
	dim := lipgloss.NewStyle().Foreground(cli.ColorTextDim)
	return func(done, total int) {
		fmt.Printf("\r%s", dim.Render(fmt.Sprintf("  Evaluating scenarios... %d/%d", done, total)))
		if done == total {
			fmt.Print("\r" + strings.Repeat(" ", 40) + "\r")
		}
	}
}
