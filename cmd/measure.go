package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/aliasim/internal/cli"
	"github.com/theirongolddev/aliasim/internal/corpus"
	"github.com/theirongolddev/aliasim/internal/measure"

	"github.com/spf13/cobra"
)

var flagMeasureSave bool

var measureCmd = &cobra.Command{
	Use:   "measure",
	Short: "Measure payload sizes across corpus variants",
	Long: "Render the synthetic corpus in every variant at every configured scale,\n" +
		"estimate token counts, and report the savings of compact and aliased\n" +
		"formats over JSON. With --save, fold the measured per-query savings back\n" +
		"into the cost model in the config file.",
	RunE: runMeasure,
}

func init() {
	measureCmd.Flags().BoolVar(&flagMeasureSave, "save", false, "Write measured constants back to the config file")
	rootCmd.AddCommand(measureCmd)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	measurements := measure.Measure(cfg.Corpus.Seed, cfg.Corpus.Scales)

	fmt.Println(cli.RenderTitle("Payload Measurement"))

	rows := make([][]string, 0, len(measurements))
	for _, m := range measurements {
		rows = append(rows, []string{
			strconv.Itoa(m.Scale),
			strconv.Itoa(m.Tokens[corpus.VariantJSON]),
			strconv.Itoa(m.Tokens[corpus.VariantCompactFull]),
			strconv.Itoa(m.Tokens[corpus.VariantCompactAlias]),
			cli.FormatPercent(m.PercentSaved(corpus.VariantJSON, corpus.VariantCompactAlias)),
		})
	}
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Estimated Tokens",
		Headers: []string{"Records", "JSON", "Compact/Full", "Compact/Alias", "Alias vs JSON"},
		Rows:    rows,
	}))

	headerSaving := measure.HeaderSaving(measurements)
	schemaTokens := measure.EstimateTokens(measure.SchemaPayload())
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Derived Constants",
		Headers: []string{"Constant", "Tokens"},
		Rows: [][]string{
			{"Alias header saving per query", strconv.Itoa(headerSaving)},
			{"Schema payload", strconv.Itoa(schemaTokens)},
		},
	}))

	if flagMeasureSave {
		cfg.SetCostModel(measure.ApplyToModel(cfg.CostModel(), measurements))
		if err := saveConfig(cfg); err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Println("  Saved measured constants to config.")
		}
	}
	return nil
}
