package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/aliasim/internal/config"
	"github.com/theirongolddev/aliasim/internal/econ"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupValues backs the huh form fields. huh inputs are string-typed, so
// numeric fields parse after the form completes.
type setupValues struct {
	avgListItems string
	corpusSeed   string
	evictions    string
	includeNever bool
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		// A corrupt file should not block reconfiguration.
		cfg = config.DefaultConfig()
	}

	vals := setupValues{
		avgListItems: strconv.Itoa(cfg.Costs.AvgListItems),
		corpusSeed:   strconv.FormatInt(cfg.Corpus.Seed, 10),
		evictions:    finiteEvictions(cfg.Grid.EvictionRates),
		includeNever: hasNeverEviction(cfg.Grid.EvictionRates),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Average items per list query").
				Description("Drives the per-item JSON savings estimate.").
				Value(&vals.avgListItems).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Corpus seed").
				Description("Seed for deterministic synthetic corpus generation.").
				Value(&vals.corpusSeed).
				Validate(validateInt64),
			huh.NewInput().
				Title("Eviction cadences").
				Description("Comma-separated query counts between context evictions.").
				Value(&vals.evictions).
				Validate(validateEvictionList),
			huh.NewConfirm().
				Title("Include a never-evicted scenario?").
				Description("Adds a grid column where the schema is fetched exactly once.").
				Value(&vals.includeNever),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	avg, _ := strconv.Atoi(strings.TrimSpace(vals.avgListItems))
	seed, _ := strconv.ParseInt(strings.TrimSpace(vals.corpusSeed), 10, 64)
	cfg.Costs.AvgListItems = avg
	cfg.Corpus.Seed = seed
	cfg.Grid.EvictionRates = parseEvictionList(vals.evictions, vals.includeNever)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `aliasim setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validateInt64(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func validateEvictionList(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return fmt.Errorf("%q is not a positive query count", part)
		}
	}
	return nil
}

func finiteEvictions(evictions []econ.Eviction) string {
	parts := make([]string, 0, len(evictions))
	for _, e := range evictions {
		if !e.Never() {
			parts = append(parts, e.String())
		}
	}
	return strings.Join(parts, ", ")
}

func hasNeverEviction(evictions []econ.Eviction) bool {
	for _, e := range evictions {
		if e.Never() {
			return true
		}
	}
	return false
}

func parseEvictionList(s string, includeNever bool) []econ.Eviction {
	var out []econ.Eviction
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, econ.EvictEvery(n))
	}
	if includeNever {
		out = append(out, econ.EvictNever())
	}
	return out
}
