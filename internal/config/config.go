// Package config loads and saves the aliasim TOML configuration: measured
// cost constants, query mix, scenario grid, and corpus settings.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/theirongolddev/aliasim/internal/corpus"
	"github.com/theirongolddev/aliasim/internal/econ"

	"github.com/BurntSushi/toml"
)

// Config holds all aliasim configuration.
type Config struct {
	Costs  CostsConfig  `toml:"costs"`
	Mix    MixConfig    `toml:"mix"`
	Grid   GridConfig   `toml:"grid"`
	Corpus CorpusConfig `toml:"corpus"`
}

// CostsConfig holds the measured token-cost constants.
type CostsConfig struct {
	SchemaCallTokens     int `toml:"schema_call_tokens"`
	SchemaResponseTokens int `toml:"schema_response_tokens"`
	SchemaResultOverhead int `toml:"schema_result_overhead"`
	CompactList          int `toml:"compact_list"`
	CompactGet           int `toml:"compact_get"`
	JSONGet              int `toml:"json_get"`
	JSONListPerItem      int `toml:"json_list_per_item"`
	AvgListItems         int `toml:"avg_list_items"`
}

// MixConfig holds the session query-mix proportions.
type MixConfig struct {
	Get     float64 `toml:"get"`
	List    float64 `toml:"list"`
	Summary float64 `toml:"summary"`
	Other   float64 `toml:"other"`
}

// GridConfig holds the scenario axes swept by simulate/report.
// Eviction rates are textual in the file ("10", "never") so the sentinel
// stays distinguishable from a numeric cadence.
type GridConfig struct {
	SessionLengths []int           `toml:"session_lengths"`
	EvictionRates  []econ.Eviction `toml:"eviction_rates"`
	Formats        []econ.Format   `toml:"formats"`
}

// CorpusConfig holds synthetic corpus generation settings.
type CorpusConfig struct {
	Seed   int64 `toml:"seed"`
	Scales []int `toml:"scales"`
}

// DefaultConfig returns the configuration matching the measured research
// constants and the standard scenario grid.
func DefaultConfig() Config {
	return Config{
		Costs: CostsConfig{
			SchemaCallTokens:     10,
			SchemaResponseTokens: 71,
			SchemaResultOverhead: 4,
			CompactList:          5,
			CompactGet:           5,
			JSONGet:              3,
			JSONListPerItem:      3,
			AvgListItems:         10,
		},
		Mix: MixConfig{
			Get:     0.50,
			List:    0.30,
			Summary: 0.10,
			Other:   0.10,
		},
		Grid: GridConfig{
			SessionLengths: []int{10, 20, 50, 100},
			EvictionRates: []econ.Eviction{
				econ.EvictEvery(10),
				econ.EvictEvery(20),
				econ.EvictEvery(50),
				econ.EvictNever(),
			},
			Formats: []econ.Format{econ.FormatCompact, econ.FormatJSON},
		},
		Corpus: CorpusConfig{
			Seed:   corpus.DefaultSeed,
			Scales: append([]int(nil), corpus.Scales...),
		},
	}
}

// CostModel converts the configured constants into the simulator's model.
func (c Config) CostModel() econ.CostModel {
	return econ.CostModel{
		SchemaCallTokens:     c.Costs.SchemaCallTokens,
		SchemaResponseTokens: c.Costs.SchemaResponseTokens,
		SchemaResultOverhead: c.Costs.SchemaResultOverhead,
		CompactList:          c.Costs.CompactList,
		CompactGet:           c.Costs.CompactGet,
		JSONGet:              c.Costs.JSONGet,
		JSONListPerItem:      c.Costs.JSONListPerItem,
		AvgListItems:         c.Costs.AvgListItems,
	}
}

// QueryMix converts the configured proportions into the simulator's mix.
func (c Config) QueryMix() econ.QueryMix {
	return econ.QueryMix{
		econ.QueryGet:     c.Mix.Get,
		econ.QueryList:    c.Mix.List,
		econ.QuerySummary: c.Mix.Summary,
		econ.QueryOther:   c.Mix.Other,
	}
}

// SetCostModel writes derived constants back into the config; used by the
// measure command's save path.
func (c *Config) SetCostModel(m econ.CostModel) {
	c.Costs = CostsConfig{
		SchemaCallTokens:     m.SchemaCallTokens,
		SchemaResponseTokens: m.SchemaResponseTokens,
		SchemaResultOverhead: m.SchemaResultOverhead,
		CompactList:          m.CompactList,
		CompactGet:           m.CompactGet,
		JSONGet:              m.JSONGet,
		JSONListPerItem:      m.JSONListPerItem,
		AvgListItems:         m.AvgListItems,
	}
}

// Validate surfaces configuration errors before anything reaches the
// simulator, which assumes pre-validated inputs.
func (c Config) Validate() error {
	costs := []struct {
		name  string
		value int
	}{
		{"schema_call_tokens", c.Costs.SchemaCallTokens},
		{"schema_response_tokens", c.Costs.SchemaResponseTokens},
		{"schema_result_overhead", c.Costs.SchemaResultOverhead},
		{"compact_list", c.Costs.CompactList},
		{"compact_get", c.Costs.CompactGet},
		{"json_get", c.Costs.JSONGet},
		{"json_list_per_item", c.Costs.JSONListPerItem},
		{"avg_list_items", c.Costs.AvgListItems},
	}
	for _, cost := range costs {
		if cost.value < 0 {
			return fmt.Errorf("costs.%s is negative (%d)", cost.name, cost.value)
		}
	}

	props := []struct {
		name  string
		value float64
	}{
		{"get", c.Mix.Get},
		{"list", c.Mix.List},
		{"summary", c.Mix.Summary},
		{"other", c.Mix.Other},
	}
	sum := 0.0
	for _, p := range props {
		if p.value < 0 {
			return fmt.Errorf("mix.%s is negative (%g)", p.name, p.value)
		}
		sum += p.value
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return fmt.Errorf("mix proportions sum to %g, want 1.0", sum)
	}

	if len(c.Grid.SessionLengths) == 0 {
		return fmt.Errorf("grid.session_lengths is empty")
	}
	for _, n := range c.Grid.SessionLengths {
		if n < 1 {
			return fmt.Errorf("grid.session_lengths contains %d, want >= 1", n)
		}
	}
	if len(c.Grid.EvictionRates) == 0 {
		return fmt.Errorf("grid.eviction_rates is empty")
	}
	if len(c.Grid.Formats) == 0 {
		return fmt.Errorf("grid.formats is empty")
	}
	for _, f := range c.Grid.Formats {
		if f != econ.FormatCompact && f != econ.FormatJSON {
			return fmt.Errorf("grid.formats contains unknown format %q", f)
		}
	}

	for _, scale := range c.Corpus.Scales {
		if scale < 1 {
			return fmt.Errorf("corpus.scales contains %d, want >= 1", scale)
		}
	}

	return nil
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aliasim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "aliasim")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads a config file, returning defaults if it doesn't exist.
// An empty path means the default location.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the config to disk. An empty path means the default location.
func Save(cfg Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at the default location.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
