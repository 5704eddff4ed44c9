package tui

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/aliasim/internal/cli"
	"github.com/theirongolddev/aliasim/internal/econ"
)

func (a App) formatTab(format econ.Format) string {
	rows := make([][]string, 0, len(a.results))
	for _, r := range a.results {
		if r.Format != format {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(r.SessionLength),
			r.Eviction.String(),
			strconv.Itoa(r.SchemaCalls),
			cli.FormatNumber(int64(r.TotalSchemaCost)),
			cli.FormatNumber(int64(r.TotalAliasSavings)),
			cli.FormatSigned(r.NetBalance),
			breakEvenCell(r.BreakEven),
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s Format", formatTitle(format)),
		Headers: []string{"Session", "Evict K", "Calls", "Schema Cost", "Savings", "Net", "Break-Even"},
		Rows:    rows,
	})
}

func (a App) headToHeadTab() string {
	// Largest absolute net bounds the margin bars.
	maxMargin := 0
	type pair struct {
		session  int
		eviction econ.Eviction
		compact  econ.Result
		json     econ.Result
	}
	var pairs []pair
	for _, length := range a.grid.SessionLengths {
		for _, eviction := range a.grid.Evictions {
			var p pair
			var haveC, haveJ bool
			for _, r := range a.results {
				if r.SessionLength != length || r.Eviction != eviction {
					continue
				}
				switch r.Format {
				case econ.FormatCompact:
					p.compact, haveC = r, true
				case econ.FormatJSON:
					p.json, haveJ = r, true
				}
			}
			if !haveC || !haveJ {
				continue
			}
			p.session = length
			p.eviction = eviction
			pairs = append(pairs, p)
			if m := abs(p.json.NetBalance - p.compact.NetBalance); m > maxMargin {
				maxMargin = m
			}
		}
	}

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		better := "Compact"
		if p.json.NetBalance > p.compact.NetBalance {
			better = "JSON"
		}
		margin := abs(p.json.NetBalance - p.compact.NetBalance)
		rows = append(rows, []string{
			strconv.Itoa(p.session),
			p.eviction.String(),
			cli.FormatSigned(p.compact.NetBalance),
			cli.FormatSigned(p.json.NetBalance),
			better,
			strconv.Itoa(margin),
			cli.RenderHorizontalBar(float64(margin), float64(maxMargin), 16),
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   "Compact vs JSON Net Balance",
		Headers: []string{"Session", "Evict K", "Compact", "JSON", "Better", "Margin", ""},
		Rows:    rows,
	})
}

func (a App) constantsTab() string {
	m := a.model
	costRows := [][]string{
		{"Schema call overhead", strconv.Itoa(m.SchemaCallTokens)},
		{"Schema response", strconv.Itoa(m.SchemaResponseTokens)},
		{"Result wrapper overhead", strconv.Itoa(m.SchemaResultOverhead)},
		{"---"},
		{"Schema roundtrip", strconv.Itoa(m.SchemaRoundTrip())},
		{"---"},
		{"Compact list saving", strconv.Itoa(m.CompactList)},
		{"Compact get saving", strconv.Itoa(m.CompactGet)},
		{"JSON get saving", strconv.Itoa(m.JSONGet)},
		{"JSON list saving / item", strconv.Itoa(m.JSONListPerItem)},
		{"Avg items per list", strconv.Itoa(m.AvgListItems)},
	}

	mixRows := make([][]string, 0, len(a.mix))
	for _, qt := range []econ.QueryType{econ.QueryGet, econ.QueryList, econ.QuerySummary, econ.QueryOther} {
		if prop, ok := a.mix[qt]; ok {
			mixRows = append(mixRows, []string{string(qt), fmt.Sprintf("%.0f%%", prop*100)})
		}
	}

	return cli.RenderTable(cli.Table{
		Title:   "Cost Model (tokens)",
		Headers: []string{"Constant", "Value"},
		Rows:    costRows,
	}) + "\n" + cli.RenderTable(cli.Table{
		Title:   "Query Mix",
		Headers: []string{"Type", "Share"},
		Rows:    mixRows,
	})
}

func formatTitle(f econ.Format) string {
	if f == econ.FormatJSON {
		return "JSON"
	}
	return "Compact"
}

func breakEvenCell(b econ.BreakEven) string {
	if b.Never() {
		return "never"
	}
	return fmt.Sprintf("%.1f", b.Queries())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
