package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/aliasim/internal/econ"
	"github.com/theirongolddev/aliasim/internal/grid"
)

func testModel() econ.CostModel {
	return econ.CostModel{
		SchemaCallTokens:     10,
		SchemaResponseTokens: 71,
		SchemaResultOverhead: 4,
		CompactList:          5,
		CompactGet:           5,
		JSONGet:              3,
		JSONListPerItem:      3,
		AvgListItems:         10,
	}
}

func testMix() econ.QueryMix {
	return econ.QueryMix{
		econ.QueryGet:     0.50,
		econ.QueryList:    0.30,
		econ.QuerySummary: 0.10,
		econ.QueryOther:   0.10,
	}
}

func testGrid() grid.Grid {
	return grid.Grid{
		SessionLengths: []int{20, 50},
		Evictions:      []econ.Eviction{econ.EvictEvery(10), econ.EvictNever()},
		Formats:        []econ.Format{econ.FormatCompact, econ.FormatJSON},
	}
}

func renderTestReport(t *testing.T) string {
	t.Helper()
	g := testGrid()
	results := grid.Evaluate(testModel(), testMix(), g, nil)
	return Markdown(testModel(), testMix(), g, results, time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC))
}

func TestMarkdownSections(t *testing.T) {
	md := renderTestReport(t)
	for _, want := range []string{
		"# Session Simulator Results",
		"**Date:** 2026-02-12",
		"## Measured Constants",
		"## Query Mix Assumptions",
		"## Results: Compact Format",
		"## Results: JSON Format",
		"## Head-to-Head: Compact vs JSON Alias Savings",
		"### Scenarios with positive net balance",
		"### Best/Worst Cases",
		"### Key Insight",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing section %q", want)
		}
	}
}

func TestMarkdownConstants(t *testing.T) {
	md := renderTestReport(t)
	if !strings.Contains(md, "**85 tokens** (call=10 + response=71 + overhead=4)") {
		t.Fatal("schema roundtrip decomposition missing from report")
	}
	if !strings.Contains(md, "JSON list, 10 items): **30 tokens**") {
		t.Fatal("JSON list savings line missing from report")
	}
	// 85 / 5 = 17 queries per lookup just to break even.
	if !strings.Contains(md, "**17 data queries**") {
		t.Fatal("break-even query count missing from key insight")
	}
}

func TestMarkdownKnownRows(t *testing.T) {
	md := renderTestReport(t)

	// session=20, evict=10, compact: 2 calls, 170 cost, 80 savings, -90 net.
	if !strings.Contains(md, "| 20 | 10 | 2 | 170 | 80 | -90 | never |") {
		t.Fatal("compact scenario row missing or wrong")
	}
	// session=50, never, json: 1 call, 85 cost, 525 savings, +440 net,
	// break-even 85/10.5 displayed rounded.
	if !strings.Contains(md, "| 50 | never | 1 | 85 | 525 | +440 | 8 |") {
		t.Fatal("json scenario row missing or wrong")
	}
}

func TestMarkdownHeadToHead(t *testing.T) {
	md := renderTestReport(t)

	// session=50 never: compact net = 50*0.8*5 - 85 = 115; json net = 440.
	// JSON wins by 325.
	if !strings.Contains(md, "| 50 | never | +115 | +440 | JSON | 325 |") {
		t.Fatal("head-to-head row missing or wrong")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g := testGrid()
	results := grid.Evaluate(testModel(), testMix(), g, nil)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, results); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"eviction_rate": "never"`) {
		t.Fatal("never eviction did not serialize as a textual token")
	}
	if !strings.Contains(out, `"break_even_queries": "never"`) {
		t.Fatal("never break-even did not serialize as a textual token")
	}
	if !strings.Contains(out, `"eviction_rate": "10"`) {
		t.Fatal("finite eviction did not serialize textually")
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(back) != len(results) {
		t.Fatalf("round trip results = %d, want %d", len(back), len(results))
	}
	for i := range results {
		if back[i].Eviction != results[i].Eviction {
			t.Fatalf("result %d eviction %s != %s", i, back[i].Eviction, results[i].Eviction)
		}
		if back[i].BreakEven.Never() != results[i].BreakEven.Never() {
			t.Fatalf("result %d break-even sentinel changed", i)
		}
		if back[i].NetBalance != results[i].NetBalance {
			t.Fatalf("result %d net balance %d != %d", i, back[i].NetBalance, results[i].NetBalance)
		}
	}
}
