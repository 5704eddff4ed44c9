package econ

import (
	"math"
	"testing"
)

// measuredModel mirrors the constants from the token measurement pass.
func measuredModel() CostModel {
	return CostModel{
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

func typicalMix() QueryMix {
	return QueryMix{
		QueryGet:     0.50,
		QueryList:    0.30,
		QuerySummary: 0.10,
		QueryOther:   0.10,
	}
}

func TestSchemaCallsNeverEvicts(t *testing.T) {
	for _, length := range []int{1, 10, 100, 100000} {
		if got := SchemaCalls(length, EvictNever()); got != 1 {
			t.Fatalf("SchemaCalls(%d, never) = %d, want 1", length, got)
		}
	}
}

func TestSchemaCallsSingleTurn(t *testing.T) {
	for _, k := range []int{1, 2, 10, 50} {
		if got := SchemaCalls(1, EvictEvery(k)); got != 1 {
			t.Fatalf("SchemaCalls(1, %d) = %d, want 1", k, got)
		}
	}
}

func TestSchemaCallsCycleMath(t *testing.T) {
	cases := []struct {
		length int
		evict  int
		want   int
	}{
		{10, 10, 1},
		{11, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{100, 10, 10},
		{100, 50, 2},
		{50, 20, 3},
	}
	for _, c := range cases {
		if got := SchemaCalls(c.length, EvictEvery(c.evict)); got != c.want {
			t.Fatalf("SchemaCalls(%d, %d) = %d, want %d", c.length, c.evict, got, c.want)
		}
	}
}

func TestSchemaCallsMonotonicInEviction(t *testing.T) {
	const length = 100
	prev := SchemaCalls(length, EvictEvery(1))
	for k := 2; k <= 150; k++ {
		got := SchemaCalls(length, EvictEvery(k))
		if got > prev {
			t.Fatalf("SchemaCalls(%d, %d) = %d increased from %d at k-1", length, k, got, prev)
		}
		prev = got
	}
	if never := SchemaCalls(length, EvictNever()); never > prev {
		t.Fatalf("SchemaCalls(%d, never) = %d exceeds finite minimum %d", length, never, prev)
	}
}

func TestCompactSavingIgnoresListSize(t *testing.T) {
	m := measuredModel()
	base := SavingsPerQuery(m, FormatCompact, QueryList)
	if base != m.CompactList {
		t.Fatalf("compact list saving = %d, want %d", base, m.CompactList)
	}
	if got := SavingsPerQuery(m, FormatCompact, QueryGet); got != m.CompactList {
		t.Fatalf("compact get saving = %d, want %d", got, m.CompactList)
	}

	m.AvgListItems *= 10
	if got := SavingsPerQuery(m, FormatCompact, QueryList); got != base {
		t.Fatalf("compact saving changed with list size: %d -> %d", base, got)
	}
}

func TestJSONListSavingScalesWithListSize(t *testing.T) {
	m := measuredModel()
	if got := SavingsPerQuery(m, FormatJSON, QueryList); got != m.JSONListPerItem*m.AvgListItems {
		t.Fatalf("json list saving = %d, want %d", got, m.JSONListPerItem*m.AvgListItems)
	}

	base := SavingsPerQuery(m, FormatJSON, QueryList)
	m.AvgListItems *= 2
	if got := SavingsPerQuery(m, FormatJSON, QueryList); got != 2*base {
		t.Fatalf("doubling list size: saving %d -> %d, want %d", base, got, 2*base)
	}
}

func TestSummaryAndOtherSaveNothing(t *testing.T) {
	m := measuredModel()
	for _, format := range Formats {
		for _, qt := range []QueryType{QuerySummary, QueryOther} {
			if got := SavingsPerQuery(m, format, qt); got != 0 {
				t.Fatalf("SavingsPerQuery(%s, %s) = %d, want 0", format, qt, got)
			}
		}
	}
}

// TestSimulateCompactSession checks a fully worked compact-format session:
// 20 queries, eviction every 10 turns, measured constants.
func TestSimulateCompactSession(t *testing.T) {
	r := Simulate(measuredModel(), typicalMix(), Scenario{
		SessionLength: 20,
		Eviction:      EvictEvery(10),
		Format:        FormatCompact,
	})

	if r.SchemaCalls != 2 {
		t.Fatalf("SchemaCalls = %d, want 2", r.SchemaCalls)
	}
	if r.TotalSchemaCost != 170 {
		t.Fatalf("TotalSchemaCost = %d, want 170", r.TotalSchemaCost)
	}
	if r.TotalAliasSavings != 80 {
		t.Fatalf("TotalAliasSavings = %d, want 80", r.TotalAliasSavings)
	}
	if r.NetBalance != -90 {
		t.Fatalf("NetBalance = %d, want -90", r.NetBalance)
	}
	if !r.BreakEven.Never() {
		t.Fatalf("BreakEven = %s, want never", r.BreakEven)
	}
}

// TestSimulateJSONSessionNoEviction checks a fully worked JSON-format session
// where the dictionary survives the whole session.
func TestSimulateJSONSessionNoEviction(t *testing.T) {
	r := Simulate(measuredModel(), typicalMix(), Scenario{
		SessionLength: 50,
		Eviction:      EvictNever(),
		Format:        FormatJSON,
	})

	if r.SchemaCalls != 1 {
		t.Fatalf("SchemaCalls = %d, want 1", r.SchemaCalls)
	}
	if r.TotalSchemaCost != 85 {
		t.Fatalf("TotalSchemaCost = %d, want 85", r.TotalSchemaCost)
	}
	if r.TotalAliasSavings != 525 {
		t.Fatalf("TotalAliasSavings = %d, want 525", r.TotalAliasSavings)
	}
	if r.NetBalance != 440 {
		t.Fatalf("NetBalance = %d, want 440", r.NetBalance)
	}
	if r.AvgSavingPerQuery != 10.5 {
		t.Fatalf("AvgSavingPerQuery = %v, want 10.5", r.AvgSavingPerQuery)
	}
	if r.BreakEven.Never() {
		t.Fatal("BreakEven = never, want finite")
	}
	if got := r.BreakEven.Queries(); math.Abs(got-85.0/10.5) > 1e-9 {
		t.Fatalf("BreakEven = %v, want %v", got, 85.0/10.5)
	}
}

func TestSimulateNetBalanceIdentity(t *testing.T) {
	m := measuredModel()
	mix := typicalMix()
	for _, length := range []int{0, 1, 10, 20, 50, 100} {
		for _, ev := range []Eviction{EvictEvery(1), EvictEvery(10), EvictEvery(50), EvictNever()} {
			for _, format := range Formats {
				r := Simulate(m, mix, Scenario{SessionLength: length, Eviction: ev, Format: format})
				if r.NetBalance != r.TotalAliasSavings-r.TotalSchemaCost {
					t.Fatalf("session=%d evict=%s format=%s: net %d != savings %d - cost %d",
						length, ev, format, r.NetBalance, r.TotalAliasSavings, r.TotalSchemaCost)
				}
			}
		}
	}
}

func TestSimulateZeroSavingsNeverBreaksEven(t *testing.T) {
	mix := QueryMix{QuerySummary: 0.5, QueryOther: 0.5}
	r := Simulate(measuredModel(), mix, Scenario{
		SessionLength: 100,
		Eviction:      EvictEvery(10),
		Format:        FormatJSON,
	})
	if r.TotalAliasSavings != 0 {
		t.Fatalf("TotalAliasSavings = %d, want 0", r.TotalAliasSavings)
	}
	if !r.BreakEven.Never() {
		t.Fatalf("BreakEven = %s, want never", r.BreakEven)
	}
}

func TestSimulateZeroLengthSession(t *testing.T) {
	r := Simulate(measuredModel(), typicalMix(), Scenario{
		SessionLength: 0,
		Eviction:      EvictEvery(10),
		Format:        FormatCompact,
	})
	if r.AvgSavingPerQuery != 0 {
		t.Fatalf("AvgSavingPerQuery = %v, want 0", r.AvgSavingPerQuery)
	}
	if !r.BreakEven.Never() {
		t.Fatalf("BreakEven = %s, want never", r.BreakEven)
	}
	if r.SchemaCalls < 1 {
		t.Fatalf("SchemaCalls = %d, want >= 1", r.SchemaCalls)
	}
}

func TestSimulateMissingQueryTypes(t *testing.T) {
	// A mix without list/summary/other should just contribute zero rows
	// for the absent types.
	mix := QueryMix{QueryGet: 1.0}
	r := Simulate(measuredModel(), mix, Scenario{
		SessionLength: 10,
		Eviction:      EvictNever(),
		Format:        FormatCompact,
	})
	if len(r.Breakdown) != 1 {
		t.Fatalf("breakdown rows = %d, want 1", len(r.Breakdown))
	}
	if r.Breakdown[0].Type != QueryGet || r.Breakdown[0].Count != 10 {
		t.Fatalf("breakdown[0] = %+v, want get x10", r.Breakdown[0])
	}
	if r.TotalAliasSavings != 50 {
		t.Fatalf("TotalAliasSavings = %d, want 50", r.TotalAliasSavings)
	}
}

func TestSimulateBreakdownOrderStable(t *testing.T) {
	mix := typicalMix()
	want := []QueryType{QueryGet, QueryList, QuerySummary, QueryOther}
	for i := 0; i < 20; i++ {
		r := Simulate(measuredModel(), mix, Scenario{
			SessionLength: 10,
			Eviction:      EvictNever(),
			Format:        FormatCompact,
		})
		for j, row := range r.Breakdown {
			if row.Type != want[j] {
				t.Fatalf("breakdown[%d] = %s, want %s", j, row.Type, want[j])
			}
		}
	}
}

func TestSchemaRoundTripDecomposition(t *testing.T) {
	m := measuredModel()
	if got := m.SchemaRoundTrip(); got != 85 {
		t.Fatalf("SchemaRoundTrip = %d, want 85", got)
	}
}
