package store

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/aliasim/internal/econ"
	"github.com/theirongolddev/aliasim/internal/grid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun() (econ.CostModel, []econ.Result) {
	model := econ.CostModel{
		SchemaCallTokens:     10,
		SchemaResponseTokens: 71,
		SchemaResultOverhead: 4,
		CompactList:          5,
		CompactGet:           5,
		JSONGet:              3,
		JSONListPerItem:      3,
		AvgListItems:         10,
	}
	mix := econ.QueryMix{
		econ.QueryGet:     0.50,
		econ.QueryList:    0.30,
		econ.QuerySummary: 0.10,
		econ.QueryOther:   0.10,
	}
	g := grid.Grid{
		SessionLengths: []int{20, 50},
		Evictions:      []econ.Eviction{econ.EvictEvery(10), econ.EvictNever()},
		Formats:        []econ.Format{econ.FormatCompact, econ.FormatJSON},
	}
	return model, grid.Evaluate(model, mix, g, nil)
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)
	model, results := sampleRun()

	runID, err := s.SaveRun("grid sweep", model, results)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadResults(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != len(results) {
		t.Fatalf("loaded %d results, want %d", len(loaded), len(results))
	}
	for i := range results {
		want, got := results[i], loaded[i]
		if got.SessionLength != want.SessionLength ||
			got.Eviction != want.Eviction ||
			got.Format != want.Format ||
			got.NetBalance != want.NetBalance ||
			got.AvgSavingPerQuery != want.AvgSavingPerQuery {
			t.Fatalf("result %d changed in storage:\nwant %+v\ngot  %+v", i, want, got)
		}
		if got.BreakEven.Never() != want.BreakEven.Never() {
			t.Fatalf("result %d break-even sentinel changed", i)
		}
		if len(got.Breakdown) != len(want.Breakdown) {
			t.Fatalf("result %d breakdown rows %d, want %d", i, len(got.Breakdown), len(want.Breakdown))
		}
	}
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	model, results := sampleRun()

	if _, err := s.SaveRun("first", model, results); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveRun("second", model, results); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	// Newest first.
	if runs[0].Label != "second" || runs[1].Label != "first" {
		t.Fatalf("run order = %q, %q", runs[0].Label, runs[1].Label)
	}
	if runs[0].ScenarioCount != len(results) {
		t.Fatalf("scenario count = %d, want %d", runs[0].ScenarioCount, len(results))
	}
	if runs[0].SchemaRoundTrip != 85 {
		t.Fatalf("schema roundtrip = %d, want 85", runs[0].SchemaRoundTrip)
	}
}

func TestPositiveCount(t *testing.T) {
	s := openTestStore(t)
	model, results := sampleRun()

	if _, err := s.SaveRun("", model, results); err != nil {
		t.Fatal(err)
	}
	runs, err := s.ListRuns(1)
	if err != nil {
		t.Fatal(err)
	}

	positive := 0
	for _, r := range results {
		if r.NetBalance > 0 {
			positive++
		}
	}
	if runs[0].PositiveCount != positive {
		t.Fatalf("positive count = %d, want %d", runs[0].PositiveCount, positive)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTestStore(t)
	model, results := sampleRun()

	runID, err := s.SaveRun("", model, results)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(runID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	count, err := s.RunCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("run count = %d after delete, want 0", count)
	}

	loaded, err := s.LoadResults(runID)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("results survived run deletion: %d rows", len(loaded))
	}
}
