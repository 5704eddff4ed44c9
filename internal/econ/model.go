// Package econ models the token economics of abbreviated field-name aliases
// across agent sessions: schema lookup overhead vs per-query alias savings.
package econ

import "fmt"

// Format identifies the output shape of query results.
type Format string

const (
	FormatCompact Format = "compact" // shared header row, one row per item
	FormatJSON    Format = "json"    // field names repeated per item
)

// Formats lists all supported output formats in canonical order.
var Formats = []Format{FormatCompact, FormatJSON}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want compact or json)", s)
}

// QueryType classifies a query by its payload shape.
type QueryType string

const (
	QueryGet     QueryType = "get"
	QueryList    QueryType = "list"
	QuerySummary QueryType = "summary"
	QueryOther   QueryType = "other"
)

// queryOrder fixes the breakdown ordering in results.
var queryOrder = []QueryType{QueryGet, QueryList, QuerySummary, QueryOther}

// CostModel holds the measured token-cost constants driving the simulation.
// All values are non-negative; the caller validates before use.
type CostModel struct {
	// Schema lookup round trip, decomposed.
	SchemaCallTokens     int // tool call overhead
	SchemaResponseTokens int // schema JSON output
	SchemaResultOverhead int // result wrapper prefix

	// Per-query alias savings by (format, query type) category.
	CompactList     int // fixed header saving per compact query
	CompactGet      int // same header saving for single-item display
	JSONGet         int // saving per single-item JSON query
	JSONListPerItem int // saving per item in a JSON list

	// Average item count per list query.
	AvgListItems int
}

// SchemaRoundTrip returns the total token cost of one schema lookup.
func (m CostModel) SchemaRoundTrip() int {
	return m.SchemaCallTokens + m.SchemaResponseTokens + m.SchemaResultOverhead
}

// QueryMix maps query types to their proportion of a session's queries.
// Proportions are assumed to sum to 1.0; the mix is not normalized here.
type QueryMix map[QueryType]float64

// Scenario is one point in the simulation parameter space.
type Scenario struct {
	SessionLength int
	Eviction      Eviction
	Format        Format
}

// BreakdownRow holds per-query-type savings within one result.
type BreakdownRow struct {
	Type     QueryType `json:"type"`
	Count    int       `json:"count"`
	PerQuery int       `json:"savings_per_query"`
	Subtotal int       `json:"total_savings"`
}

// Result holds the full economics of one simulated session.
// Constructed once by Simulate and never mutated.
type Result struct {
	SessionLength     int            `json:"session_length"`
	Eviction          Eviction       `json:"eviction_rate"`
	Format            Format         `json:"output_format"`
	SchemaCalls       int            `json:"schema_calls"`
	TotalSchemaCost   int            `json:"total_schema_cost"`
	TotalAliasSavings int            `json:"total_alias_savings"`
	NetBalance        int            `json:"net_balance"`
	AvgSavingPerQuery float64        `json:"avg_saving_per_query"`
	BreakEven         BreakEven      `json:"break_even_queries"`
	Breakdown         []BreakdownRow `json:"query_breakdown"`
}
