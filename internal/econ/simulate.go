package econ

import "sort"

// SchemaCalls returns the number of schema-lookup round trips a session
// needs: one bootstrap call, plus one re-lookup per completed eviction cycle.
func SchemaCalls(sessionLength int, eviction Eviction) int {
	if eviction.Never() {
		return 1
	}
	extra := (sessionLength - 1) / eviction.Every()
	if extra < 0 {
		extra = 0
	}
	return 1 + extra
}

// SavingsPerQuery returns the tokens an aliased field-name scheme saves for
// one query of the given type under the given format.
//
// Compact format abbreviates only the header row, so the saving is a fixed
// constant regardless of item count. JSON repeats field names on every item,
// so list savings scale with the average list size. This asymmetry is the
// whole economic story.
func SavingsPerQuery(m CostModel, format Format, queryType QueryType) int {
	switch queryType {
	case QuerySummary, QueryOther:
		// No field names in these payload shapes.
		return 0
	}

	if format == FormatCompact {
		return m.CompactList
	}

	switch queryType {
	case QueryGet:
		return m.JSONGet
	case QueryList:
		return m.JSONListPerItem * m.AvgListItems
	}
	return 0
}

// Simulate evaluates the full session economics for one scenario.
// Pure function of its inputs; safe to call concurrently.
func Simulate(m CostModel, mix QueryMix, s Scenario) Result {
	schemaCalls := SchemaCalls(s.SessionLength, s.Eviction)
	roundTrip := m.SchemaRoundTrip()
	totalSchemaCost := schemaCalls * roundTrip

	totalSavings := 0
	breakdown := make([]BreakdownRow, 0, len(mix))
	for _, qtype := range mixOrder(mix) {
		count := int(float64(s.SessionLength) * mix[qtype])
		perQuery := SavingsPerQuery(m, s.Format, qtype)
		subtotal := count * perQuery
		totalSavings += subtotal
		breakdown = append(breakdown, BreakdownRow{
			Type:     qtype,
			Count:    count,
			PerQuery: perQuery,
			Subtotal: subtotal,
		})
	}

	result := Result{
		SessionLength:     s.SessionLength,
		Eviction:          s.Eviction,
		Format:            s.Format,
		SchemaCalls:       schemaCalls,
		TotalSchemaCost:   totalSchemaCost,
		TotalAliasSavings: totalSavings,
		NetBalance:        totalSavings - totalSchemaCost,
		BreakEven:         NeverBreaksEven(),
		Breakdown:         breakdown,
	}

	// A zero-length session has no queries to average over and never
	// breaks even.
	if s.SessionLength == 0 {
		return result
	}

	avg := float64(totalSavings) / float64(s.SessionLength)
	result.AvgSavingPerQuery = avg
	if avg <= 0 {
		return result
	}

	// Break-even is amortized over one eviction cycle: the savings earned
	// within a cycle must cover the lookup that started it. A session with
	// no eviction is its own single cycle.
	cycle := s.SessionLength
	if !s.Eviction.Never() {
		cycle = s.Eviction.Every()
	}
	savingsPerCycle := avg * float64(cycle)
	if savingsPerCycle > float64(roundTrip) {
		result.BreakEven = BreakEvenAt(float64(roundTrip) / avg)
	}

	return result
}

// mixOrder returns the mix's query types in canonical order (the well-known
// types first, anything else sorted after them) so breakdown rows and
// accumulation order are deterministic.
func mixOrder(mix QueryMix) []QueryType {
	order := make([]QueryType, 0, len(mix))
	seen := make(map[QueryType]bool, len(mix))
	for _, qt := range queryOrder {
		if _, ok := mix[qt]; ok {
			order = append(order, qt)
			seen[qt] = true
		}
	}
	var rest []QueryType
	for qt := range mix {
		if !seen[qt] {
			rest = append(rest, qt)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append(order, rest...)
}
