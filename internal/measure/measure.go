// Package measure estimates token counts for rendered corpus payloads and
// derives the cost-model constants the simulator consumes.
package measure

import (
	"encoding/json"

	"github.com/theirongolddev/aliasim/internal/corpus"
	"github.com/theirongolddev/aliasim/internal/econ"
)

// EstimateTokens returns a rough token count for the given text.
// Uses ~4 characters per token, rounding up, the standard heuristic for
// BPE tokenizers on mixed English/code text.
func EstimateTokens(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}

// Measurement holds token and byte counts for every payload variant at one
// corpus scale.
type Measurement struct {
	Scale  int
	Tokens map[corpus.Variant]int
	Bytes  map[corpus.Variant]int
}

// Saved returns the token count saved by rendering variant b instead of a.
func (m Measurement) Saved(a, b corpus.Variant) int {
	return m.Tokens[a] - m.Tokens[b]
}

// PercentSaved returns the relative token reduction from a to b, 0-100.
func (m Measurement) PercentSaved(a, b corpus.Variant) float64 {
	if m.Tokens[a] == 0 {
		return 0
	}
	return float64(m.Saved(a, b)) / float64(m.Tokens[a]) * 100
}

// Measure renders every variant of a seeded corpus at each scale and
// estimates its token footprint.
func Measure(seed int64, scales []int) []Measurement {
	out := make([]Measurement, 0, len(scales))
	for _, scale := range scales {
		records := corpus.Generate(scale, seed)
		m := Measurement{
			Scale:  scale,
			Tokens: make(map[corpus.Variant]int, len(corpus.Variants)),
			Bytes:  make(map[corpus.Variant]int, len(corpus.Variants)),
		}
		for _, v := range corpus.Variants {
			payload := corpus.Render(v, records)
			m.Tokens[v] = EstimateTokens(payload)
			m.Bytes[v] = len(payload)
		}
		out = append(out, m)
	}
	return out
}

// HeaderSaving returns the marginal alias saving of the compact header:
// the average compact-full minus compact-alias delta across scales. The
// delta is scale-invariant because only the single header row changes.
func HeaderSaving(measurements []Measurement) int {
	if len(measurements) == 0 {
		return 0
	}
	total := 0
	for _, m := range measurements {
		total += m.Saved(corpus.VariantCompactFull, corpus.VariantCompactAlias)
	}
	return (total + len(measurements)/2) / len(measurements)
}

// SchemaPayload renders the alias dictionary the agent would fetch from a
// schema lookup: a JSON object mapping full field names to abbreviations.
func SchemaPayload() string {
	dict := make(map[string]string, len(corpus.FieldsFull))
	for i, field := range corpus.FieldsFull {
		dict[field] = corpus.FieldsAlias[i]
	}
	data, err := json.MarshalIndent(dict, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// ApplyToModel overwrites the measurable constants of a cost model with
// values derived from the given measurements: the compact header saving and
// the schema response size. Constants this pass cannot observe (call
// overhead, result wrapper, JSON per-item savings) are left as configured.
func ApplyToModel(model econ.CostModel, measurements []Measurement) econ.CostModel {
	if saving := HeaderSaving(measurements); saving > 0 {
		model.CompactList = saving
		model.CompactGet = saving
	}
	if tokens := EstimateTokens(SchemaPayload()); tokens > 0 {
		model.SchemaResponseTokens = tokens
	}
	return model
}
