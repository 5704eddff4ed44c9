package corpus

import (
	"encoding/json"
	"strings"
)

// Variant names a payload rendering.
type Variant string

const (
	VariantJSON         Variant = "json"          // pretty-printed JSON array
	VariantCompactFull  Variant = "compact-full"  // CSV-style, full header
	VariantCompactAlias Variant = "compact-alias" // CSV-style, 1-char header
)

// Variants lists all payload renderings in measurement order.
var Variants = []Variant{VariantJSON, VariantCompactFull, VariantCompactAlias}

const dateLayout = "2006-01-02"

// Render produces the payload text for the given variant.
func Render(v Variant, records []Record) string {
	switch v {
	case VariantJSON:
		return RenderJSON(records)
	case VariantCompactFull:
		return RenderCompact(records, FieldsFull)
	case VariantCompactAlias:
		return RenderCompact(records, FieldsAlias)
	}
	return ""
}

// RenderJSON renders the records as an indented JSON array, field names
// repeated on every item.
func RenderJSON(records []Record) string {
	type jsonRecord struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Status      string `json:"status"`
		Assignee    string `json:"assignee"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
		Created     string `json:"created"`
		Updated     string `json:"updated"`
	}

	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, jsonRecord{
			ID:          r.ID,
			Name:        r.Name,
			Status:      r.Status,
			Assignee:    r.Assignee,
			Description: r.Description,
			Priority:    r.Priority,
			Created:     r.Created.Format(dateLayout),
			Updated:     r.Updated.Format(dateLayout),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		// Only string fields are marshaled; this cannot fail.
		return ""
	}
	return string(data)
}

// RenderCompact renders the records CSV-style: one header row with the given
// field names, then one row per record. Data rows are identical for full and
// aliased headers, which is exactly why header abbreviation saves so little.
func RenderCompact(records []Record, header []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, r := range records {
		b.WriteByte('\n')
		row := []string{
			r.ID, r.Name, r.Status, r.Assignee, r.Description, r.Priority,
			r.Created.Format(dateLayout), r.Updated.Format(dateLayout),
		}
		for i, val := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.Contains(val, ",") {
				b.WriteByte('"')
				b.WriteString(val)
				b.WriteByte('"')
			} else {
				b.WriteString(val)
			}
		}
	}
	return b.String()
}
