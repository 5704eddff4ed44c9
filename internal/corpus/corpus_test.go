package corpus

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(50, DefaultSeed)
	b := Generate(50, DefaultSeed)
	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("lengths = %d, %d, want 50", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs across runs with same seed:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	a := Generate(20, DefaultSeed)
	b := Generate(20, DefaultSeed+1)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical corpora")
	}
}

func TestGenerateRecordShape(t *testing.T) {
	for i, r := range Generate(100, DefaultSeed) {
		if !strings.HasPrefix(r.ID, "TASK-") {
			t.Fatalf("record %d: bad id %q", i, r.ID)
		}
		if r.Name == "" || r.Status == "" || r.Assignee == "" || r.Description == "" || r.Priority == "" {
			t.Fatalf("record %d has empty fields: %+v", i, r)
		}
		if r.Updated.Before(r.Created) {
			t.Fatalf("record %d: updated %s before created %s", i, r.Updated, r.Created)
		}
	}
}

func TestRenderCompactHeaders(t *testing.T) {
	records := Generate(5, DefaultSeed)

	full := RenderCompact(records, FieldsFull)
	if !strings.HasPrefix(full, "id,name,status,assignee,description,priority,created,updated\n") {
		t.Fatalf("full header wrong: %q", firstLine(full))
	}

	alias := RenderCompact(records, FieldsAlias)
	if !strings.HasPrefix(alias, "i,n,s,a,d,p,c,u\n") {
		t.Fatalf("alias header wrong: %q", firstLine(alias))
	}

	// Data rows must be byte-identical; only the header differs.
	fullRows := strings.SplitN(full, "\n", 2)[1]
	aliasRows := strings.SplitN(alias, "\n", 2)[1]
	if fullRows != aliasRows {
		t.Fatal("data rows differ between full and aliased variants")
	}
}

func TestRenderCompactQuotesCommas(t *testing.T) {
	records := Generate(200, DefaultSeed)
	out := RenderCompact(records, FieldsFull)
	lines := strings.Split(out, "\n")
	if len(lines) != 201 {
		t.Fatalf("line count = %d, want 201", len(lines))
	}
	// Descriptions contain commas and must be quoted so the row still
	// parses into the right number of columns.
	for i, r := range records {
		if strings.Contains(r.Description, ",") {
			if !strings.Contains(lines[i+1], `"`+r.Description+`"`) {
				t.Fatalf("row %d: comma-bearing description not quoted: %q", i+1, lines[i+1])
			}
		}
	}
}

func TestRenderJSONParses(t *testing.T) {
	records := Generate(20, DefaultSeed)
	out := RenderJSON(records)

	var parsed []map[string]string
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("rendered JSON does not parse: %v", err)
	}
	if len(parsed) != 20 {
		t.Fatalf("parsed items = %d, want 20", len(parsed))
	}
	for _, field := range FieldsFull {
		if _, ok := parsed[0][field]; !ok {
			t.Fatalf("first item missing field %q", field)
		}
	}
}

func TestRenderDispatch(t *testing.T) {
	records := Generate(5, DefaultSeed)
	for _, v := range Variants {
		if Render(v, records) == "" {
			t.Fatalf("Render(%s) returned empty payload", v)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
