package econ

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// neverToken is the textual form of both sentinels. It must stay
// distinguishable from any numeric value when serialized.
const neverToken = "never"

// Eviction is the context-eviction cadence: the alias dictionary is dropped
// every K turns, or never. A tagged value rather than a float infinity so
// arithmetic and serialization stay exact.
type Eviction struct {
	every int // 0 means never
}

// EvictEvery returns a finite eviction cadence of k turns. k must be positive.
func EvictEvery(k int) Eviction {
	return Eviction{every: k}
}

// EvictNever returns the sentinel cadence: the dictionary is never evicted.
func EvictNever() Eviction {
	return Eviction{}
}

// Never reports whether this is the never-evicts sentinel.
func (e Eviction) Never() bool {
	return e.every == 0
}

// Every returns the finite cadence in turns. Only meaningful when !Never.
func (e Eviction) Every() int {
	return e.every
}

func (e Eviction) String() string {
	if e.Never() {
		return neverToken
	}
	return strconv.Itoa(e.every)
}

// ParseEviction parses a cadence from its textual form: a positive integer
// or the token "never".
func ParseEviction(s string) (Eviction, error) {
	if s == neverToken {
		return EvictNever(), nil
	}
	k, err := strconv.Atoi(s)
	if err != nil || k <= 0 {
		return Eviction{}, fmt.Errorf("invalid eviction rate %q: want a positive integer or %q", s, neverToken)
	}
	return EvictEvery(k), nil
}

// MarshalText encodes the cadence as "never" or a decimal integer, so TOML
// and JSON both carry the sentinel as a string token.
func (e Eviction) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (e *Eviction) UnmarshalText(data []byte) error {
	parsed, err := ParseEviction(string(data))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// BreakEven is the number of queries needed for accumulated alias savings to
// offset one schema lookup, or a sentinel when the cost is never recouped.
type BreakEven struct {
	queries float64
	never   bool
}

// BreakEvenAt returns a finite break-even point of q queries.
func BreakEvenAt(q float64) BreakEven {
	return BreakEven{queries: q}
}

// NeverBreaksEven returns the sentinel: savings never offset the lookup cost.
func NeverBreaksEven() BreakEven {
	return BreakEven{never: true}
}

// Never reports whether this is the never-breaks-even sentinel.
func (b BreakEven) Never() bool {
	return b.never
}

// Queries returns the exact break-even query count. Only meaningful when
// !Never. Callers may round for display; the stored value stays exact.
func (b BreakEven) Queries() float64 {
	return b.queries
}

func (b BreakEven) String() string {
	if b.never {
		return neverToken
	}
	return strconv.FormatFloat(b.queries, 'g', -1, 64)
}

// MarshalJSON encodes a finite break-even as a JSON number and the sentinel
// as the string "never", keeping the two unambiguous on the wire.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	if b.never {
		return json.Marshal(neverToken)
	}
	return json.Marshal(b.queries)
}

// UnmarshalJSON accepts a JSON number or the string "never".
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != neverToken {
			return fmt.Errorf("invalid break-even token %q: want a number or %q", s, neverToken)
		}
		*b = NeverBreaksEven()
		return nil
	}
	var q float64
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	*b = BreakEvenAt(q)
	return nil
}
