package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/theirongolddev/aliasim/internal/econ"
)

// WriteJSON serializes results as an indented JSON array. Eviction rates and
// break-even sentinels encode textually ("never") so neither is confusable
// with a measured numeric value.
func WriteJSON(w io.Writer, results []econ.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

// ReadJSON is the inverse of WriteJSON.
func ReadJSON(r io.Reader) ([]econ.Result, error) {
	var results []econ.Result
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}
