// Package store provides a SQLite-backed history of simulation runs.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/aliasim/internal/econ"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store keeps past simulation runs and their results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run summarizes one stored simulation run.
type Run struct {
	ID              int64
	CreatedAt       time.Time
	Label           string
	SchemaRoundTrip int
	ScenarioCount   int
	PositiveCount   int
}

// SaveRun stores a run summary and all its results in one transaction,
// returning the new run ID.
func (s *Store) SaveRun(label string, model econ.CostModel, results []econ.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	positive := 0
	for _, r := range results {
		if r.NetBalance > 0 {
			positive++
		}
	}

	res, err := tx.Exec(`INSERT INTO runs
		(created_at, label, schema_roundtrip, scenario_count, positive_count)
		VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), label,
		model.SchemaRoundTrip(), len(results), positive,
	)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range results {
		breakdown, err := json.Marshal(r.Breakdown)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(`INSERT INTO results
			(run_id, session_length, eviction_rate, output_format,
			 schema_calls, total_schema_cost, total_alias_savings,
			 net_balance, avg_saving_per_query, break_even, breakdown)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, r.SessionLength, r.Eviction.String(), string(r.Format),
			r.SchemaCalls, r.TotalSchemaCost, r.TotalAliasSavings,
			r.NetBalance, r.AvgSavingPerQuery, r.BreakEven.String(), string(breakdown),
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT
		run_id, created_at, label, schema_roundtrip, scenario_count, positive_count
		FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Label, &r.SchemaRoundTrip, &r.ScenarioCount, &r.PositiveCount); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadResults reads all results of one run in stored scenario order.
func (s *Store) LoadResults(runID int64) ([]econ.Result, error) {
	rows, err := s.db.Query(`SELECT
		session_length, eviction_rate, output_format,
		schema_calls, total_schema_cost, total_alias_savings,
		net_balance, avg_saving_per_query, break_even, breakdown
		FROM results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []econ.Result
	for rows.Next() {
		var r econ.Result
		var eviction, format, breakEven, breakdown string
		err := rows.Scan(
			&r.SessionLength, &eviction, &format,
			&r.SchemaCalls, &r.TotalSchemaCost, &r.TotalAliasSavings,
			&r.NetBalance, &r.AvgSavingPerQuery, &breakEven, &breakdown,
		)
		if err != nil {
			return nil, err
		}

		r.Eviction, err = econ.ParseEviction(eviction)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", runID, err)
		}
		r.Format = econ.Format(format)
		r.BreakEven, err = parseBreakEven(breakEven)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", runID, err)
		}
		if err := json.Unmarshal([]byte(breakdown), &r.Breakdown); err != nil {
			return nil, fmt.Errorf("run %d breakdown: %w", runID, err)
		}

		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteRun removes a run and its results.
func (s *Store) DeleteRun(runID int64) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE run_id = ?", runID)
	return err
}

// RunCount returns the number of stored runs.
func (s *Store) RunCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

func parseBreakEven(s string) (econ.BreakEven, error) {
	if s == "never" {
		return econ.NeverBreaksEven(), nil
	}
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return econ.BreakEven{}, fmt.Errorf("invalid break-even %q", s)
	}
	return econ.BreakEvenAt(q), nil
}

// DefaultPath returns the platform-appropriate history database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "aliasim", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "aliasim", "history.db")
}
