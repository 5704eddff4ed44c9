package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id               INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at           TEXT NOT NULL,
    label                TEXT NOT NULL DEFAULT '',
    schema_roundtrip     INTEGER NOT NULL,
    scenario_count       INTEGER NOT NULL,
    positive_count       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
    run_id               INTEGER NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    session_length       INTEGER NOT NULL,
    eviction_rate        TEXT NOT NULL,
    output_format        TEXT NOT NULL,
    schema_calls         INTEGER NOT NULL,
    total_schema_cost    INTEGER NOT NULL,
    total_alias_savings  INTEGER NOT NULL,
    net_balance          INTEGER NOT NULL,
    avg_saving_per_query REAL NOT NULL,
    break_even           TEXT NOT NULL,
    breakdown            TEXT NOT NULL,
    PRIMARY KEY (run_id, session_length, eviction_rate, output_format)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
