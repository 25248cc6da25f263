package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp     TEXT NOT NULL,
    session_id    TEXT NOT NULL,
    display_name  TEXT NOT NULL,
    task          TEXT,
    duration_ms   INTEGER NOT NULL DEFAULT 0,
    tokens_in     INTEGER NOT NULL DEFAULT 0,
    tokens_out    INTEGER NOT NULL DEFAULT 0,
    cost          REAL NOT NULL DEFAULT 0,
    status        TEXT NOT NULL DEFAULT 'completed'
);

CREATE TABLE IF NOT EXISTS aliases (
    session_id    TEXT PRIMARY KEY,
    display_name  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp);
`
