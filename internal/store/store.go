// Package store provides SQLite-backed persistence for session
// history and aliases.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the history and alias tables.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
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

// HasEntry reports whether a history row exists for the session.
func (s *Store) HasEntry(sessionID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM history WHERE session_id = ?)", sessionID,
	).Scan(&exists)
	return exists, err
}

// RecordIfAbsent inserts a history entry unless one already exists for
// the same session id. Returns true when a row was written.
func (s *Store) RecordIfAbsent(e model.HistoryEntry) (bool, error) {
	exists, err := s.HasEntry(e.SessionID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	status := e.Status
	if status == "" {
		status = "completed"
	}

	_, err = s.db.Exec(`INSERT INTO history
		(timestamp, session_id, display_name, task, duration_ms, tokens_in, tokens_out, cost, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC().Format(time.RFC3339), e.SessionID, e.DisplayName,
		e.Task, e.DurationMs, e.TokensIn, e.TokensOut, e.CostUSD, status,
	)
	if err != nil {
		return false, fmt.Errorf("inserting history entry: %w", err)
	}
	return true, nil
}

// ListRecent returns the most recent history entries, newest first.
func (s *Store) ListRecent(limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`SELECT
		id, timestamp, session_id, display_name, task, duration_ms,
		tokens_in, tokens_out, cost, status
		FROM history ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var ts string
		var task sql.NullString
		if err := rows.Scan(&e.ID, &ts, &e.SessionID, &e.DisplayName, &task,
			&e.DurationMs, &e.TokensIn, &e.TokensOut, &e.CostUSD, &e.Status); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		e.Task = task.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ArchivedTotals sums tokens and cost across every history entry.
// The collector folds these into the running totals so lifetime
// figures include sessions whose files are no longer re-read.
func (s *Store) ArchivedTotals() (model.UsageTotals, float64, error) {
	var totals model.UsageTotals
	var cost float64
	err := s.db.QueryRow(`SELECT
		COALESCE(SUM(tokens_in), 0), COALESCE(SUM(tokens_out), 0), COALESCE(SUM(cost), 0)
		FROM history`).Scan(&totals.TokensIn, &totals.TokensOut, &cost)
	return totals, cost, err
}

// GetAlias returns the persisted display name for a session, or ok
// false when none has been assigned.
func (s *Store) GetAlias(sessionID string) (string, bool, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT display_name FROM aliases WHERE session_id = ?", sessionID,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// SaveAlias persists a session's display name. Last writer wins.
func (s *Store) SaveAlias(sessionID, displayName string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO aliases (session_id, display_name)
		VALUES (?, ?)`, sessionID, displayName)
	return err
}
