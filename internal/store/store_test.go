package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(sessionID string, ts time.Time) model.HistoryEntry {
	return model.HistoryEntry{
		Timestamp:   ts,
		SessionID:   sessionID,
		DisplayName: "Falcon",
		Task:        "Refactor the login module",
		DurationMs:  60000,
		TokensIn:    1000,
		TokensOut:   400,
		CostUSD:     0.05,
	}
}

func TestRecordIfAbsent_Idempotent(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	wrote, err := s.RecordIfAbsent(entry("sess-1", now))
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !wrote {
		t.Fatal("first insert reported no write")
	}

	wrote, err = s.RecordIfAbsent(entry("sess-1", now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if wrote {
		t.Fatal("duplicate session id was written")
	}

	entries, err := s.ListRecent(10)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored %d entries, want 1", len(entries))
	}
}

func TestListRecent_OrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "middle", "new"} {
		if _, err := s.RecordIfAbsent(entry(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.ListRecent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].SessionID != "new" || entries[1].SessionID != "middle" {
		t.Errorf("order = [%s, %s], want [new, middle]", entries[0].SessionID, entries[1].SessionID)
	}
}

func TestListRecent_RoundTripFields(t *testing.T) {
	s := openTestStore(t)
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if _, err := s.RecordIfAbsent(entry("sess-1", ts)); err != nil {
		t.Fatal(err)
	}

	entries, err := s.ListRecent(1)
	if err != nil {
		t.Fatal(err)
	}
	e := entries[0]
	if !e.Timestamp.Equal(ts) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, ts)
	}
	if e.DisplayName != "Falcon" || e.Task != "Refactor the login module" {
		t.Errorf("unexpected fields: %+v", e)
	}
	if e.DurationMs != 60000 || e.TokensIn != 1000 || e.TokensOut != 400 {
		t.Errorf("unexpected numbers: %+v", e)
	}
	if e.Status != "completed" {
		t.Errorf("Status = %q, want completed (default)", e.Status)
	}
}

func TestArchivedTotals(t *testing.T) {
	s := openTestStore(t)

	totals, cost, err := s.ArchivedTotals()
	if err != nil {
		t.Fatal(err)
	}
	if totals.TokensIn != 0 || totals.TokensOut != 0 || cost != 0 {
		t.Errorf("empty store totals = %+v/%v, want zeros", totals, cost)
	}

	base := time.Now()
	if _, err := s.RecordIfAbsent(entry("a", base)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordIfAbsent(entry("b", base)); err != nil {
		t.Fatal(err)
	}

	totals, cost, err = s.ArchivedTotals()
	if err != nil {
		t.Fatal(err)
	}
	if totals.TokensIn != 2000 || totals.TokensOut != 800 {
		t.Errorf("totals = %+v, want in=2000 out=800", totals)
	}
	if cost < 0.0999 || cost > 0.1001 {
		t.Errorf("cost = %v, want 0.10", cost)
	}
}

func TestAliases(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.GetAlias("sess-1"); err != nil || ok {
		t.Fatalf("GetAlias on empty store = ok=%v err=%v, want miss", ok, err)
	}

	if err := s.SaveAlias("sess-1", "Kestrel"); err != nil {
		t.Fatal(err)
	}
	name, ok, err := s.GetAlias("sess-1")
	if err != nil || !ok || name != "Kestrel" {
		t.Fatalf("GetAlias = %q/%v/%v, want Kestrel", name, ok, err)
	}

	// Last writer wins.
	if err := s.SaveAlias("sess-1", "Rowan"); err != nil {
		t.Fatal(err)
	}
	name, _, _ = s.GetAlias("sess-1")
	if name != "Rowan" {
		t.Errorf("GetAlias after overwrite = %q, want Rowan", name)
	}
}
