package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"abc-123.jsonl", "def-456.jsonl", "abc-123.jsonl.lock", "sessions-index.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "archive.jsonl"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := List(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2", len(files))
	}

	ids := map[string]bool{}
	for _, f := range files {
		ids[f.SessionID] = true
		if f.ModTime.IsZero() {
			t.Errorf("%s: zero mtime", f.SessionID)
		}
	}
	if !ids["abc-123"] || !ids["def-456"] {
		t.Errorf("session ids = %v, want abc-123 and def-456", ids)
	}
}

func TestList_MissingDir(t *testing.T) {
	files, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("missing dir should not error, got %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("found %d files, want 0", len(files))
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q, want 01234567", got)
	}
	if got := ShortID("tiny"); got != "tiny" {
		t.Errorf("ShortID = %q, want tiny", got)
	}
}
