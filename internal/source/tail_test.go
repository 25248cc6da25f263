package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRaw writes exact file content without adding a trailing newline.
func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"no trailing newline", "L1\nL2\nL3", "L3", true},
		{"trailing newline", "L1\nL2\nL3\n", "L3", true},
		{"single line", "only", "only", true},
		{"single line terminated", "only\n", "only", true},
		{"empty file", "", "", false},
		{"just a newline", "\n", "", true},
		{"long line", "first\n" + strings.Repeat("x", 3*tailChunk), strings.Repeat("x", 3*tailChunk), true},
		{"line spanning chunk boundary", strings.Repeat("a", tailChunk+10) + "\n" + strings.Repeat("b", tailChunk+5), strings.Repeat("b", tailChunk+5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRaw(t, tt.content)
			got, ok, err := LastLine(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLastLine_MissingFile(t *testing.T) {
	if _, _, err := LastLine(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"text from last line", `{"message":{"content":"first"}}` + "\n" + `{"message":{"content":"checking the tests"}}` + "\n", "checking the tests"},
		{"content parts", `{"message":{"content":[{"type":"text","text":"running build"}]}}`, "running build"},
		{"malformed last line", "{\"ok\":true}\nnot json at all", "Working..."},
		{"no text content", `{"usage":{"input":5,"output":2}}`, "Working..."},
		{"empty file", "", "Working..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRaw(t, tt.content)
			if got := Excerpt(path, 100); got != tt.want {
				t.Errorf("Excerpt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExcerpt_Truncates(t *testing.T) {
	long := strings.Repeat("z", 150)
	path := writeRaw(t, `{"message":{"content":"`+long+`"}}`)
	got := Excerpt(path, 100)
	if got != strings.Repeat("z", 100)+"..." {
		t.Errorf("Excerpt length = %d, want 103", len(got))
	}
}

func TestExcerpt_MissingFile(t *testing.T) {
	got := Excerpt(filepath.Join(t.TempDir(), "gone.jsonl"), 100)
	if got != "Working..." {
		t.Errorf("Excerpt = %q, want placeholder", got)
	}
}
