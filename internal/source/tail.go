package source

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"unicode/utf8"
)

// tailChunk is the backward seek step used when hunting for the final
// newline. Session log lines are usually far smaller than this.
const tailChunk = 4096

// workingPlaceholder is shown when the last line yields no usable text.
const workingPlaceholder = "Working..."

// LastLine returns the last line of the file without reading it from
// the start. ok is false for an empty file, which is distinct from a
// file whose last line is empty. A missing trailing newline means the
// last line is the remaining content.
func LastLine(path string) (line string, ok bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", false, err
	}
	size := info.Size()
	if size == 0 {
		return "", false, nil
	}

	// end excludes a single trailing newline so "L3\n" yields "L3".
	end := size
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err == nil && last[0] == '\n' {
		end--
		if end == 0 {
			return "", true, nil
		}
	}

	// Walk backward in chunks until a newline appears or the file
	// start is reached.
	start := int64(0)
	buf := make([]byte, tailChunk)
	for pos := end; pos > 0; {
		n := int64(tailChunk)
		if n > pos {
			n = pos
		}
		pos -= n
		if _, err := f.ReadAt(buf[:n], pos); err != nil && err != io.EOF {
			return "", false, err
		}
		if idx := bytes.LastIndexByte(buf[:n], '\n'); idx >= 0 {
			start = pos + int64(idx) + 1
			break
		}
	}

	out := make([]byte, end-start)
	if _, err := f.ReadAt(out, start); err != nil && err != io.EOF {
		return "", false, err
	}
	return string(out), true, nil
}

// Excerpt returns a short description of what a session is doing right
// now, taken from the text content of its last log line. Any failure
// (unreadable file, malformed line, non-text content) degrades to a
// placeholder rather than an error.
func Excerpt(path string, maxLen int) string {
	line, ok, err := LastLine(path)
	if err != nil || !ok {
		return workingPlaceholder
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return workingPlaceholder
	}

	text := TextContent(record)
	if text == "" || !utf8.ValidString(text) {
		return workingPlaceholder
	}
	return Truncate(text, maxLen)
}

// Truncate shortens s to at most maxLen runes, appending an ellipsis
// when content was cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
