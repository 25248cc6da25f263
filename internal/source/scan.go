// Package source discovers and parses agent session JSONL files.
package source

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SessionFile represents a session log found during directory scanning.
type SessionFile struct {
	SessionID string
	Path      string
	ModTime   time.Time
	Size      int64
}

// List enumerates session log files in dir. The session id is the
// filename stem; files without a .jsonl suffix (locks, sidecars) are
// ignored. A missing directory yields an empty result, not an error.
func List(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []SessionFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".jsonl" {
			continue
		}

		info, err := e.Info()
		if err != nil {
			// File vanished between ReadDir and Stat; skip it.
			continue
		}

		files = append(files, SessionFile{
			SessionID: strings.TrimSuffix(name, ".jsonl"),
			Path:      filepath.Join(dir, name),
			ModTime:   info.ModTime(),
			Size:      info.Size(),
		})
	}

	return files, nil
}

// ShortID returns a compact display form of a session id.
func ShortID(sessionID string) string {
	if len(sessionID) <= 8 {
		return sessionID
	}
	return sessionID[:8]
}
