package source

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/model"
)

// Extracted holds the usage and cost signals found in one decoded record.
type Extracted struct {
	Usage   model.UsageTotals
	CostUSD float64
}

// ExtractUsage walks an arbitrary decoded JSON value and sums every
// usage and cost signal reachable through message-wrapper nesting.
// Non-object values and missing fields contribute zero; the walk never
// fails on malformed shapes.
func ExtractUsage(node any) Extracted {
	var ex Extracted
	extractInto(node, &ex)
	return ex
}

func extractInto(node any, ex *Extracted) {
	obj, ok := node.(map[string]any)
	if !ok {
		return
	}

	if usage, ok := obj["usage"].(map[string]any); ok {
		ex.Usage.TokensIn += numField(usage, "input", "input_tokens")
		ex.Usage.TokensOut += numField(usage, "output", "output_tokens")
	}

	switch cost := obj["cost"].(type) {
	case float64:
		ex.CostUSD += cost
	case map[string]any:
		if total, ok := cost["total"].(float64); ok {
			ex.CostUSD += total
		}
	}

	// Usage may sit on an enclosing message wrapper at any depth.
	extractInto(obj["message"], ex)
}

// numField returns the first numeric value among the named keys,
// rounded toward zero. Negative counts are ignored.
func numField(obj map[string]any, keys ...string) int64 {
	for _, k := range keys {
		if v, ok := obj[k].(float64); ok {
			if v < 0 {
				return 0
			}
			return int64(v)
		}
	}
	return 0
}

// FileScan holds the accumulated result of reading every line of a
// session log.
type FileScan struct {
	Usage       model.UsageTotals
	CostUSD     float64 // summed from explicit cost signals, zero if none
	Events      int     // decoded event records
	ParseErrors int
	FirstSeen   time.Time // earliest parseable timestamp field
	FirstText   string    // earliest text content, for task summaries
}

// ScanFile reads a session JSONL file line by line and accumulates
// usage, cost, and descriptive signals. Malformed lines contribute
// zero and are counted, never propagated.
func ScanFile(path string) (FileScan, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileScan{}, err
	}
	defer func() { _ = f.Close() }()

	var fs FileScan

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 2*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal(line, &record); err != nil {
			fs.ParseErrors++
			continue
		}
		fs.Events++

		ex := ExtractUsage(record)
		fs.Usage.Add(ex.Usage)
		fs.CostUSD += ex.CostUSD

		if fs.FirstSeen.IsZero() {
			if raw, ok := record["timestamp"].(string); ok {
				if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
					fs.FirstSeen = ts
				}
			}
		}
		if fs.FirstText == "" {
			fs.FirstText = TextContent(record)
		}
	}

	if err := scanner.Err(); err != nil {
		return fs, err
	}
	return fs, nil
}

// TextContent extracts the first human-readable text from a decoded
// record: a "text" field, a message "content" string, or the first
// text block of a content part array.
func TextContent(node any) string {
	obj, ok := node.(map[string]any)
	if !ok {
		return ""
	}

	if text, ok := obj["text"].(string); ok && text != "" {
		return text
	}

	switch content := obj["content"].(type) {
	case string:
		if content != "" {
			return content
		}
	case []any:
		for _, part := range content {
			block, ok := part.(map[string]any)
			if !ok {
				continue
			}
			if t, _ := block["type"].(string); t != "" && t != "text" {
				continue
			}
			if text, ok := block["text"].(string); ok && text != "" {
				return text
			}
		}
	}

	return TextContent(obj["message"])
}
