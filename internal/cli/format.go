// Package cli provides formatting and rendering utilities for
// terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatTokens(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCost formats a USD cost value.
func FormatCost(cost float64) string {
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	}
	if cost >= 10 {
		return fmt.Sprintf("$%.1f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatDuration formats a millisecond duration into a human-readable
// string. e.g., 3725000 -> "1h 2m", 125000 -> "2m 5s"
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}

	secs := ms / 1000
	hours := secs / 3600
	mins := (secs % 3600) / 60
	secs %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatAge renders how long ago t was, coarsely.
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
