package collector

import "time"

// Class is the recency classification of a session file.
type Class int

// Classification states, mutually exclusive per cycle.
const (
	// ClassActive sessions were written within the active window and
	// appear on the live dashboard.
	ClassActive Class = iota
	// ClassSettling sessions are past the active window but not yet
	// old enough to archive; a grace period for paused sessions.
	ClassSettling
	// ClassHistorical sessions are past the settled window and are
	// candidates for a one-time history write.
	ClassHistorical
)

func (c Class) String() string {
	switch c {
	case ClassActive:
		return "active"
	case ClassSettling:
		return "settling"
	case ClassHistorical:
		return "historical"
	}
	return "unknown"
}

// Classify buckets a session by elapsed time since its last write.
func Classify(age, activeWindow, settledWindow time.Duration) Class {
	switch {
	case age < activeWindow:
		return ClassActive
	case age < settledWindow:
		return ClassSettling
	default:
		return ClassHistorical
	}
}
