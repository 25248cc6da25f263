// Package model defines domain types for the insight dashboard.
package model

import "time"

// UsageTotals holds accumulated token counts for one or more sessions.
type UsageTotals struct {
	TokensIn  int64 `json:"tokens_in"`
	TokensOut int64 `json:"tokens_out"`
}

// Add accumulates another total into this one.
func (u *UsageTotals) Add(other UsageTotals) {
	u.TokensIn += other.TokensIn
	u.TokensOut += other.TokensOut
}

// ActiveSession is one row of the live dashboard, rebuilt every scan cycle.
type ActiveSession struct {
	DisplayName string      `json:"display_name"`
	ShortID     string      `json:"short_id"`
	LastMessage string      `json:"last_message"`
	ModTime     time.Time   `json:"mtime"`
	Usage       UsageTotals `json:"usage"`
	CostUSD     float64     `json:"cost_usd"`
	Events      int         `json:"events"`
}

// HistoryEntry is the durable record of one completed session.
// Written at most once per session id, never updated.
type HistoryEntry struct {
	ID          int64     `json:"id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	SessionID   string    `json:"session_id"`
	DisplayName string    `json:"display_name"`
	Task        string    `json:"task"`
	DurationMs  int64     `json:"duration_ms"`
	TokensIn    int64     `json:"tokens_in"`
	TokensOut   int64     `json:"tokens_out"`
	CostUSD     float64   `json:"cost_usd"`
	Status      string    `json:"status"`
}

// Snapshot is the complete aggregate published to readers once per
// cycle. It is immutable after publication.
type Snapshot struct {
	Active      []ActiveSession `json:"active"`
	Totals      UsageTotals     `json:"totals"`
	TotalCost   float64         `json:"total_cost_usd"`
	History     []HistoryEntry  `json:"history"`
	GeneratedAt time.Time       `json:"generated_at"`
}
