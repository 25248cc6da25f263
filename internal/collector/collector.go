// Package collector runs the background scan cycle that aggregates
// session logs into published dashboard snapshots.
package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/alfredpatchclaw/insight-dashboard/internal/alias"
	"github.com/alfredpatchclaw/insight-dashboard/internal/config"
	"github.com/alfredpatchclaw/insight-dashboard/internal/model"
	"github.com/alfredpatchclaw/insight-dashboard/internal/source"
	"github.com/alfredpatchclaw/insight-dashboard/internal/store"
)

// excerptMaxLen caps the last-message excerpt shown for active sessions.
const excerptMaxLen = 100

// Status describes the collector's runtime state for observability.
type Status struct {
	StartedAt   time.Time `json:"started_at"`
	LastCycleAt time.Time `json:"last_cycle_at"`
	CycleCount  int64     `json:"cycle_count"`
	IntervalSec int       `json:"interval_sec"`
	LastError   string    `json:"last_error,omitempty"`
}

// Collector owns the scan cycle: discovery, classification, history
// write-back, and snapshot publication.
type Collector struct {
	cfg     config.Config
	store   *store.Store
	aliases *alias.Registry
	pub     *Publisher

	mu          sync.RWMutex
	startedAt   time.Time
	lastCycleAt time.Time
	cycleCount  int64
	lastError   string
}

// New returns a collector over the given store.
func New(cfg config.Config, st *store.Store) *Collector {
	return &Collector{
		cfg:       cfg,
		store:     st,
		aliases:   alias.NewRegistry(st),
		pub:       NewPublisher(),
		startedAt: time.Now(),
	}
}

// Snapshot returns the latest published aggregate. Non-blocking and
// safe for any number of concurrent callers.
func (c *Collector) Snapshot() *model.Snapshot {
	return c.pub.Current()
}

// ListRecent exposes the history query interface to collaborators.
func (c *Collector) ListRecent(limit int) ([]model.HistoryEntry, error) {
	return c.store.ListRecent(limit)
}

// Status returns the collector's runtime state.
func (c *Collector) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		StartedAt:   c.startedAt,
		LastCycleAt: c.lastCycleAt,
		CycleCount:  c.cycleCount,
		IntervalSec: int(c.cfg.ScanInterval().Seconds()),
		LastError:   c.lastError,
	}
}

// Run executes scan cycles until ctx is canceled. The first cycle
// starts immediately so the snapshot is useful right away; shutdown
// happens between cycles, never mid-cycle.
func (c *Collector) Run(ctx context.Context) error {
	c.runCycle()

	ticker := time.NewTicker(c.cfg.ScanInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.runCycle()
		}
	}
}

// runCycle executes one cycle and records its outcome. A failed or
// panicking cycle leaves the previous snapshot published and is
// retried on the next tick.
func (c *Collector) runCycle() {
	var snap *model.Snapshot
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("cycle panic: %v", r)
			}
		}()
		snap, err = c.cycle(time.Now())
		return err
	}()

	c.mu.Lock()
	c.lastCycleAt = time.Now()
	c.cycleCount++
	if err != nil {
		c.lastError = err.Error()
	} else {
		c.lastError = ""
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("insight collector: cycle failed: %v", err)
		return
	}
	c.pub.Publish(snap)
}

// cycle performs one full scan over the sessions directory and builds
// the next snapshot in a staging value. Per-file failures skip the
// file; the cycle itself fails only when the directory listing does.
func (c *Collector) cycle(now time.Time) (*model.Snapshot, error) {
	files, err := source.List(c.cfg.Sessions.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	rates := c.cfg.EffectiveRates()
	activeWin := c.cfg.ActiveWindow()
	settledWin := c.cfg.SettledWindow()

	var (
		active    []model.ActiveSession
		totals    model.UsageTotals
		totalCost float64
	)

	for _, f := range files {
		age := now.Sub(f.ModTime)

		switch Classify(age, activeWin, settledWin) {
		case ClassActive:
			fs, err := source.ScanFile(f.Path)
			if err != nil {
				log.Printf("insight collector: scan %s: %v", f.Path, err)
				continue
			}
			cost := costEstimate(fs, rates)
			totals.Add(fs.Usage)
			totalCost += cost
			active = append(active, model.ActiveSession{
				DisplayName: c.aliases.Resolve(f.SessionID),
				ShortID:     source.ShortID(f.SessionID),
				LastMessage: source.Excerpt(f.Path, excerptMaxLen),
				ModTime:     f.ModTime,
				Usage:       fs.Usage,
				CostUSD:     cost,
				Events:      fs.Events,
			})

		case ClassSettling:
			// Not shown and not archived yet, but still part of the
			// live totals.
			fs, err := source.ScanFile(f.Path)
			if err != nil {
				log.Printf("insight collector: scan %s: %v", f.Path, err)
				continue
			}
			totals.Add(fs.Usage)
			totalCost += costEstimate(fs, rates)

		case ClassHistorical:
			if err := c.archive(f, now, rates); err != nil {
				log.Printf("insight collector: archive %s: %v", f.SessionID, err)
			}
		}
	}

	// Most recently touched sessions first.
	sort.Slice(active, func(i, j int) bool {
		return active[i].ModTime.After(active[j].ModTime)
	})

	// Archived sessions are never re-read, so their lifetime
	// contribution comes from the history table instead.
	archived, archivedCost, err := c.store.ArchivedTotals()
	if err != nil {
		log.Printf("insight collector: archived totals: %v", err)
	} else {
		totals.Add(archived)
		totalCost += archivedCost
	}

	history, err := c.store.ListRecent(c.cfg.Sessions.HistoryLimit)
	if err != nil {
		log.Printf("insight collector: list history: %v", err)
	}

	return &model.Snapshot{
		Active:      active,
		Totals:      totals,
		TotalCost:   totalCost,
		History:     history,
		GeneratedAt: now,
	}, nil
}

// archive records a finished session exactly once. Files with an
// existing history row are skipped without re-reading their content.
func (c *Collector) archive(f source.SessionFile, now time.Time, rates config.Rates) error {
	exists, err := c.store.HasEntry(f.SessionID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	fs, err := source.ScanFile(f.Path)
	if err != nil {
		return err
	}

	var durationMs int64
	if !fs.FirstSeen.IsZero() && f.ModTime.After(fs.FirstSeen) {
		durationMs = f.ModTime.Sub(fs.FirstSeen).Milliseconds()
	}

	_, err = c.store.RecordIfAbsent(model.HistoryEntry{
		Timestamp:   now,
		SessionID:   f.SessionID,
		DisplayName: c.aliases.Resolve(f.SessionID),
		Task:        source.TaskSummary(fs.FirstText),
		DurationMs:  durationMs,
		TokensIn:    fs.Usage.TokensIn,
		TokensOut:   fs.Usage.TokensOut,
		CostUSD:     costEstimate(fs, rates),
		Status:      "completed",
	})
	return err
}

// costEstimate prefers explicit cost signals recorded in the log;
// sessions without them are priced from token counts.
func costEstimate(fs source.FileScan, rates config.Rates) float64 {
	if fs.CostUSD > 0 {
		return fs.CostUSD
	}
	return rates.Cost(fs.Usage.TokensIn, fs.Usage.TokensOut)
}
