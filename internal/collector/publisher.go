package collector

import (
	"sync"

	"github.com/alfredpatchclaw/insight-dashboard/internal/model"
)

// Publisher owns the currently published snapshot. Writers stage a
// complete snapshot off to the side and swap it in with Publish;
// readers always observe either the old or the new value whole.
type Publisher struct {
	mu   sync.RWMutex
	snap *model.Snapshot
}

// NewPublisher returns a publisher seeded with an empty snapshot so
// readers never see nil before the first cycle completes.
func NewPublisher() *Publisher {
	return &Publisher{snap: &model.Snapshot{}}
}

// Publish replaces the current snapshot. The snapshot must not be
// mutated after publication.
func (p *Publisher) Publish(snap *model.Snapshot) {
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
}

// Current returns the latest published snapshot. Safe for concurrent
// use and never blocks on scan work.
func (p *Publisher) Current() *model.Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}
