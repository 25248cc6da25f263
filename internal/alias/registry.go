// Package alias assigns stable human-readable names to session ids.
package alias

import (
	"log"
	"math/rand"
	"sync"
)

// namePool is the fixed set of call signs sessions draw from. Names
// may repeat across sessions; a given session always keeps its first
// draw.
var namePool = []string{
	"Falcon", "Osprey", "Kestrel", "Harrier", "Merlin",
	"Condor", "Raven", "Magpie", "Heron", "Swift",
	"Juniper", "Cedar", "Rowan", "Aspen", "Birch",
	"Basalt", "Flint", "Granite", "Quartz", "Slate",
	"Ember", "Frost", "Gale", "Mistral", "Zephyr",
}

// Persister is the durable backing for alias assignments.
type Persister interface {
	GetAlias(sessionID string) (string, bool, error)
	SaveAlias(sessionID, displayName string) error
}

// Registry resolves session ids to display names, drawing unseen ids
// a random name from the pool and persisting the assignment.
type Registry struct {
	store Persister

	mu    sync.Mutex
	cache map[string]string
}

// NewRegistry returns a registry backed by the given store.
func NewRegistry(store Persister) *Registry {
	return &Registry{
		store: store,
		cache: make(map[string]string),
	}
}

// Resolve returns the display name for a session id. The first
// resolution of an unseen id draws from the pool and persists the
// mapping before returning; later resolutions return the stored name.
// A persistence failure degrades to an in-memory assignment that is
// retried against the store on the next cold resolve.
func (r *Registry) Resolve(sessionID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.cache[sessionID]; ok {
		return name
	}

	if name, ok, err := r.store.GetAlias(sessionID); err == nil && ok {
		r.cache[sessionID] = name
		return name
	} else if err != nil {
		log.Printf("insight alias: lookup %s: %v", sessionID, err)
	}

	name := namePool[rand.Intn(len(namePool))]
	if err := r.store.SaveAlias(sessionID, name); err != nil {
		// Leave the cache cold so the next resolve retries the store.
		log.Printf("insight alias: persist %s: %v", sessionID, err)
		return name
	}

	r.cache[sessionID] = name
	return name
}
