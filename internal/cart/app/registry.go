package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry hands out one Store per browsing session, restoring it from the
// persister on first use.
type Registry struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
	log       *slog.Logger
}

func NewRegistry(p Persister, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		stores:    make(map[string]*Store),
		persister: p,
		log:       log,
	}
}

func (r *Registry) Get(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[sessionID]; ok {
		// under r.mu so a concurrent Sweep cannot unload a store just handed out
		s.touch()
		return s
	}
	s := NewStore(ctx, StorageKey(sessionID), r.persister, r.log)
	r.stores[sessionID] = s
	return s
}

// Sweep unloads stores untouched for longer than idle. Their state stays in the
// persister and is restored on the next Get.
func (r *Registry) Sweep(idle time.Duration) int {
	if r.persister == nil {
		return 0
	}
	cutoff := time.Now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.stores {
		if s.idleSince().Before(cutoff) {
			delete(r.stores, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
