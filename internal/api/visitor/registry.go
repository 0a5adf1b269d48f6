// Package visitor owns the per-visitor state containers: each visitor gets
// a session manager, a cart synchronizer and a notification hub, wired
// together once and cached until the visitor goes idle.
package visitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/diycomponents/storefront/internal/core/ports"
	"github.com/diycomponents/storefront/internal/notify"
)

const (
	defaultIdleTTL  = 30 * time.Minute
	janitorInterval = time.Minute
)

// Container bundles one visitor's state components.
type Container struct {
	ID      string
	Session ports.SessionService
	Cart    ports.CartService
	Notices *notify.Hub
}

// Factory builds a fully wired Container for a visitor ID.
type Factory func(visitorID string) *Container

type entry struct {
	container *Container
	lastSeen  time.Time
}

// Registry caches containers by visitor ID and evicts idle ones. The
// container's startup session validation runs exactly once, on first
// resolution after process start.
type Registry struct {
	build   Factory
	idleTTL time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry creates a registry; non-positive idleTTL selects the default.
func NewRegistry(build Factory, idleTTL time.Duration, log zerolog.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &Registry{
		build:   build,
		idleTTL: idleTTL,
		log:     log,
		entries: make(map[string]*entry),
	}
}

// Start launches the eviction janitor. It stops when ctx is cancelled.
func (r *Registry) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.evictIdle()
			}
		}
	}()
}

// Resolve returns the visitor's container, building it on first touch.
// Building includes the best-effort validation of any stored credential,
// so a returning visitor's session is restored before the first handler
// runs.
func (r *Registry) Resolve(ctx context.Context, visitorID string) *Container {
	r.mu.Lock()
	e, ok := r.entries[visitorID]
	if ok {
		e.lastSeen = time.Now()
		r.mu.Unlock()
		return e.container
	}

	c := r.build(visitorID)
	r.entries[visitorID] = &entry{container: c, lastSeen: time.Now()}
	r.mu.Unlock()

	c.Session.ValidateStoredSession(ctx)
	r.log.Debug().Str("visitor_id", visitorID).Msg("visitor container created")
	return c
}

// Len reports the number of live containers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) evictIdle() {
	cutoff := time.Now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*Container
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.container)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Notices.Close()
	}
	if len(evicted) > 0 {
		r.log.Debug().Int("count", len(evicted)).Msg("idle visitor containers evicted")
	}
}
