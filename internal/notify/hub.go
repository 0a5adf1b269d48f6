// Package notify carries transient user-facing notices from the session
// and cart components to whatever UI is listening. A Hub fans notices out
// to subscribers without ever blocking the publishing operation: a slow
// subscriber loses notices rather than stalling a cart mutation.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/diycomponents/storefront/internal/core/ports"
)

// Level classifies a notice for presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a single transient notification.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Hub is a per-visitor notice broadcaster.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	buffer int
	closed bool
}

var _ ports.Notifier = (*Hub)(nil)

// NewHub creates a hub whose subscribers each buffer up to buffer notices.
// A minimum of 1 is enforced so sends stay non-blocking.
func NewHub(buffer int) *Hub {
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: max(buffer, 1),
	}
}

func (h *Hub) Success(message string) { h.publish(LevelSuccess, message) }
func (h *Hub) Error(message string)   { h.publish(LevelError, message) }
func (h *Hub) Info(message string)    { h.publish(LevelInfo, message) }

func (h *Hub) publish(level Level, message string) {
	n := Notice{Level: level, Message: message, Time: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for sub := range h.subs {
		select {
		case sub.ch <- n:
		default:
			// Full buffer: drop for this subscriber.
		}
	}
}

// Subscribe registers a listener. The subscription is torn down when ctx
// is cancelled or Close is called on the subscriber.
func (h *Hub) Subscribe(ctx context.Context) *Subscriber {
	sub := &Subscriber{ch: make(chan Notice, h.buffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.close()
		return sub
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			h.unsubscribe(sub)
		}()
	}
	return sub
}

// Close shuts the hub down and closes all subscriber channels. Idempotent.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		sub.close()
		delete(h.subs, sub)
	}
}

func (h *Hub) unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		sub.close()
	}
}

// Subscriber receives notices from a Hub.
type Subscriber struct {
	ch     chan Notice
	mu     sync.Mutex
	closed bool
}

// C returns the receive channel. It is closed when the subscription ends.
func (s *Subscriber) C() <-chan Notice {
	return s.ch
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
