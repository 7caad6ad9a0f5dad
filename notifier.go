package funkos

import (
	"context"
	"sync"
	"time"
)

// EventType names a catalog change
type EventType string

const (
	EventFunkoCreated EventType = "funko.created"
	EventFunkoUpdated EventType = "funko.updated"
	EventFunkoPatched EventType = "funko.patched"
	EventFunkoDeleted EventType = "funko.deleted"
)

// Event is a catalog change destined for admin consumers. The real-time
// transport that fans it out to clients lives outside this package.
type Event struct {
	Type       EventType `json:"type"`
	Funko      *Funko    `json:"funko,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, Event) error { return nil }

// BroadcastHub is an in-process Notifier that fans events out to
// subscribers. Slow subscribers lose events rather than stall writers.
type BroadcastHub struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
	buffer      int
}

var _ Notifier = (*BroadcastHub)(nil)

// NewBroadcastHub creates a hub whose subscriber channels buffer up to
// buffer events
func NewBroadcastHub(buffer int) *BroadcastHub {
	if buffer <= 0 {
		buffer = 16
	}
	return &BroadcastHub{
		subscribers: make(map[int]chan Event),
		buffer:      buffer,
	}
}

// Subscribe registers a consumer. Cancel releases the channel; pending
// events are discarded.
func (h *BroadcastHub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan Event, h.buffer)
	h.subscribers[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Notify delivers the event to every subscriber without blocking
func (h *BroadcastHub) Notify(_ context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}
