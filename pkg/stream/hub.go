package stream

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// DefaultBuffer is the per-subscriber event buffer size
const DefaultBuffer = 64

// Hub fans case events out to subscribed dashboards. Delivery is
// at-least-once with no cross-case ordering guarantee; a subscriber that
// cannot keep up is disconnected rather than throttling publishers, which
// forces the client through its reconnect-and-resync path — the same path
// that bounds staleness after any missed event.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]chan model.CaseEvent
	buffer      int
	closed      bool
}

var _ interfaces.Publisher = &Hub{}

type Option func(*Hub)

// WithBuffer overrides the per-subscriber buffer size
func WithBuffer(n int) Option {
	return func(h *Hub) {
		h.buffer = n
	}
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subscribers: make(map[string]chan model.CaseEvent),
		buffer:      DefaultBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish delivers the event to every live subscriber without blocking
func (h *Hub) Publish(ev model.CaseEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			// Slow consumer: drop it so it resyncs on reconnect.
			logging.Default().Warn("dropping slow event subscriber", "subscriber", id)
			delete(h.subscribers, id)
			close(ch)
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel func is
// idempotent; the channel is closed either by cancel, by the hub dropping a
// slow consumer, by Close, or when ctx is done. Subscribers must fetch the
// full case list after subscribing before trusting incremental events.
func (h *Hub) Subscribe(ctx context.Context) (<-chan model.CaseEvent, func()) {
	ch := make(chan model.CaseEvent, h.buffer)
	id := uuid.NewString()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subscribers[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(sub)
		}
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// Len returns the current subscriber count
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close drops all subscribers and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subscribers {
		delete(h.subscribers, id)
		close(ch)
	}
}
