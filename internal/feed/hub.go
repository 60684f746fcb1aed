package feed

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/ghostchess/pkg/coredto"
)

const subscriberBuffer = 32

// Hub fans session events out to any number of subscribers. Publishing
// never blocks: a subscriber that falls behind its buffer is dropped and
// its channel closed.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan coredto.Event
	logger *zap.Logger
}

// NewHub returns an empty hub. A nil logger is replaced with a nop.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{subs: make(map[int]chan coredto.Event), logger: logger}
}

// Subscribe registers a new event channel. The returned cancel function is
// safe to call more than once.
func (h *Hub) Subscribe() (<-chan coredto.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	ch := make(chan coredto.Event, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if c, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Publish delivers the event to every live subscriber.
func (h *Hub) Publish(ev coredto.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			delete(h.subs, id)
			close(ch)
			h.logger.Warn("dropping slow feed subscriber", zap.Int("subscriber_id", id))
		}
	}
}

// SubscriberCount reports the number of live subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
