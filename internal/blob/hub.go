package blob

import "sync"

// Hub fans out per-key change hints to subscribers. It is a freshness
// hint only: sends are non-blocking and coalesce into the channel's
// single buffered slot, and no delivery or ordering guarantee exists
// across subscribers.
type Hub struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string][]chan struct{})}
}

// Subscribe returns a channel that receives a hint whenever key changes,
// and a cancel function that must be called to release the subscription.
func (h *Hub) Subscribe(key string) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	h.subs[key] = append(h.subs[key], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subs[key]
		for i, c := range subs {
			if c == ch {
				h.subs[key] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
	return ch, cancel
}

// Notify publishes a change hint for key. Subscribers that have not
// drained their previous hint are skipped rather than blocked.
func (h *Hub) Notify(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
