package realtime

import (
	"sync"

	"campuskit.io/school-api-gateway/app/utils/logger"
)

// subscriberBuffer bounds how many undelivered events a subscriber may
// hold before the hub starts dropping for it.
const subscriberBuffer = 64

// Hub fans row-level change events out to per-tenant subscribers.
// Publish never blocks: a subscriber that cannot keep up loses events,
// which consumers recover from on the next event for the same row.
type Hub[T any] struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]chan ChangeEvent[T]
	nextID uint64
}

// NewHub creates an empty hub.
func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		subs: make(map[string]map[uint64]chan ChangeEvent[T]),
	}
}

// Subscribe registers a listener for one tenant's events. The returned
// cancel func must be called on teardown; after it returns the channel
// is closed and receives nothing further.
func (h *Hub[T]) Subscribe(tenantID string) (<-chan ChangeEvent[T], func()) {
	ch := make(chan ChangeEvent[T], subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[tenantID] == nil {
		h.subs[tenantID] = make(map[uint64]chan ChangeEvent[T])
	}
	h.subs[tenantID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		tenantSubs, ok := h.subs[tenantID]
		if !ok {
			return
		}
		if _, ok := tenantSubs[id]; !ok {
			return
		}
		delete(tenantSubs, id)
		if len(tenantSubs) == 0 {
			delete(h.subs, tenantID)
		}
		close(ch)
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber of the tenant.
func (h *Hub[T]) Publish(tenantID string, ev ChangeEvent[T]) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[tenantID] {
		select {
		case ch <- ev:
		default:
			logger.GetLogger().Warnf("realtime hub: dropping %s event for slow subscriber (tenant %s)", ev.EventType, tenantID)
		}
	}
}

// Subscribers reports how many listeners a tenant currently has.
func (h *Hub[T]) Subscribers(tenantID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[tenantID])
}
