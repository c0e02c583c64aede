// services/stream.go - Live collection subscriptions
//
// The Hub is the realtime half of the data access layer: every subscriber holds
// a scoped fetch closure, and each committed mutation re-runs those closures and
// re-emits the FULL current set (snapshots, not deltas). Consumers treat the
// emitted data as read-only and re-render from the latest snapshot.
package services

import (
	"sync"
)

// FetchFunc re-queries the subscriber's scoped view of a collection.
type FetchFunc func() (interface{}, error)

// Snapshot is one emission of a live query. Err is set when the underlying
// fetch failed; the next successful snapshot clears it. Consumers keep
// rendering their last-known-good data while Err is set.
type Snapshot struct {
	Data interface{}
	Err  error
}

// Subscription is one live query. C delivers snapshots with latest-wins
// semantics: a slow consumer sees the newest state, never a backlog.
type Subscription struct {
	C chan Snapshot

	hub        *Hub
	collection string
	fetch      FetchFunc

	mu     sync.Mutex
	closed bool
}

// Hub fans mutation notifications out to collection subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers a live query against a named collection and delivers an
// initial snapshot so the subscriber's loading state ends without waiting for
// a mutation.
func (h *Hub) Subscribe(collection string, fetch FetchFunc) *Subscription {
	sub := &Subscription{
		C:          make(chan Snapshot, 1),
		hub:        h,
		collection: collection,
		fetch:      fetch,
	}

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[*Subscription]struct{})
	}
	h.subs[collection][sub] = struct{}{}
	h.mu.Unlock()

	sub.emit()
	return sub
}

// Notify re-runs every subscriber's fetch for a collection and re-emits the
// full current set. Called by the service layer after each committed
// create/update/delete.
func (h *Hub) Notify(collection string) {
	h.mu.RLock()
	subs := make([]*Subscription, 0, len(h.subs[collection]))
	for sub := range h.subs[collection] {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		sub.emit()
	}
}

// SubscriberCount returns the number of live subscriptions on a collection.
func (h *Hub) SubscriberCount(collection string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[collection])
}

// emit runs the fetch and pushes the snapshot, dropping the stale one if the
// consumer has not caught up yet.
func (s *Subscription) emit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	data, err := s.fetch()
	snap := Snapshot{Data: data, Err: err}

	for {
		select {
		case s.C <- snap:
			return
		default:
			// Channel full: discard the stale snapshot and retry
			select {
			case <-s.C:
			default:
			}
		}
	}
}

// Unsubscribe removes the subscription and stops all further emissions
// immediately. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.hub.mu.Lock()
	delete(s.hub.subs[s.collection], s)
	s.hub.mu.Unlock()

	close(s.C)
}
