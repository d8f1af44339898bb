package realtime

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// SessionStore keeps per-player state in memory with an idle expiry, plus a
// broadcaster per session.
type SessionStore[T any] struct {
	cache *gocache.Cache

	mu      sync.Mutex
	hubs    map[string]*Broadcaster
	onEvict func(id string, state T)
}

// NewSessionStore creates a store whose sessions expire after ttl without
// access. A cleanup interval of zero disables the background sweep.
func NewSessionStore[T any](ttl, cleanup time.Duration) *SessionStore[T] {
	s := &SessionStore[T]{
		cache: gocache.New(ttl, cleanup),
		hubs:  make(map[string]*Broadcaster),
	}
	s.cache.OnEvicted(s.evicted)
	return s
}

// OnEvict registers fn to run after a session expires or is deleted.
func (s *SessionStore[T]) OnEvict(fn func(id string, state T)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

func (s *SessionStore[T]) evicted(id string, v any) {
	s.mu.Lock()
	hub := s.hubs[id]
	delete(s.hubs, id)
	fn := s.onEvict
	s.mu.Unlock()
	if hub != nil {
		hub.Close()
	}
	if state, ok := v.(T); ok && fn != nil {
		fn(id, state)
	}
}

// Create stores state under id with a fresh broadcaster.
func (s *SessionStore[T]) Create(id string, state T) {
	s.mu.Lock()
	s.hubs[id] = NewBroadcaster()
	s.mu.Unlock()
	s.cache.Set(id, state, gocache.DefaultExpiration)
}

// Get returns the session and pushes its expiry back.
func (s *SessionStore[T]) Get(id string) (T, bool) {
	var zero T
	v, ok := s.cache.Get(id)
	if !ok {
		return zero, false
	}
	state, ok := v.(T)
	if !ok {
		return zero, false
	}
	s.cache.Set(id, state, gocache.DefaultExpiration)
	return state, true
}

// Delete drops a session; eviction hooks run.
func (s *SessionStore[T]) Delete(id string) {
	s.cache.Delete(id)
}

// Len is the number of stored sessions, including expired ones not yet swept.
func (s *SessionStore[T]) Len() int {
	return s.cache.ItemCount()
}

// Broadcaster returns the session's broadcaster. Hubs live from Create
// until eviction; there is none for unknown or evicted ids.
func (s *SessionStore[T]) Broadcaster(id string) (*Broadcaster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hub, ok := s.hubs[id]
	return hub, ok
}

// Publish notifies the session's subscribers. It is a no-op once the
// session is gone.
func (s *SessionStore[T]) Publish(id string, events ...Event) {
	if hub, ok := s.Broadcaster(id); ok {
		hub.Publish(events...)
	}
}
