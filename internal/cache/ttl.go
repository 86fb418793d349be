package cache

import (
	"sync"
	"time"
)

// TTLStore is a small in-process expiring store used for OTP request
// cooldowns, failed-attempt counters and pending profile updates. Entries
// are purged lazily on access.
type TTLStore struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

func NewTTLStore() *TTLStore {
	return &TTLStore{
		items: map[string]entry{},
		now:   time.Now,
	}
}

// NewTTLStoreWithClock is used by tests to control expiry.
func NewTTLStoreWithClock(now func() time.Time) *TTLStore {
	s := NewTTLStore()
	s.now = now
	return s
}

// Set stores value under key for ttl.
func (s *TTLStore) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry{value: value, expiresAt: s.now().Add(ttl)}
}

// Get returns the live value for key.
func (s *TTLStore) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.After(s.now()) {
		delete(s.items, key)
		return nil, false
	}
	return e.value, true
}

// Delete removes key.
func (s *TTLStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Incr bumps an integer counter, creating it with ttl when absent. The ttl
// of an existing counter is not extended, matching attempt-window
// semantics.
func (s *TTLStore) Incr(key string, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if ok && e.expiresAt.After(s.now()) {
		n, _ := e.value.(int)
		n++
		s.items[key] = entry{value: n, expiresAt: e.expiresAt}
		return n
	}
	s.items[key] = entry{value: 1, expiresAt: s.now().Add(ttl)}
	return 1
}

// GetInt returns a live counter value, 0 when absent.
func (s *TTLStore) GetInt(key string) int {
	v, ok := s.Get(key)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}
