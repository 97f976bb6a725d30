package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store, used in tests and as a fallback when
// no Redis address is configured. It can be flipped unavailable to exercise
// the degraded path.
type MemoryStore struct {
	mu          sync.RWMutex
	data        map[string]string
	unavailable bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.unavailable {
		return "", false
	}
	val, ok := s.data[key]
	return val, ok
}

func (s *MemoryStore) Set(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return
	}
	s.data[key] = value
}

func (s *MemoryStore) Remove(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return
	}
	delete(s.data, key)
}

func (s *MemoryStore) IsAvailable(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.unavailable
}

// SetAvailable toggles availability, for tests of the degraded path.
func (s *MemoryStore) SetAvailable(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = !available
}

// MemoryStores hands out one MemoryStore per visitor, the in-process
// counterpart of prefixing a shared Redis connection. State is lost on
// restart; consumers already tolerate a missing snapshot.
type MemoryStores struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemoryStores() *MemoryStores {
	return &MemoryStores{stores: make(map[string]*MemoryStore)}
}

// ForVisitor returns the visitor's store, creating it on first use.
func (m *MemoryStores) ForVisitor(visitorID string) Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[visitorID]; !ok {
		m.stores[visitorID] = NewMemoryStore()
	}
	return m.stores[visitorID]
}
