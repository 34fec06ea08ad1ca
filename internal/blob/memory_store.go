package blob

import "sync"

// MemoryStore is an in-process Store used by tests and fault injection.
// It keeps its own copies of stored values so callers cannot mutate
// state behind its back.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	hub    *Hub
	failer func(key string) error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), hub: NewHub()}
}

// Get returns a copy of the stored value for key, or ErrKeyNotFound.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key. If a write failer is installed
// and returns an error, the previous value is left untouched.
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	if s.failer != nil {
		if err := s.failer(key); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.mu.Unlock()

	s.hub.Notify(key)
	return nil
}

// Subscribe registers for change hints on key. See Hub.Subscribe.
func (s *MemoryStore) Subscribe(key string) (<-chan struct{}, func()) {
	return s.hub.Subscribe(key)
}

// FailWrites installs a hook consulted before every Set. Passing nil
// restores normal behavior.
func (s *MemoryStore) FailWrites(failer func(key string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failer = failer
}
