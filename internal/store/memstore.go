package store

import (
	"fmt"
	"sync"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// MemoryStore is an in-memory Sink for tests and dry runs.
// It records the same identifiers a FileStore would produce, keyed by
// content, so dedup behavior can be asserted without touching disk.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	order   []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Persist stores the encoded spectrum under its content-addressed identifier.
func (s *MemoryStore) Persist(spectrum model.Spectrum, tag string) (string, error) {
	hash, err := ContentHash(spectrum)
	if err != nil {
		return "", err
	}
	body, err := encodeResult(spectrum, tag)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.json", tag, hash)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.entries[name]; !seen {
		s.order = append(s.order, name)
	}
	s.entries[name] = body
	return name, nil
}

// Len returns the number of distinct stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Names returns the stored identifiers in first-seen order.
func (s *MemoryStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the stored bytes for an identifier, if present.
func (s *MemoryStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.entries[name]
	return body, ok
}
