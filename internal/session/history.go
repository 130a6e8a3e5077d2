package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/alfie-app/interview-coach/internal/types"
)

// maxHistoryEntries bounds the persisted feedback history.
const maxHistoryEntries = 10

// historyKey is the storage key the history is persisted under.
const historyKey = "feedback_history"

// Store is an opaque key-value store. The host application decides what backs
// it (on a phone this is the device's key-value storage).
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// MemoryStore is a Store backed by a map, used as the default and in tests.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

// Get returns the stored value for key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// History is the most-recent-first feedback history, capped at
// maxHistoryEntries and persisted through a Store.
type History struct {
	mu    sync.Mutex
	store Store
}

// NewHistory creates a history over the given store.
func NewHistory(store Store) *History {
	if store == nil {
		store = NewMemoryStore()
	}
	return &History{store: store}
}

// Add prepends an entry, assigning it an ID when absent, and trims the
// history to its bound.
func (h *History) Add(entry types.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load()
	if err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	entries = append([]types.HistoryEntry{entry}, entries...)
	if len(entries) > maxHistoryEntries {
		entries = entries[:maxHistoryEntries]
	}
	return h.save(entries)
}

// Entries returns the stored history, most recent first.
func (h *History) Entries() ([]types.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

// Clear removes the stored history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.store.Remove(historyKey)
}

func (h *History) load() ([]types.HistoryEntry, error) {
	raw, ok := h.store.Get(historyKey)
	if !ok || raw == "" {
		return nil, nil
	}
	var entries []types.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("corrupt feedback history: %w", err)
	}
	return entries, nil
}

func (h *History) save(entries []types.HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	h.store.Set(historyKey, string(raw))
	return nil
}
