// Package session owns the mutable per-user state the generation layer needs:
// the in-memory credential, the selected model identifier, and the bounded
// feedback history. Keeping it in one place with its own locking makes
// concurrent use safe without module-level globals.
package session

import (
	"errors"
	"strings"
	"sync"
)

// ErrEmptyCredential means SetCredential was called with a blank key.
var ErrEmptyCredential = errors.New("API key cannot be empty")

// Session holds the credential and the active model identifier for one user.
// The credential is never persisted by this layer; it lives in process memory
// for the session only.
type Session struct {
	mu     sync.RWMutex
	apiKey string
	model  string
}

// New creates a session with the given default model identifier.
func New(defaultModel string) *Session {
	return &Session{model: defaultModel}
}

// SetCredential stores the trimmed API key for the session.
func (s *Session) SetCredential(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyCredential
	}
	s.mu.Lock()
	s.apiKey = key
	s.mu.Unlock()
	return nil
}

// Credential returns the stored API key, empty if none was set.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.apiKey
}

// Configured reports whether a credential is present.
func (s *Session) Configured() bool {
	return s.Credential() != ""
}

// SetModel updates the active model identifier. Credential validation calls
// this when it finds a concrete model from the target family.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

// Model returns the active model identifier.
func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}
