package session

import (
	"fmt"
	"sync"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

// Session is the in-memory view of the persisted session state. It is
// safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	storage Storage
	state   *State
}

// NewSession creates a session backed by the given storage. Call Init
// before use.
func NewSession(storage Storage) *Session {
	return &Session{storage: storage}
}

// Init loads any previously persisted state.
func (s *Session) Init() error {
	state, err := s.storage.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Close releases the session without touching persisted state.
func (s *Session) Close() error {
	s.mu.Lock()
	s.state = nil
	s.mu.Unlock()
	return nil
}

// Authenticated reports whether a token pair is present. It says nothing
// about token validity; the server decides that.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state != nil && s.state.Tokens != nil && s.state.Tokens.Access != ""
}

// AccessToken returns the stored access token, or empty.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil || s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.Access
}

// RefreshToken returns the stored refresh token, or empty.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil || s.state.Tokens == nil {
		return ""
	}
	return s.state.Tokens.Refresh
}

// Profile returns the cached user profile, or nil.
func (s *Session) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil
	}
	return s.state.Profile
}

// Update replaces the session state and persists it.
func (s *Session) Update(tokens *models.TokenPair, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &State{Tokens: tokens, Profile: profile}
	if err := s.storage.Save(state); err != nil {
		return err
	}
	s.state = state
	return nil
}

// Clear wipes the session in memory and in storage.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return err
	}
	s.state = nil
	return nil
}
