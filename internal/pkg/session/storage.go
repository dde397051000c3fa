// Package session implements the client side of the auth service: a
// persisted token session, an HTTP client that refreshes expired access
// tokens once before giving up, and small state machines for the
// multi-step signup and password reset flows.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adityarama/equipviz/internal/pkg/models"
)

// State is everything a client persists between runs.
type State struct {
	Tokens  *models.TokenPair   `json:"tokens"`
	Profile *models.UserProfile `json:"profile"`
}

// Storage persists session state. Load returns nil state when nothing
// has been saved yet.
type Storage interface {
	Load() (*State, error)
	Save(state *State) error
	Clear() error
}

// FileStorage keeps the session in a JSON file readable only by the
// owning user.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage at the given path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// DefaultStoragePath returns the per-user session file location.
func DefaultStoragePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "equipviz", "session.json"), nil
}

// Load reads the stored state. A missing file is not an error.
func (f *FileStorage) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	return &state, nil
}

// Save writes the state with owner-only permissions.
func (f *FileStorage) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemoryStorage holds session state in memory, for tests and short-lived
// tools.
type MemoryStorage struct {
	state *State
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() (*State, error) {
	return m.state, nil
}

func (m *MemoryStorage) Save(state *State) error {
	m.state = state
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.state = nil
	return nil
}
