package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/roteiro/core/internal/domain/entities"
)

// ErrNotLoggedIn is returned when an operation needs an active session.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionStore persists the logged-in user between runs. It plays the role
// the browser's localStorage played for the original front end.
type SessionStore interface {
	Load() (*entities.User, error)
	Save(user *entities.User) error
	Clear() error
}

// FileSessionStore keeps the session in a JSON file.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore creates a file-backed session store.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// Load reads the stored session. A missing file means no session.
func (s *FileSessionStore) Load() (*entities.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// Save writes the session to disk, creating parent directories as needed.
func (s *FileSessionStore) Save(user *entities.User) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemorySessionStore keeps the session in memory, mainly for tests.
type MemorySessionStore struct {
	mu   sync.Mutex
	user *entities.User
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Load() (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, nil
}

func (s *MemorySessionStore) Save(user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

// Session is the cached identity of the logged-in user. The cached record
// (favorites included) can go stale against the server; Refresh and the
// favorites reconciliation bring it back in line.
type Session struct {
	store SessionStore

	mu   sync.Mutex
	user *entities.User
}

// NewSession loads any persisted session from the store.
func NewSession(store SessionStore) (*Session, error) {
	user, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, user: user}, nil
}

// Current returns the cached user, or ErrNotLoggedIn.
func (s *Session) Current() (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, ErrNotLoggedIn
	}
	clone := *s.user
	clone.Favorites = append([]string(nil), s.user.Favorites...)
	return &clone, nil
}

// LoggedIn reports whether a session is active.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Set replaces the cached user and persists it.
func (s *Session) Set(user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return s.store.Save(user)
}

// Clear drops the session.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return s.store.Clear()
}

// Refresh re-fetches the user record from the server and updates the cache.
// A deleted account clears the session and returns ErrUserNotFound.
func (s *Session) Refresh(ctx context.Context, api *Client) (*entities.User, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}

	user, err := api.GetUser(ctx, current.ID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			if clearErr := s.Clear(); clearErr != nil {
				return nil, clearErr
			}
		}
		return nil, err
	}

	if err := s.Set(user); err != nil {
		return nil, err
	}
	return user, nil
}
