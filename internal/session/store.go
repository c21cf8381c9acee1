package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
)

// Credentials is the persisted slice of a session, enough to attempt a
// silent renewal on the next start instead of forcing a fresh login.
type Credentials struct {
	AccessToken string `json:"access_token"`
	Email       string `json:"email"`
}

// CredentialStore persists credentials across process restarts.
//
// Implementations must tolerate concurrent access from the manager and
// treat a missing record as (nil, nil), not an error.
type CredentialStore interface {
	// Load returns the stored credentials, or nil if none exist.
	Load() (*Credentials, error)

	// Save stores the credentials, replacing any existing record.
	Save(creds *Credentials) error

	// Clear removes the stored credentials. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore persists credentials as a 0600 JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a credential store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored credentials, or nil if the file does not exist.
func (s *FileStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read credentials", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnmarshal, "failed to parse credentials", err)
	}

	return &creds, nil
}

// Save stores the credentials, creating the parent directory if needed.
func (s *FileStore) Save(creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.NewFileWriteError(s.path, err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.NewFileWriteError(s.path, err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.NewFileWriteError(s.path, err)
	}

	return nil
}

// Clear removes the credentials file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to remove credentials", err)
	}
	return nil
}

// MemoryStore is an in-memory credential store for tests.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored credentials, or nil.
func (s *MemoryStore) Load() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, nil
	}
	copy := *s.creds
	return &copy, nil
}

// Save stores the credentials.
func (s *MemoryStore) Save(creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *creds
	s.creds = &copy
	return nil
}

// Clear removes the credentials.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}
