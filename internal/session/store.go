// ABOUTME: Persistent bearer token storage in the XDG config directory
// ABOUTME: The single shared credential; written only by the manager and the 401 path

package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists the opaque bearer token as a single file on disk and
// caches it in memory. Safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string

	loaded bool
	token  string
}

// NewFileStore creates a token store backed by the given file path. An empty
// path falls back to DefaultTokenPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultTokenPath()
	}
	return &FileStore{path: path}
}

// DefaultTokenPath returns the default token location following XDG spec.
func DefaultTokenPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookhaven", "token")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookhaven", "token")
}

// Token returns the stored token, loading it from disk on first use.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loaded = true
		data, err := os.ReadFile(s.path)
		if err == nil {
			s.token = strings.TrimSpace(string(data))
		}
	}
	return s.token, s.token != ""
}

// Save persists the token to disk with owner-only permissions.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}
	s.token = token
	s.loaded = true
	return nil
}

// Clear removes the token from memory and disk. Clearing an already-cleared
// store is a no-op, not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
