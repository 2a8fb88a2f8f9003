package session

import (
	"os"
	"strings"
	"sync"
)

// FileTokenStore persists the access token as a single string at a fixed
// path. A missing or empty file means no token.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
