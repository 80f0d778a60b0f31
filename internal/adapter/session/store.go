package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sharugesh2303/chef/internal/interfaces"
)

const tokenFile = "token"

// FileStore persists the staff bearer token in a file under the user's
// config directory, so a session survives restarts the way a browser
// profile survives reloads.
type FileStore struct {
	dir string
}

// DefaultDir returns the per-user storage directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "canteen-chef"), nil
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600)
}

// Token returns the stored token and whether one is present. Read failures
// are indistinguishable from absence on purpose: the caller's only decision
// is "logged in or not".
func (s *FileStore) Token() (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) Clear() error {
	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ interfaces.SessionStore = (*FileStore)(nil)
