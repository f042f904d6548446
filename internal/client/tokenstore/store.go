// Package tokenstore keeps the CLI's access token between runs in a file
// readable only by the current user.
package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/filex"
)

// ErrNoToken is returned by Load when nothing is stored.
var ErrNoToken = errors.New("not logged in")

const (
	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600
)

type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save replaces the stored token.
func (s *FileStore) Save(token string) error {
	if err := filex.EnsureDir(filepath.Dir(s.path), dirPerm); err != nil {
		return err
	}
	return filex.WriteFileAtomic(s.path, []byte(token), filePerm)
}

// Load returns the stored token or ErrNoToken.
func (s *FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("read token: %w", err)
	}

	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
