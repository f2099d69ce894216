package storage

import (
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSStore writes blobs under a local directory, served back via /uploads/.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./uploads"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	f, err := os.Create(filepath.Join(s.base, key))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.base, key))
}

func (s *FSStore) URL(key string) string {
	return "/uploads/" + key
}

// cleanKey keeps keys to a single path element below the base directory.
func cleanKey(key string) (string, error) {
	key = path.Clean(strings.TrimPrefix(key, "/"))
	if key == "" || key == "." || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return "", errors.New("invalid blob key")
	}
	return key, nil
}
