package storage

import (
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps documents on the local filesystem under a base directory.
type LocalStore struct {
	baseDir string
}

var _ DocumentStore = (*LocalStore)(nil)

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(path string, content io.Reader) error {
	full := filepath.Join(s.baseDir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return err
	}
	return f.Sync()
}

func (s *LocalStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
