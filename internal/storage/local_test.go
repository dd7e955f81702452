package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskapp/internal/storage"

	"github.com/stretchr/testify/assert"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewLocalStore(dir)

	path := storage.DocumentPrefix + "report.pdf"
	err := store.Save(path, strings.NewReader("file contents"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "tasks", "documents", "report.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "file contents", string(data))

	err = store.Delete(path)
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "tasks", "documents", "report.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewLocalStore(dir)

	path := storage.DocumentPrefix + "notes.txt"
	assert.NoError(t, store.Save(path, strings.NewReader("first")))
	assert.NoError(t, store.Save(path, strings.NewReader("second")))

	data, err := os.ReadFile(filepath.Join(dir, "tasks", "documents", "notes.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalStore_DeleteMissingFile(t *testing.T) {
	store := storage.NewLocalStore(t.TempDir())

	// Deleting a path that was never written is not an error
	assert.NoError(t, store.Delete(storage.DocumentPrefix+"ghost.txt"))
}
