package authsdk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys used by Session. They mirror the browser local-storage entries
// of the web front-end so a shared cache file stays interoperable.
const (
	StorageKeyAccount     = "account"
	StorageKeyAccessToken = "access_token"
)

// Storage persists the session cache. Store replaces the whole snapshot in
// one call so the account summary and the token can never tear apart.
type Storage interface {
	Load() (map[string]string, error)
	Store(values map[string]string) error
}

// FileStore keeps the session cache in a single JSON file.
type FileStore struct {
	Path string

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt cache file is treated as logged out rather than fatal.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *FileStore) Store(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(values)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.Path), 0750); err != nil {
		return err
	}

	// Write-then-rename keeps the snapshot atomic on crash.
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// MemStore is an in-memory Storage for tests.
type MemStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (m *MemStore) Load() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemStore) Store(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string, len(values))
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}
