package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File persists slots as a single JSON object on disk. Writes go through a
// temp file and rename so a crash mid-write cannot corrupt the slot file.
type File struct {
	mu    sync.Mutex
	path  string
	slots map[string]string
}

var _ Store = (*File)(nil)

// OpenFile loads the slot file at path, creating parent directories as
// needed. A missing or malformed file yields an empty store.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("state path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	f := &File{path: path, slots: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := json.Unmarshal(data, &f.slots); err != nil {
		// Corrupt state degrades to empty rather than failing startup.
		f.slots = make(map[string]string)
	}
	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.slots[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[key] = value
	return f.flushLocked()
}

func (f *File) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.slots[key]; !ok {
		return
	}
	delete(f.slots, key)
	_ = f.flushLocked()
}

func (f *File) flushLocked() error {
	data, err := json.MarshalIndent(f.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
