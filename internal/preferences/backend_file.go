package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
)

// FileBackend stores every document in a single JSON file.
type FileBackend struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileBackend loads the file at path, or starts empty if it does not exist.
func NewFileBackend(path string) (*FileBackend, error) {
	b := &FileBackend{path: path, data: map[string]json.RawMessage{}}
	if err := b.load(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *FileBackend) load() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	file, err := os.Open(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&b.data); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	// an empty file or a literal null
	if b.data == nil {
		b.data = map[string]json.RawMessage{}
	}
	return nil
}

// writes to a temp file first so a crash mid-write leaves the old file intact
func (b *FileBackend) saveLocked() error {
	tmp := b.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.data); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

func (b *FileBackend) Load(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *FileBackend) Save(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append(json.RawMessage(nil), data...)
	return b.saveLocked()
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return b.saveLocked()
}
