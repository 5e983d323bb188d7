package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*FileStore)(nil)

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
}

// NewFileStore creates a store backed by path. The file and its parent
// directory are created on the first Save.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the snapshot. A missing file yields the defaults. A file that
// cannot be parsed is logged and also yields the defaults; only I/O errors
// other than "not exist" are returned.
func (s *FileStore) Load(ctx context.Context) (domain.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("no snapshot at %s, using defaults", s.path)
		return domain.DefaultInventory(), nil
	}
	if err != nil {
		return domain.DefaultInventory(), fmt.Errorf("reading snapshot: %w", err)
	}

	inv, err := Decode(data)
	if errors.Is(err, domain.ErrCorruptSnapshot) {
		s.log.Warn("could not load snapshot from %s, using defaults: %v", s.path, err)
		return inv, nil
	}
	if err != nil {
		return inv, err
	}

	s.log.Debug("loaded snapshot %s from %s", inv, s.path)
	return inv, nil
}

// Save writes the snapshot through a temporary file and a rename so a
// crash mid-write never leaves a truncated record behind.
func (s *FileStore) Save(ctx context.Context, inv domain.Inventory) error {
	data, err := Encode(inv)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	s.log.Debug("saved snapshot %s to %s", inv, s.path)
	return nil
}
