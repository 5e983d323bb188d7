package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore keeps the encoded snapshot in memory. Safe for concurrent
// access. It goes through the same codec as FileStore so both behave
// identically on odd input.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// NewMemoryStoreWithRecord creates a store preloaded with a raw record,
// as if an earlier run had written it.
func NewMemoryStoreWithRecord(data []byte, log *logger.Logger) *MemoryStore {
	s := NewMemoryStore(log)
	s.data = append([]byte(nil), data...)
	return s
}

// Save encodes and keeps inv, replacing any previous snapshot.
func (s *MemoryStore) Save(ctx context.Context, inv domain.Inventory) error {
	data, err := Encode(inv)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving snapshot %s", inv)
	s.data = data
	return nil
}

// Load returns the saved snapshot, or the defaults when nothing was saved
// or the record is corrupt.
func (s *MemoryStore) Load(ctx context.Context) (domain.Inventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		s.log.Debug("no snapshot saved, using defaults")
		return domain.DefaultInventory(), nil
	}
	inv, err := Decode(s.data)
	if errors.Is(err, domain.ErrCorruptSnapshot) {
		s.log.Warn("ignoring snapshot: %v", err)
		return inv, nil
	}
	return inv, err
}

// Record returns a copy of the raw stored bytes, nil if nothing was saved.
func (s *MemoryStore) Record() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil
	}
	return append([]byte(nil), s.data...)
}
