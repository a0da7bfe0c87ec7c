package macrojournal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Slot names form the stable on-disk contract of the journal. The trade
// history and the last sync instant live under fixed keys; bias snapshots
// are keyed by calendar year and month, so rolling into a new month
// naturally invalidates the previous month's cache without an expiry timer.
const (
	slotTrades   = "trades.jsonl"
	slotLastSync = "last_sync"
)

// biasSlot returns the snapshot slot name for a given month, e.g.
// "biases_2026_08.json".
func biasSlot(m Month) string {
	return fmt.Sprintf("biases_%04d_%02d.json", m.Year(), int(m.Month()))
}

// A Store is durable key-value storage for the journal's serialized state.
//
// Reads of a missing slot yield absent, never an error: the caller falls
// back to a documented default. Writes are immediate and synchronous so a
// process restart never loses the last committed state.
type Store interface {
	// Read returns the blob stored under slot, or ok=false if absent.
	Read(slot string) (data []byte, ok bool)
	// Write stores the blob under slot, overwriting any previous value.
	Write(slot string, data []byte) error
}

// DirStore is a Store keeping one file per slot under a journal directory.
type DirStore struct {
	dir string
}

// NewDirStore returns a store rooted at dir. The directory is created on
// first write.
func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

func (s *DirStore) Read(slot string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, slot))
	if err != nil {
		// absent and unreadable are the same to the caller.
		return nil, false
	}
	return data, true
}

func (s *DirStore) Write(slot string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not create journal directory %q: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, slot)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write slot %q: %w", path, err)
	}
	return nil
}

// MemStore is an in-memory Store, mostly useful for tests.
type MemStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemStore() *MemStore { return &MemStore{slots: make(map[string][]byte)} }

func (s *MemStore) Read(slot string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.slots[slot]
	return data, ok
}

func (s *MemStore) Write(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}
