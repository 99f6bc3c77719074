// Package session owns the process-wide dataset state. One upload run
// replaces the whole dataset; a reset destroys it. Readers get a
// point-in-time snapshot and never see a partially loaded table.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"cfemdash/pkg/contracts/domain"
)

// Summary is the metadata of the currently loaded dataset.
type Summary struct {
	Version     string    `json:"version"`
	SourceName  string    `json:"source_name"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// Store holds the canonical dataset for the lifetime of the session.
// The zero value is empty and ready to use.
type Store struct {
	mu         sync.RWMutex
	dataset    *domain.Dataset
	version    string
	sourceName string
	loadedAt   time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the dataset wholesale and stamps a fresh version. The
// caller must not mutate the dataset after handing it over.
func (s *Store) Set(ds *domain.Dataset, sourceName string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = ds
	s.version = uuid.NewString()
	s.sourceName = sourceName
	s.loadedAt = time.Now()

	return s.summaryLocked()
}

// Snapshot returns the current dataset, or ok=false when nothing is
// loaded. Records are immutable after load, so readers share the slice.
func (s *Store) Snapshot() (*domain.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.dataset != nil
}

// Summary returns the loaded-dataset metadata, or ok=false when empty.
func (s *Store) Summary() (Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return Summary{}, false
	}
	return s.summaryLocked(), true
}

// Reset destroys the session state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = nil
	s.version = ""
	s.sourceName = ""
	s.loadedAt = time.Time{}
}

func (s *Store) summaryLocked() Summary {
	return Summary{
		Version:     s.version,
		SourceName:  s.sourceName,
		RowCount:    s.dataset.Len(),
		ColumnCount: len(s.dataset.Columns),
		LoadedAt:    s.loadedAt,
	}
}
