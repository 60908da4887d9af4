package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// Ensure SpectrumStore implements the interface.
var _ driven.SpectrumStore = (*SpectrumStore)(nil)

// SpectrumStore is an in-memory implementation of driven.SpectrumStore.
type SpectrumStore struct {
	mu      sync.RWMutex
	records map[string]domain.SpectrumRecord
}

// NewSpectrumStore creates a new in-memory spectrum store.
func NewSpectrumStore() *SpectrumStore {
	return &SpectrumStore{
		records: make(map[string]domain.SpectrumRecord),
	}
}

// Save stores or updates a record. The spectrum data is copied.
func (s *SpectrumStore) Save(_ context.Context, record *domain.SpectrumRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = cloneRecord(*record)
	return nil
}

// Get retrieves a record by ID.
func (s *SpectrumStore) Get(_ context.Context, id string) (*domain.SpectrumRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneRecord(record)
	return &clone, nil
}

// List returns all records ordered by import time, oldest first.
func (s *SpectrumStore) List(_ context.Context) ([]domain.SpectrumRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.SpectrumRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, cloneRecord(record))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ImportedAt.Equal(result[j].ImportedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].ImportedAt.Before(result[j].ImportedAt)
	})
	return result, nil
}

// Delete removes a record.
func (s *SpectrumStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func cloneRecord(r domain.SpectrumRecord) domain.SpectrumRecord {
	r.Spectrum.Waves = append([]float64{}, r.Spectrum.Waves...)
	r.Spectrum.Amplitudes = append([]float64{}, r.Spectrum.Amplitudes...)
	return r
}
