package driven

import (
	"context"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
)

// SpectrumStore persists library records.
type SpectrumStore interface {
	// Save stores or updates a record.
	Save(ctx context.Context, record *domain.SpectrumRecord) error

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if the record does not exist.
	Get(ctx context.Context, id string) (*domain.SpectrumRecord, error)

	// List returns all records ordered by import time, oldest first.
	List(ctx context.Context) ([]domain.SpectrumRecord, error)

	// Delete removes a record.
	// Returns domain.ErrNotFound if the record does not exist.
	Delete(ctx context.Context, id string) error
}
