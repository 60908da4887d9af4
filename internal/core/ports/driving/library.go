package driving

import (
	"context"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
)

// LibraryService manages the local spectrum library.
type LibraryService interface {
	// Import reads a file and stores every spectrum it contains.
	Import(ctx context.Context, req ReadRequest) ([]domain.SpectrumRecord, error)

	// List returns all stored records.
	List(ctx context.Context) ([]domain.SpectrumRecord, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.SpectrumRecord, error)

	// Export writes a stored spectrum to a file.
	Export(ctx context.Context, id string, req ExportRequest) error

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}

// ExportRequest describes where and how to write a stored spectrum.
type ExportRequest struct {
	// Output is the file to create.
	Output string

	// Format is the format to write. Empty means detect from the output
	// extension, falling back to the record's own format.
	Format string

	// WriterConfig overrides the configured writer settings.
	WriterConfig map[string]any
}
