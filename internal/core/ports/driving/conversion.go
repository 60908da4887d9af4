package driving

import (
	"context"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// ConversionService reads and converts spectral files.
type ConversionService interface {
	// Read parses a file into spectra.
	Read(ctx context.Context, req ReadRequest) ([]domain.Spectrum, error)

	// Convert reads a file and writes it back out in another (or the same) format.
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)

	// Formats describes the supported formats.
	Formats() []driven.FormatInfo
}

// ReadRequest describes a file to read.
type ReadRequest struct {
	// Path is the file to read.
	Path string

	// Format is the format name. Empty means detect from the extension.
	Format string

	// ReaderConfig overrides the configured reader settings.
	ReaderConfig map[string]any

	// SampleIDPattern overrides the configured sample ID pattern.
	// Empty means use the configured pattern, or the file name.
	SampleIDPattern string

	// SampleIDGroup is the pattern group holding the sample ID.
	SampleIDGroup string
}

// ConvertRequest describes a conversion from one file to another.
type ConvertRequest struct {
	ReadRequest

	// Output is the file to create.
	Output string

	// OutputFormat is the format to write. Empty means detect from the
	// output extension, falling back to the input format.
	OutputFormat string

	// WriterConfig overrides the configured writer settings.
	WriterConfig map[string]any
}

// ConvertResult summarises a finished conversion.
type ConvertResult struct {
	// InputFormat is the format that was read.
	InputFormat string

	// OutputFormat is the format that was written.
	OutputFormat string

	// Spectra is the number of spectra converted.
	Spectra int

	// Points is the total number of spectral points written.
	Points int
}
