package driven

import (
	"io"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
)

// SpectrumReader parses spectra from an already-open stream.
// Implementations never close the stream.
type SpectrumReader interface {
	// Format returns the name of the format this reader handles.
	// The registry uses it to find the matching writer.
	Format() string

	// Read parses all spectra from r. name identifies the source
	// (usually the file name) and feeds sample ID extraction.
	Read(r io.Reader, name string) ([]domain.Spectrum, error)

	// BinaryMode reports whether the file must be handled as raw bytes.
	BinaryMode(name string) bool
}

// SpectrumWriter serialises spectra to an already-open stream.
// Implementations never close the stream.
type SpectrumWriter interface {
	// Format returns the name of the format this writer produces.
	Format() string

	// Write serialises spectra to w.
	Write(spectra []domain.Spectrum, w io.Writer) error

	// BinaryMode reports whether the file must be handled as raw bytes.
	BinaryMode(name string) bool
}

// FormatInfo describes a registered format.
type FormatInfo struct {
	// Name is the format identifier (e.g., "asciixy").
	Name string

	// Description is a one-line human readable summary.
	Description string

	// Extensions are the file extensions associated with the format.
	Extensions []string

	// Binary reports whether the format is handled as raw bytes.
	Binary bool

	// ReaderOptions and WriterOptions list the config keys the reader
	// and writer understand.
	ReaderOptions []string
	WriterOptions []string
}
