package asciixy

import (
	"bufio"
	"fmt"
	"io"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.SpectrumWriter = (*Writer)(nil)

// Writer serialises a single spectrum as ASCII XY.
type Writer struct {
	separator string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterSeparator sets the field separator. Empty keeps the default.
func WithWriterSeparator(sep string) WriterOption {
	return func(w *Writer) {
		if sep != "" {
			w.separator = sep
		}
	}
}

// NewWriter creates a writer with the given options.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{separator: DefaultSeparator}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Format returns the format name.
func (w *Writer) Format() string {
	return FormatName
}

// Separator returns the configured field separator.
func (w *Writer) Separator() string {
	return w.separator
}

// BinaryMode always returns false: ASCII XY is a text format.
func (w *Writer) BinaryMode(_ string) bool {
	return false
}

// Write serialises exactly one spectrum to dst, last point first.
// Nothing is written unless spectra holds exactly one element.
func (w *Writer) Write(spectra []domain.Spectrum, dst io.Writer) error {
	if len(spectra) != 1 {
		return fmt.Errorf("%w: got %d", domain.ErrCardinality, len(spectra))
	}

	spectrum := spectra[0]
	n := min(len(spectrum.Waves), len(spectrum.Amplitudes))

	bw := bufio.NewWriter(dst)
	for i := n - 1; i >= 0; i-- {
		line := FormatFloat(spectrum.Waves[i]) + w.separator + FormatFloat(spectrum.Amplitudes[i]) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}

	return bw.Flush()
}
