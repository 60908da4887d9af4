package asciixy

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.SpectrumReader = (*Reader)(nil)

// maxLineSize lets the scanner grow its buffer for any line length;
// extra fields after the amplitude can make lines arbitrarily long.
const maxLineSize = math.MaxInt

// Reader parses ASCII XY files.
type Reader struct {
	extractor driven.SampleIDExtractor
	separator string
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReaderSeparator sets the field separator. Empty keeps the default.
func WithReaderSeparator(sep string) ReaderOption {
	return func(r *Reader) {
		if sep != "" {
			r.separator = sep
		}
	}
}

// NewReader creates a reader that takes sample IDs from extractor.
func NewReader(extractor driven.SampleIDExtractor, opts ...ReaderOption) *Reader {
	r := &Reader{
		extractor: extractor,
		separator: DefaultSeparator,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Format returns the format name.
func (r *Reader) Format() string {
	return FormatName
}

// Separator returns the configured field separator.
func (r *Reader) Separator() string {
	return r.separator
}

// BinaryMode always returns false: ASCII XY is a text format.
func (r *Reader) BinaryMode(_ string) bool {
	return false
}

// Read parses the single spectrum held in src.
// Extractor and stream errors are returned unchanged. Any malformed
// data line fails the whole read with a *domain.FormatError.
func (r *Reader) Read(src io.Reader, name string) ([]domain.Spectrum, error) {
	if r.extractor == nil {
		return nil, fmt.Errorf("%w: no sample id extractor", domain.ErrInvalidInput)
	}

	sampleID, err := r.extractor.Extract(name)
	if err != nil {
		return nil, err
	}

	waves := []float64{}
	ampls := []float64{}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanTextLines)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		wave, ampl, err := r.parseLine(line)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}

		waves = append(waves, wave)
		ampls = append(ampls, ampl)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return []domain.Spectrum{{ID: sampleID, Waves: waves, Amplitudes: ampls}}, nil
}

// parseLine splits a trimmed, non-empty line into its first two values.
func (r *Reader) parseLine(line string) (wave, ampl float64, ferr *domain.FormatError) {
	parts := strings.Split(line, r.separator)
	if len(parts) < 2 {
		return 0, 0, &domain.FormatError{
			Text:   line,
			Reason: fmt.Sprintf("expected at least 2 fields separated by %q, got %d", r.separator, len(parts)),
		}
	}

	wave, err := parseValue(parts[0])
	if err != nil {
		return 0, 0, &domain.FormatError{Text: line, Reason: "invalid wave", Err: err}
	}

	ampl, err = parseValue(parts[1])
	if err != nil {
		return 0, 0, &domain.FormatError{Text: line, Reason: "invalid amplitude", Err: err}
	}

	return wave, ampl, nil
}

// parseValue parses a decimal float field, tolerating surrounding
// whitespace. Hexadecimal mantissas are rejected. Magnitudes outside
// float64 range saturate to ±Inf.
func parseValue(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if isHex(field) {
		return 0, fmt.Errorf("%w: hexadecimal value %q", strconv.ErrSyntax, field)
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

func isHex(field string) bool {
	unsigned := strings.TrimLeft(field, "+-")
	return len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X')
}

// scanTextLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a
// lone "\r" as line terminators.
func scanTextLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// '\r': swallow a following '\n', but only once we can see it.
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
