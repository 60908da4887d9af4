package domain

import (
	"fmt"
	"time"
)

// Spectrum is a single measured curve: wavelengths paired index-by-index
// with amplitudes, tagged with the sample they were measured from.
// Waves and Amplitudes always have the same length and keep read order.
type Spectrum struct {
	// ID is the sample identifier.
	ID string

	// Waves are the X-axis values (wavelengths or wave numbers).
	Waves []float64

	// Amplitudes are the Y-axis values, index-aligned with Waves.
	Amplitudes []float64
}

// NewSpectrum creates a spectrum from copies of waves and amplitudes.
func NewSpectrum(id string, waves, amplitudes []float64) (*Spectrum, error) {
	if len(waves) != len(amplitudes) {
		return nil, fmt.Errorf("%w: waves and amplitudes must have same length: %d != %d",
			ErrInvalidInput, len(waves), len(amplitudes))
	}

	s := &Spectrum{
		ID:         id,
		Waves:      make([]float64, len(waves)),
		Amplitudes: make([]float64, len(amplitudes)),
	}
	copy(s.Waves, waves)
	copy(s.Amplitudes, amplitudes)
	return s, nil
}

// Len returns the number of spectral points.
func (s *Spectrum) Len() int {
	return len(s.Waves)
}

func (s *Spectrum) String() string {
	return fmt.Sprintf("%s: #points=%d", s.ID, s.Len())
}

// SpectrumRecord is a spectrum stored in the local library.
type SpectrumRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// Spectrum is the stored spectral data.
	Spectrum Spectrum

	// Format is the name of the format the spectrum was read from.
	Format string

	// SourcePath is the file the spectrum was imported from.
	SourcePath string

	// ImportedAt is when the spectrum entered the library.
	ImportedAt time.Time
}
