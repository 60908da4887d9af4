// Package domain defines the core entities for xyspec.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Spectrum: One sample's paired wavelength/amplitude data
//   - SpectrumRecord: A spectrum persisted in the local library
//   - FormatError: A parse failure carrying the offending line
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
