// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements:
//
//   - SpectrumStore: Spectrum library persistence
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Wavelengths and amplitudes are stored as little-endian float64 BLOBs so NaN
// and infinite values survive a round trip.
//
// # Data Location
//
// By default, the database is stored at ~/.xyspec/data/library.db
package sqlite
