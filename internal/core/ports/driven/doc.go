// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SpectrumReader: Parses one file format into spectra
//   - SpectrumWriter: Serialises spectra into one file format
//   - FormatRegistry: Pairs readers with writers by format name
//   - SampleIDExtractor: Derives the sample ID from a file name
//   - SpectrumStore: Spectrum library persistence
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or format package
package driven
