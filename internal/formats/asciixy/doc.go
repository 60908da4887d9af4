// Package asciixy reads and writes the ASCII XY spectral format.
//
// A file holds one spectrum as separator-delimited numeric pairs, one
// wavelength/amplitude pair per line:
//
//	400.0;0.125
//	401.0;0.127
//
// Blank lines are ignored. Fields beyond the second are ignored. There is
// no header, footer or comment syntax; the sample ID comes from the file
// name via a driven.SampleIDExtractor.
//
// The Writer emits rows in reverse order relative to the spectrum, so a
// read followed by a write flips the row order of the file.
package asciixy

// FormatName is the registry name of the ASCII XY format.
const FormatName = "asciixy"

// DefaultSeparator delimits the wavelength and amplitude fields.
const DefaultSeparator = ";"
