package driven

// SampleIDExtractor derives a sample identifier from a file name.
// Readers call it exactly once per read.
type SampleIDExtractor interface {
	// Extract returns the sample ID for the given file name.
	Extract(name string) (string, error)
}
