package driven

// FormatRegistry pairs readers and writers by format name.
// Config maps carry format-specific settings (e.g., "separator").
type FormatRegistry interface {
	// NewReader builds the reader for a format.
	NewReader(name string, extractor SampleIDExtractor, cfg map[string]any) (SpectrumReader, error)

	// NewWriter builds the writer for a format.
	NewWriter(name string, cfg map[string]any) (SpectrumWriter, error)

	// WriterFor builds the writer paired with reader's format.
	WriterFor(reader SpectrumReader, cfg map[string]any) (SpectrumWriter, error)

	// ReaderFor builds the reader paired with writer's format.
	ReaderFor(writer SpectrumWriter, extractor SampleIDExtractor, cfg map[string]any) (SpectrumReader, error)

	// ForPath returns the format name registered for the path's extension.
	ForPath(path string) (string, error)

	// Formats describes all registered formats, sorted by name.
	Formats() []FormatInfo
}
