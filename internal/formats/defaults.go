package formats

import (
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/formats/asciixy"
)

// optionSeparator is the config key for a field separator.
const optionSeparator = "separator"

// RegisterDefaults registers all built-in formats with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(Format{
		Name:          asciixy.FormatName,
		Description:   "ASCII XY: one wave/amplitude pair per line",
		Extensions:    []string{".txt", ".xy"},
		ReaderOptions: []string{optionSeparator},
		WriterOptions: []string{optionSeparator},
		NewReader:     buildASCIIXYReader,
		NewWriter:     buildASCIIXYWriter,
	})
}

// NewDefaultRegistry returns a registry holding the built-in formats.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildASCIIXYReader creates an ASCII XY reader from generic config.
// Supported config keys:
//   - separator (string): Field separator (default: ";")
func buildASCIIXYReader(extractor driven.SampleIDExtractor, cfg map[string]any) (driven.SpectrumReader, error) {
	return asciixy.NewReader(extractor, asciixy.WithReaderSeparator(getStringFromConfig(cfg, optionSeparator))), nil
}

// buildASCIIXYWriter creates an ASCII XY writer from generic config.
// Supported config keys:
//   - separator (string): Field separator (default: ";")
func buildASCIIXYWriter(cfg map[string]any) (driven.SpectrumWriter, error) {
	return asciixy.NewWriter(asciixy.WithWriterSeparator(getStringFromConfig(cfg, optionSeparator))), nil
}

// getStringFromConfig safely extracts a string from a generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	if cfg == nil {
		return ""
	}
	s, _ := cfg[key].(string)
	return s
}
