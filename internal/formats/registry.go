package formats

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.FormatRegistry = (*Registry)(nil)

// ReaderBuilder creates a reader from generic config.
// Config is a map of format-specific settings parsed from user config.
type ReaderBuilder func(extractor driven.SampleIDExtractor, cfg map[string]any) (driven.SpectrumReader, error)

// WriterBuilder creates a writer from generic config.
type WriterBuilder func(cfg map[string]any) (driven.SpectrumWriter, error)

// Format describes one file format and how to build its reader and writer.
type Format struct {
	Name          string
	Description   string
	Extensions    []string
	Binary        bool
	ReaderOptions []string
	WriterOptions []string
	NewReader     ReaderBuilder
	NewWriter     WriterBuilder
}

// Registry maps format names to their reader/writer pairs.
type Registry struct {
	mu      sync.RWMutex
	formats map[string]Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[string]Format),
	}
}

// Register adds a format. A later registration with the same name replaces
// the earlier one.
func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[f.Name] = f
}

// Has returns true if a format with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.formats[name]
	return ok
}

// Names returns all registered format names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Formats describes all registered formats, sorted by name.
func (r *Registry) Formats() []driven.FormatInfo {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]driven.FormatInfo, 0, len(names))
	for _, name := range names {
		f := r.formats[name]
		infos = append(infos, driven.FormatInfo{
			Name:          f.Name,
			Description:   f.Description,
			Extensions:    append([]string(nil), f.Extensions...),
			Binary:        f.Binary,
			ReaderOptions: append([]string(nil), f.ReaderOptions...),
			WriterOptions: append([]string(nil), f.WriterOptions...),
		})
	}
	return infos
}

// NewReader builds the reader for the named format.
func (r *Registry) NewReader(
	name string,
	extractor driven.SampleIDExtractor,
	cfg map[string]any,
) (driven.SpectrumReader, error) {
	f, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if f.NewReader == nil {
		return nil, fmt.Errorf("%w: format %s cannot be read", domain.ErrUnsupportedType, name)
	}
	return f.NewReader(extractor, cfg)
}

// NewWriter builds the writer for the named format.
func (r *Registry) NewWriter(name string, cfg map[string]any) (driven.SpectrumWriter, error) {
	f, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	if f.NewWriter == nil {
		return nil, fmt.Errorf("%w: format %s cannot be written", domain.ErrUnsupportedType, name)
	}
	return f.NewWriter(cfg)
}

// WriterFor builds the writer paired with reader's format.
func (r *Registry) WriterFor(reader driven.SpectrumReader, cfg map[string]any) (driven.SpectrumWriter, error) {
	return r.NewWriter(reader.Format(), cfg)
}

// ReaderFor builds the reader paired with writer's format.
func (r *Registry) ReaderFor(
	writer driven.SpectrumWriter,
	extractor driven.SampleIDExtractor,
	cfg map[string]any,
) (driven.SpectrumReader, error) {
	return r.NewReader(writer.Format(), extractor, cfg)
}

// ForPath returns the name of the format claiming the path's extension.
// Extensions are compared case-insensitively.
func (r *Registry) ForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", fmt.Errorf("%w: cannot detect format of %s without an extension", domain.ErrUnsupportedType, path)
	}

	for _, name := range r.Names() {
		f, err := r.lookup(name)
		if err != nil {
			continue
		}
		for _, e := range f.Extensions {
			if strings.ToLower(e) == ext {
				return name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no format registered for extension %s", domain.ErrUnsupportedType, ext)
}

func (r *Registry) lookup(name string) (Format, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formats[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: unknown format: %s", domain.ErrUnsupportedType, name)
	}
	return f, nil
}
