package services

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
	"github.com/custodia-labs/xyspec-cli/internal/sampleid"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService reads and converts spectral files using the
// registered formats and the configured defaults.
type ConversionService struct {
	registry    driven.FormatRegistry
	configStore driven.ConfigStore
}

// NewConversionService creates a new conversion service.
// configStore may be nil, in which case built-in defaults apply.
func NewConversionService(registry driven.FormatRegistry, configStore driven.ConfigStore) *ConversionService {
	return &ConversionService{
		registry:    registry,
		configStore: configStore,
	}
}

// Formats describes the supported formats.
func (s *ConversionService) Formats() []driven.FormatInfo {
	return s.registry.Formats()
}

// Read parses the file named in req.
func (s *ConversionService) Read(ctx context.Context, req driving.ReadRequest) ([]domain.Spectrum, error) {
	reader, err := s.newReader(req)
	if err != nil {
		return nil, err
	}
	return s.read(ctx, reader, req.Path)
}

// Convert reads req.Path and writes the result to req.Output.
// The output file is only created once serialisation has succeeded.
func (s *ConversionService) Convert(ctx context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error) {
	if req.Output == "" {
		return nil, fmt.Errorf("%w: no output file", domain.ErrInvalidInput)
	}

	reader, err := s.newReader(req.ReadRequest)
	if err != nil {
		return nil, err
	}

	spectra, err := s.read(ctx, reader, req.Path)
	if err != nil {
		return nil, err
	}

	outFormat := s.resolveOutputFormat(req.OutputFormat, req.Output, reader.Format())
	writerCfg := mergeConfig(s.section(writerSection(outFormat)), req.WriterConfig)

	var writer driven.SpectrumWriter
	if outFormat == reader.Format() {
		writer, err = s.registry.WriterFor(reader, writerCfg)
	} else {
		writer, err = s.registry.NewWriter(outFormat, writerCfg)
	}
	if err != nil {
		return nil, err
	}

	if err := writeFile(ctx, writer, spectra, req.Output); err != nil {
		return nil, err
	}

	points := 0
	for i := range spectra {
		points += spectra[i].Len()
	}

	logger.Info("converted %s (%s) -> %s (%s)", req.Path, reader.Format(), req.Output, writer.Format())
	return &driving.ConvertResult{
		InputFormat:  reader.Format(),
		OutputFormat: writer.Format(),
		Spectra:      len(spectra),
		Points:       points,
	}, nil
}

// newReader builds the reader for req from the configured defaults
// overlaid with the request's overrides.
func (s *ConversionService) newReader(req driving.ReadRequest) (driven.SpectrumReader, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("%w: no input file", domain.ErrInvalidInput)
	}

	format := req.Format
	if format == "" {
		detected, err := s.registry.ForPath(req.Path)
		if err != nil {
			return nil, err
		}
		format = detected
		logger.Debug("detected format %s for %s", format, req.Path)
	}

	pattern, group := req.SampleIDPattern, req.SampleIDGroup
	if pattern == "" {
		pattern = s.getString(keySampleIDPattern)
		group = s.getString(keySampleIDGroup)
	}
	extractor, err := sampleid.New(pattern, group)
	if err != nil {
		return nil, err
	}

	cfg := mergeConfig(s.section(readerSection(format)), req.ReaderConfig)
	return s.registry.NewReader(format, extractor, cfg)
}

func (s *ConversionService) read(ctx context.Context, reader driven.SpectrumReader, path string) ([]domain.Spectrum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	logger.Debug("reading %s as %s (binary=%t)", path, reader.Format(), reader.BinaryMode(path))
	spectra, err := reader.Read(f, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return spectra, nil
}

// resolveOutputFormat picks the explicit format, then the one claiming the
// output extension, then the input format.
func (s *ConversionService) resolveOutputFormat(explicit, output, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if detected, err := s.registry.ForPath(output); err == nil {
		return detected
	}
	return fallback
}

func (s *ConversionService) section(prefix string) map[string]any {
	if s.configStore == nil {
		return nil
	}
	return s.configStore.Section(prefix)
}

func (s *ConversionService) getString(key string) string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.GetString(key)
}

// writeFile serialises spectra in memory and only then creates path,
// so a rejected write leaves no file behind.
func writeFile(ctx context.Context, writer driven.SpectrumWriter, spectra []domain.Spectrum, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := writer.Write(spectra, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Debug("writing %d bytes to %s as %s (binary=%t)", buf.Len(), path, writer.Format(), writer.BinaryMode(path))
	return os.WriteFile(path, buf.Bytes(), 0644)
}
