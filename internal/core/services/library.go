package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService stores imported spectra and exports them on demand.
type LibraryService struct {
	store      driven.SpectrumStore
	conversion *ConversionService
	now        func() time.Time
}

// NewLibraryService creates a new library service.
func NewLibraryService(store driven.SpectrumStore, conversion *ConversionService) *LibraryService {
	return &LibraryService{
		store:      store,
		conversion: conversion,
		now:        time.Now,
	}
}

// Import reads req.Path and stores every spectrum in it.
func (s *LibraryService) Import(ctx context.Context, req driving.ReadRequest) ([]domain.SpectrumRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no spectrum store", domain.ErrInvalidInput)
	}

	reader, err := s.conversion.newReader(req)
	if err != nil {
		return nil, err
	}

	spectra, err := s.conversion.read(ctx, reader, req.Path)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SpectrumRecord, 0, len(spectra))
	for i := range spectra {
		record := domain.SpectrumRecord{
			ID:         uuid.New().String(),
			Spectrum:   spectra[i],
			Format:     reader.Format(),
			SourcePath: req.Path,
			ImportedAt: s.now(),
		}
		if err := s.store.Save(ctx, &record); err != nil {
			return records, fmt.Errorf("saving %s: %w", spectra[i].ID, err)
		}
		logger.Debug("imported %s from %s as %s", spectra[i].String(), req.Path, record.ID)
		records = append(records, record)
	}

	return records, nil
}

// List returns all stored records.
func (s *LibraryService) List(ctx context.Context) ([]domain.SpectrumRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no spectrum store", domain.ErrInvalidInput)
	}
	return s.store.List(ctx)
}

// Get retrieves a record by ID.
func (s *LibraryService) Get(ctx context.Context, id string) (*domain.SpectrumRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no spectrum store", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Export writes a stored spectrum to req.Output.
func (s *LibraryService) Export(ctx context.Context, id string, req driving.ExportRequest) error {
	if req.Output == "" {
		return fmt.Errorf("%w: no output file", domain.ErrInvalidInput)
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	format := s.conversion.resolveOutputFormat(req.Format, req.Output, record.Format)
	cfg := mergeConfig(s.conversion.section(writerSection(format)), req.WriterConfig)
	writer, err := s.conversion.registry.NewWriter(format, cfg)
	if err != nil {
		return err
	}

	if err := writeFile(ctx, writer, []domain.Spectrum{record.Spectrum}, req.Output); err != nil {
		return err
	}

	logger.Info("exported %s to %s (%s)", id, req.Output, format)
	return nil
}

// Delete removes a record.
func (s *LibraryService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return fmt.Errorf("%w: no spectrum store", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
