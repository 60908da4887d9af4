package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/sampleid"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages conversion defaults stored in the config file.
type SettingsService struct {
	configStore driven.ConfigStore
	registry    driven.FormatRegistry
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, registry driven.FormatRegistry) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		registry:    registry,
	}
}

// Get retrieves the current settings. Formats without a configured
// separator are omitted; their built-in default applies.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	settings := &domain.Settings{
		ReaderSeparators: make(map[string]string),
		WriterSeparators: make(map[string]string),
		SampleIDPattern:  s.configStore.GetString(keySampleIDPattern),
		SampleIDGroup:    s.configStore.GetString(keySampleIDGroup),
		LibraryDir:       s.configStore.GetString(keyLibraryDir),
		WatchSettle:      time.Duration(s.configStore.GetInt(keyWatchSettleMillis)) * time.Millisecond,
		PlainOutput:      s.configStore.GetBool(keyOutputPlain),
	}

	for _, info := range s.registry.Formats() {
		if sep := s.configStore.GetString(readerSection(info.Name) + "." + keySeparator); sep != "" {
			settings.ReaderSeparators[info.Name] = sep
		}
		if sep := s.configStore.GetString(writerSection(info.Name) + "." + keySeparator); sep != "" {
			settings.WriterSeparators[info.Name] = sep
		}
	}

	return settings, nil
}

// Set validates and stores one setting. Accepted keys are
// sampleid.pattern, sampleid.group, library.dir, watch.settle_ms,
// output.plain and formats.<format>.reader.<option> /
// formats.<format>.writer.<option> for options the format declares.
// watch.settle_ms is stored as an integer and output.plain as a boolean.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	switch key {
	case keyWatchSettleMillis:
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of milliseconds", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, ms)
	case keyOutputPlain:
		plain, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, plain)
	}

	if err := s.validate(key, value); err != nil {
		return err
	}
	return s.configStore.Set(key, value)
}

func (s *SettingsService) validate(key, value string) error {
	switch key {
	case keySampleIDPattern:
		_, err := sampleid.New(value, "")
		return err
	case keySampleIDGroup:
		if pattern := s.configStore.GetString(keySampleIDPattern); pattern != "" {
			if _, err := sampleid.New(pattern, value); err != nil {
				return err
			}
		}
		return nil
	case keyLibraryDir:
		return nil
	}

	parts := strings.Split(key, ".")
	if len(parts) != 4 || parts[0] != "formats" || (parts[2] != "reader" && parts[2] != "writer") {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	info, ok := s.format(parts[1])
	if !ok {
		return fmt.Errorf("%w: unknown format: %s", domain.ErrUnsupportedType, parts[1])
	}

	options := info.ReaderOptions
	if parts[2] == "writer" {
		options = info.WriterOptions
	}
	if !slices.Contains(options, parts[3]) {
		return fmt.Errorf("%w: unknown setting %q: %s %s has no option %q",
			domain.ErrInvalidInput, key, info.Name, parts[2], parts[3])
	}

	if parts[3] == keySeparator && value == "" {
		return fmt.Errorf("%w: separator cannot be empty", domain.ErrInvalidInput)
	}
	return nil
}

func (s *SettingsService) format(name string) (driven.FormatInfo, bool) {
	for _, info := range s.registry.Formats() {
		if info.Name == name {
			return info, true
		}
	}
	return driven.FormatInfo{}, false
}
