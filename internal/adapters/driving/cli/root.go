// Package cli provides the xyspec command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/xyspec-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driven"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/core/services"
	"github.com/custodia-labs/xyspec-cli/internal/formats"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services used by the commands. They are built on first use from the
// config directory, or injected with SetServices.
var (
	formatRegistry    driven.FormatRegistry
	configStore       driven.ConfigStore
	conversionService driving.ConversionService
	libraryService    driving.LibraryService
	settingsService   driving.SettingsService

	// libraryStore is opened lazily; only library and watch commands need it.
	libraryStore *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "xyspec",
	Short: "Read, convert and catalogue ASCII XY spectra",
	Long: `xyspec reads spectra stored as delimited wavelength/amplitude pairs,
converts them between separators and formats, and keeps a local library
of imported spectra.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.xyspec)")
}

// Execute runs the root command. Command output goes to stdout so it
// can be piped; errors and verbose logs go to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by the commands.
func SetServices(
	registry driven.FormatRegistry,
	config driven.ConfigStore,
	conversion driving.ConversionService,
	library driving.LibraryService,
	settings driving.SettingsService,
) {
	formatRegistry = registry
	configStore = config
	conversionService = conversion
	libraryService = library
	settingsService = settings
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if conversionService != nil {
		return nil
	}

	dir := configDir
	if dir == "" {
		var err error
		dir, err = file.DefaultDir()
		if err != nil {
			return err
		}
	}
	logger.Debug("using config directory %s", dir)

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := formats.NewDefaultRegistry()
	conversion := services.NewConversionService(registry, store)

	SetServices(
		registry,
		store,
		conversion,
		&lazyLibrary{conversion: conversion, dataDir: libraryDir(store, dir)},
		services.NewSettingsService(store, registry),
	)
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if libraryStore == nil {
		return nil
	}
	err := libraryStore.Close()
	libraryStore = nil
	return err
}

// libraryDir resolves the library directory from config, relative paths
// being taken from the config directory.
func libraryDir(store driven.ConfigStore, dir string) string {
	configured := store.GetString("library.dir")
	switch {
	case configured == "":
		return filepath.Join(dir, "data")
	case filepath.IsAbs(configured):
		return configured
	default:
		return filepath.Join(dir, configured)
	}
}

// errLibraryUnavailable is returned when the library database cannot be opened.
var errLibraryUnavailable = errors.New("library not available")
