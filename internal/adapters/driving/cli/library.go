package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/core/services"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the spectrum library",
	Long:  `Import spectra into the local library, list them, and export them again.`,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import spectrum files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLibraryImport,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored spectra",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a stored spectrum",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export [id] [output]",
	Short: "Write a stored spectrum to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryExport,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a stored spectrum",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

var (
	libraryRead  readFlags
	libraryWrite writeFlags
	libraryLimit int
)

func init() {
	libraryRead.bind(libraryImportCmd)
	libraryWrite.bind(libraryExportCmd)
	libraryShowCmd.Flags().IntVarP(&libraryLimit, "limit", "n", 20, "maximum number of points to print (0 for all)")

	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	var failed int
	for _, path := range args {
		logger.Section("Import " + path)
		records, err := libraryService.Import(cmd.Context(), libraryRead.request(path))
		if err != nil {
			cmd.PrintErrf("Failed to import %s: %v\n", path, err)
			failed++
			continue
		}
		for i := range records {
			cmd.Printf("Imported %s as %s\n", records[i].Spectrum.String(), records[i].ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to import %d of %d files", failed, len(args))
	}
	return nil
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	records, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list spectra: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No spectra in the library.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for i := range records {
		rows = append(rows, []string{
			records[i].ID,
			records[i].Spectrum.ID,
			strconv.Itoa(records[i].Spectrum.Len()),
			records[i].Format,
			records[i].ImportedAt.Format("2006-01-02 15:04:05"),
		})
	}

	cmd.Print(stylesFor(cmd.OutOrStdout()).table([]string{"ID", "Sample", "Points", "Format", "Imported"}, rows))
	cmd.Printf("\nTotal: %d spectra\n", len(records))
	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	record, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get spectrum: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Printf("%s %s\n", st.label.Render("ID:"), record.ID)
	cmd.Printf("%s %s\n", st.label.Render("Source:"), record.SourcePath)
	cmd.Printf("%s %s\n", st.label.Render("Imported:"), record.ImportedAt.Format("2006-01-02 15:04:05"))
	printSpectrum(cmd, st, &record.Spectrum, libraryLimit)
	return nil
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	err := libraryService.Export(cmd.Context(), args[0], driving.ExportRequest{
		Output:       args[1],
		Format:       libraryWrite.format,
		WriterConfig: separatorConfig(libraryWrite.separator),
	})
	if err != nil {
		return fmt.Errorf("failed to export spectrum: %w", err)
	}

	cmd.Printf("Exported %s to %s\n", args[0], args[1])
	return nil
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete spectrum: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

// lazyLibrary opens the library database on first use.
type lazyLibrary struct {
	conversion *services.ConversionService
	dataDir    string

	once sync.Once
	svc  driving.LibraryService
	err  error
}

var _ driving.LibraryService = (*lazyLibrary)(nil)

func (l *lazyLibrary) open() (driving.LibraryService, error) {
	l.once.Do(func() {
		store, err := sqlite.NewStore(l.dataDir)
		if err != nil {
			l.err = fmt.Errorf("%w: %w", errLibraryUnavailable, err)
			return
		}
		libraryStore = store
		l.svc = services.NewLibraryService(store.SpectrumStore(), l.conversion)
	})
	return l.svc, l.err
}

func (l *lazyLibrary) Import(ctx context.Context, req driving.ReadRequest) ([]domain.SpectrumRecord, error) {
	svc, err := l.open()
	if err != nil {
		return nil, err
	}
	return svc.Import(ctx, req)
}

func (l *lazyLibrary) List(ctx context.Context) ([]domain.SpectrumRecord, error) {
	svc, err := l.open()
	if err != nil {
		return nil, err
	}
	return svc.List(ctx)
}

func (l *lazyLibrary) Get(ctx context.Context, id string) (*domain.SpectrumRecord, error) {
	svc, err := l.open()
	if err != nil {
		return nil, err
	}
	return svc.Get(ctx, id)
}

func (l *lazyLibrary) Export(ctx context.Context, id string, req driving.ExportRequest) error {
	svc, err := l.open()
	if err != nil {
		return err
	}
	return svc.Export(ctx, id, req)
}

func (l *lazyLibrary) Delete(ctx context.Context, id string) error {
	svc, err := l.open()
	if err != nil {
		return err
	}
	return svc.Delete(ctx, id)
}
