package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/logger"
	"github.com/custodia-labs/xyspec-cli/internal/watcher"
)

var (
	watchRead   readFlags
	watchSettle time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import spectra as they appear in a directory",
	Long: `Watches a directory and imports every new or modified spectrum file
into the library. Files whose extension no format claims are ignored
unless --from is given. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchRead.bind(watchCmd)
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watcher.DefaultSettleDelay,
		"how long a file must stay unchanged before it is imported (default from watch.settle_ms)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil || formatRegistry == nil {
		return errors.New("library service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchDir(ctx, cmd, args[0], settleDelay(cmd))
}

// settleDelay returns --settle when given, else watch.settle_ms from
// config, else the flag default.
func settleDelay(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("settle") || configStore == nil {
		return watchSettle
	}
	if ms := configStore.GetInt("watch.settle_ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return watchSettle
}

func watchDir(ctx context.Context, cmd *cobra.Command, dir string, settle time.Duration) error {
	logger.Section("Watch " + dir)

	w := watcher.New(dir, libraryService, formatRegistry,
		watcher.WithRequest(watchRead.request("")),
		watcher.WithSettleDelay(settle),
	)

	results, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", dir)
	for result := range results {
		switch {
		case result.Err != nil && result.Path == "":
			cmd.PrintErrf("Watch error: %v\n", result.Err)
		case result.Err != nil:
			cmd.PrintErrf("Failed to import %s: %v\n", result.Path, result.Err)
		default:
			for i := range result.Records {
				cmd.Printf("Imported %s as %s\n", result.Records[i].Spectrum.String(), result.Records[i].ID)
			}
		}
	}
	return nil
}
