package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/watcher"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	Long: `View and change the defaults stored in config.toml.

Keys:
  formats.<format>.reader.separator  separator expected when reading
  formats.<format>.writer.separator  separator used when writing
  sampleid.pattern                   regular expression applied to the file path
  sampleid.group                     pattern group holding the sample ID
  library.dir                        library database directory
  watch.settle_ms                    default watch settle delay in milliseconds
  output.plain                       true disables terminal colours`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configStore == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configStore.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.title.Render("Current Settings"))
	cmd.Println()

	cmd.Println(st.label.Render("[Sample ID]"))
	if settings.SampleIDPattern == "" {
		cmd.Println("  Pattern: (file name without extension)")
	} else {
		cmd.Printf("  Pattern: %s\n", settings.SampleIDPattern)
		cmd.Printf("  Group:   %s\n", orDefault(settings.SampleIDGroup, "0"))
	}
	cmd.Println()

	cmd.Println(st.label.Render("[Separators]"))
	for _, name := range formatNames() {
		cmd.Printf("  %s reader: %q\n", name, orDefault(settings.ReaderSeparators[name], ";"))
		cmd.Printf("  %s writer: %q\n", name, orDefault(settings.WriterSeparators[name], ";"))
	}
	cmd.Println()

	cmd.Println(st.label.Render("[Library]"))
	cmd.Printf("  Directory: %s\n", orDefault(settings.LibraryDir, "(default)"))
	cmd.Println()

	cmd.Println(st.label.Render("[Watch]"))
	if settings.WatchSettle > 0 {
		cmd.Printf("  Settle: %s\n", settings.WatchSettle)
	} else {
		cmd.Printf("  Settle: %s (default)\n", watcher.DefaultSettleDelay)
	}
	cmd.Println()

	cmd.Println(st.label.Render("[Output]"))
	cmd.Printf("  Plain: %t\n", settings.PlainOutput)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if strings.HasSuffix(key, ".separator") {
		value = unescape(value)
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %q\n", key, value)
	return nil
}

func formatNames() []string {
	if conversionService == nil {
		return nil
	}
	infos := conversionService.Formats()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	sort.Strings(names)
	return names
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
