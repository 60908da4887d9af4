package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
)

// readFlags are the input options shared by commands that read files.
type readFlags struct {
	format    string
	separator string
	pattern   string
	group     string
}

func (f *readFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "from", "f", "", "input format (default: detect from extension)")
	cmd.Flags().StringVar(&f.separator, "in-sep", "", "input column separator (default from config, else \";\")")
	cmd.Flags().StringVar(&f.pattern, "sample-id-pattern", "", "regular expression extracting the sample ID from the file path")
	cmd.Flags().StringVar(&f.group, "sample-id-group", "", "pattern group (number or name) holding the sample ID")
}

func (f *readFlags) request(path string) driving.ReadRequest {
	return driving.ReadRequest{
		Path:            path,
		Format:          f.format,
		ReaderConfig:    separatorConfig(f.separator),
		SampleIDPattern: f.pattern,
		SampleIDGroup:   f.group,
	}
}

// writeFlags are the output options shared by commands that write files.
type writeFlags struct {
	format    string
	separator string
}

func (f *writeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "to", "t", "", "output format (default: detect from extension)")
	cmd.Flags().StringVar(&f.separator, "out-sep", "", "output column separator (default from config, else \";\")")
}

func separatorConfig(sep string) map[string]any {
	if sep == "" {
		return nil
	}
	return map[string]any{"separator": unescape(sep)}
}

// unescape turns the shell-friendly spellings \t and \s into tab and space.
func unescape(sep string) string {
	switch sep {
	case `\t`:
		return "\t"
	case `\s`:
		return " "
	default:
		return sep
	}
}
