package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported spectrum formats",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	infos := conversionService.Formats()
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		mode := "text"
		if info.Binary {
			mode = "binary"
		}
		rows = append(rows, []string{info.Name, strings.Join(info.Extensions, ", "), mode, info.Description})
	}

	cmd.Print(stylesFor(cmd.OutOrStdout()).table([]string{"Name", "Extensions", "Mode", "Description"}, rows))
	return nil
}
