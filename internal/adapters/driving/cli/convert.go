package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/xyspec-cli/internal/logger"
)

var (
	convertRead  readFlags
	convertWrite writeFlags
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a spectrum file",
	Long: `Reads a spectrum and writes it to a new file, optionally changing the
format or column separator. Rows are written in reverse order.`,
	Example: `  xyspec convert sample.txt sample.xy
  xyspec convert --in-sep , --out-sep '\t' sample.csv sample.txt --from asciixy`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertRead.bind(convertCmd)
	convertWrite.bind(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	logger.Section("Convert " + args[0])
	result, err := conversionService.Convert(cmd.Context(), driving.ConvertRequest{
		ReadRequest:  convertRead.request(args[0]),
		Output:       args[1],
		OutputFormat: convertWrite.format,
		WriterConfig: separatorConfig(convertWrite.separator),
	})
	if err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}

	cmd.Printf("Converted %s (%s) -> %s (%s): %d spectra, %d points\n",
		args[0], result.InputFormat, args[1], result.OutputFormat, result.Spectra, result.Points)
	return nil
}
