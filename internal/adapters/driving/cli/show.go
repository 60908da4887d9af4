package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
	"github.com/custodia-labs/xyspec-cli/internal/formats/asciixy"
)

var (
	showRead  readFlags
	showLimit int
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the spectrum in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showRead.bind(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 20, "maximum number of points to print (0 for all)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	spectra, err := conversionService.Read(cmd.Context(), showRead.request(args[0]))
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	for i := range spectra {
		printSpectrum(cmd, st, &spectra[i], showLimit)
	}
	return nil
}

func printSpectrum(cmd *cobra.Command, st styles, s *domain.Spectrum, limit int) {
	cmd.Println(st.title.Render("Sample: " + s.ID))
	cmd.Printf("%s %d\n", st.label.Render("Points:"), s.Len())
	if s.Len() == 0 {
		cmd.Println()
		return
	}

	lo, hi := waveRange(s.Waves)
	cmd.Printf("%s %s .. %s\n\n", st.label.Render("Range:"), asciixy.FormatFloat(lo), asciixy.FormatFloat(hi))

	n := s.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			asciixy.FormatFloat(s.Waves[i]),
			asciixy.FormatFloat(s.Amplitudes[i]),
		})
	}
	cmd.Print(st.table([]string{"#", "Wave", "Amplitude"}, rows))

	if n < s.Len() {
		cmd.Println(st.muted.Render(fmt.Sprintf("... %d more points (use --limit 0 to show all)", s.Len()-n)))
	}
	cmd.Println()
}

// waveRange returns the smallest and largest wave. Waves are not
// necessarily sorted.
func waveRange(waves []float64) (float64, float64) {
	lo, hi := waves[0], waves[0]
	for _, w := range waves[1:] {
		if w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}
	return lo, hi
}
