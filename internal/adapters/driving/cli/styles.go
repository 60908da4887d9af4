package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colour palette for terminal output.
var (
	colourPrimary = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
)

// styles holds the lipgloss styles used by show and list output.
// The zero value renders plain text.
type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
}

// stylesFor returns coloured styles when w is a terminal and output.plain
// is not set, plain ones otherwise.
func stylesFor(w io.Writer) styles {
	plain := styles{
		title:  lipgloss.NewStyle(),
		label:  lipgloss.NewStyle(),
		muted:  lipgloss.NewStyle(),
		header: lipgloss.NewStyle(),
		cell:   lipgloss.NewStyle().PaddingRight(2),
	}

	if configStore != nil && configStore.GetBool("output.plain") {
		return plain
	}

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return plain
	}

	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colourPrimary),
		label: lipgloss.NewStyle().
			Bold(true),
		muted: lipgloss.NewStyle().
			Foreground(colourMuted),
		header: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		cell: lipgloss.NewStyle().
			PaddingRight(2),
	}
}

// table renders rows in left-aligned columns.
func (s styles) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if w := lipgloss.Width(c); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	render := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(c)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	out := render(headers, s.header) + "\n"
	for _, row := range rows {
		out += render(row, s.cell) + "\n"
	}
	return out
}
