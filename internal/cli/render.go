package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorTextDim = lipgloss.Color("#575653")
	ColorText    = lipgloss.Color("#FFFCF0")
	ColorAccent  = lipgloss.Color("#3AA99F")
	ColorGreen   = lipgloss.Color("#879A39")
	ColorRed     = lipgloss.Color("#D14D41")
	ColorBlue    = lipgloss.Color("#4385BE")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)

	// CostStyle highlights monetary figures.
	CostStyle = lipgloss.NewStyle().Foreground(ColorGreen)
	// ErrStyle highlights error output.
	ErrStyle = lipgloss.NewStyle().Foreground(ColorRed)
	// NameStyle highlights session display names.
	NameStyle = lipgloss.NewStyle().Foreground(ColorBlue)
)

// Table is a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Render renders the table with box-drawing borders. The first column
// is left-aligned, the rest right-aligned.
func (t Table) Render() string {
	numCols := len(t.Headers)
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(borderLine(widths, "╭", "┬", "╮"))

	b.WriteString(dimStyle.Render("│"))
	for i, h := range t.Headers {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
		b.WriteString(dimStyle.Render("│"))
	}
	b.WriteString("\n")
	b.WriteString(borderLine(widths, "├", "┼", "┤"))

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == 0 {
				cell = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				cell = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(cell))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(borderLine(widths, "╰", "┴", "╯"))
	return b.String()
}

func borderLine(widths []int, left, mid, right string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
	return b.String()
}
