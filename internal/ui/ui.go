// Package ui renders dk's terminal output: status lines, usage text and tables.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Printer writes styled output to a single writer. Colors are only emitted
// when the writer is a color-capable terminal.
type Printer struct {
	out io.Writer

	infoStyle    lipgloss.Style
	errorStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	commandStyle lipgloss.Style
	headerStyle  lipgloss.Style
	cellStyle    lipgloss.Style
	boldStyle    lipgloss.Style
	hintStyle    lipgloss.Style
}

// New creates a Printer for out.
func New(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:          out,
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("#16A34A")),
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("#DC2626")),
		sectionStyle: r.NewStyle().Foreground(lipgloss.Color("#0891B2")).Bold(true),
		commandStyle: r.NewStyle().Foreground(lipgloss.Color("#CA8A04")),
		headerStyle:  r.NewStyle().Foreground(lipgloss.Color("#16A34A")).Bold(true).Padding(0, 1),
		cellStyle:    r.NewStyle().Padding(0, 1),
		boldStyle:    r.NewStyle().Bold(true).Padding(0, 1),
		hintStyle:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Info prints a green "-- msg" status line.
func (p *Printer) Info(msg string) {
	_, _ = fmt.Fprintf(p.out, "-- %s\n", p.infoStyle.Render(msg))
}

// Infof formats and prints an info line.
func (p *Printer) Infof(format string, args ...any) {
	p.Info(fmt.Sprintf(format, args...))
}

// Error prints a red "-- msg" status line.
func (p *Printer) Error(msg string) {
	_, _ = fmt.Fprintf(p.out, "-- %s\n", p.errorStyle.Render(msg))
}

// Errorf formats and prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.Error(fmt.Sprintf(format, args...))
}

// Section prints a bold section title such as "CONTAINERS:".
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.out, p.sectionStyle.Render(title))
}

// UsageLine prints one command of the usage text.
func (p *Printer) UsageLine(command, description string) {
	_, _ = fmt.Fprintf(p.out, "  . %s : %s\n", p.commandStyle.Render(fmt.Sprintf("%-28s", command)), description)
}

// Hint prints a dim italic line.
func (p *Printer) Hint(msg string) {
	_, _ = fmt.Fprintln(p.out, "  "+p.hintStyle.Render(msg))
}

// Println writes a plain line.
func (p *Printer) Println(a ...any) {
	_, _ = fmt.Fprintln(p.out, a...)
}

// Table prints rows under headers with borderless, space-separated columns.
// Cells in boldColumn (ignored when negative) are rendered bold.
func (p *Printer) Table(headers []string, rows [][]string, boldColumn int) {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return p.headerStyle
			case col == boldColumn:
				return p.boldStyle
			default:
				return p.cellStyle
			}
		})

	// Hidden borders still pad every line on the right
	for _, line := range strings.Split(t.String(), "\n") {
		_, _ = fmt.Fprintln(p.out, strings.TrimRight(line, " "))
	}
}
