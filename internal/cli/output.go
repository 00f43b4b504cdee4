package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/muesli/termenv"
)

// printer writes user-facing output with lipgloss styles.
type printer struct {
	out   io.Writer
	err   io.Writer
	quiet bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	header  lipgloss.Style
	muted   lipgloss.Style
	cell    lipgloss.Style
}

func newPrinter(out, errOut io.Writer, noColor, quiet bool) *printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &printer{
		out:     out,
		err:     errOut,
		quiet:   quiet,
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		cell:    r.NewStyle().Padding(0, 1),
	}
}

// Info prints an informational message
func (p *printer) Info(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintln(p.out, msg)
}

// Success prints a success message
func (p *printer) Success(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.success.Render("✓"), msg)
}

// Warning prints a warning message
func (p *printer) Warning(msg string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", p.warning.Render("⚠"), msg)
}

// Error prints an error message to the error stream, even when quiet.
func (p *printer) Error(msg string) {
	fmt.Fprintf(p.err, "%s %s\n", p.failure.Render("✗"), msg)
}

// Header prints a section header
func (p *printer) Header(title string) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "\n%s\n", p.header.Render("=== "+title+" ==="))
}

// Table renders rows under headers with a rounded border.
func (p *printer) Table(headers []string, rows [][]string) {
	if p.quiet {
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header.Padding(0, 1)
			}
			return p.cell
		})
	fmt.Fprintln(p.out, t.Render())
}

// Structured writes v as indented JSON or YAML. It is not affected by quiet
// since it is the command's primary output.
func (p *printer) Structured(v any, format string) error {
	data, err := encodeStructured(v, format)
	if err != nil {
		return err
	}
	_, err = p.out.Write(data)
	return err
}

func encodeStructured(v any, format string) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	switch format {
	case FormatYAML:
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert output to YAML: %w", err)
		}
		return out, nil
	default:
		return append(data, '\n'), nil
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}
