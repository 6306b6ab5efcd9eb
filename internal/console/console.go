// Package console renders the operator-facing progress lines printed by the
// ledgersync commands. Structured diagnostics go through internal/logger.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Console writes styled lines to an output stream.
type Console struct {
	out io.Writer
}

// New returns a Console writing to stdout.
func New() *Console {
	return &Console{out: os.Stdout}
}

// NewWithWriter returns a Console writing to w.
func NewWithWriter(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf(format, args...)))
}

// Title prints the banner for a command, underlined with a rule.
func (c *Console) Title(format string, args ...any) {
	c.line(titleStyle, format, args...)
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
}

// Heading starts a new section, preceded by a blank line.
func (c *Console) Heading(format string, args ...any) {
	fmt.Fprintln(c.out)
	c.line(headingStyle, format, args...)
}

// Info prints an informational line.
func (c *Console) Info(format string, args ...any) { c.line(infoStyle, format, args...) }

// Success prints a success line.
func (c *Console) Success(format string, args ...any) { c.line(successStyle, format, args...) }

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...any) { c.line(warnStyle, format, args...) }

// Error prints an error line.
func (c *Console) Error(format string, args ...any) { c.line(errorStyle, format, args...) }

// Dim prints a de-emphasised line.
func (c *Console) Dim(format string, args ...any) { c.line(dimStyle, format, args...) }

// Plain prints an unstyled line.
func (c *Console) Plain(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}
