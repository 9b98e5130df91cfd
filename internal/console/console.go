// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console prints the colored status lines shown to the operator.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Background(lipgloss.Color("0"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Background(lipgloss.Color("0"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Background(lipgloss.Color("0"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Background(lipgloss.Color("0"))
)

// Printer writes styled lines to an output stream.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Stdout is the Printer commands use by default.
var Stdout = New(os.Stdout)

// DisableColor switches every style to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func (p *Printer) Info(format string, args ...any) {
	p.line(infoStyle, format, args...)
}

func (p *Printer) Success(format string, args ...any) {
	p.line(successStyle, format, args...)
}

func (p *Printer) Warn(format string, args ...any) {
	p.line(warnStyle, format, args...)
}

// Error prints err in the error style. The cause chain is part of err's message.
func (p *Printer) Error(err error) {
	p.line(errorStyle, "%v", err)
}

// Plain prints text without styling.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) line(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.out, style.Render(fmt.Sprintf(format, args...)))
}
