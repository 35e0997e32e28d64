// Package ui writes status lines and prompts for the command line.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gitoutofhours/pkg/errors"
)

// Printer writes coloured status lines. Normal output goes to Out and
// errors and warnings go to Err.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Color   bool
	Quiet   bool
	Verbose bool
}

// NewPrinter creates a Printer, enabling colour when Out is a terminal
func NewPrinter(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{Out: out, Err: errOut, Color: IsTerminal(out)}
}

func (p *Printer) style(style string) func(string) string {
	return colorFunc(style, p.Color)
}

// Info prints an informational line unless Quiet is set
func (p *Printer) Info(message string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, p.style(StyleInfo)(message))
}

// Success prints a success line unless Quiet is set
func (p *Printer) Success(message string) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Out, "%s %s\n", p.style(StyleSuccess)("SUCCESS:"), message)
}

// Warning prints a warning to Err
func (p *Printer) Warning(message string) {
	fmt.Fprintf(p.Err, "%s %s\n", p.style(StyleWarning)("WARNING:"), message)
}

// Error prints err to Err. With Verbose set, AppError codes, context and
// suggestions are shown too.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(p.Err, "%s %s\n", p.style(StyleError)("ERROR:"), err.Error())

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		if p.Verbose {
			for _, line := range strings.Split(appErr.Detail(), "\n") {
				fmt.Fprintf(p.Err, "  %s\n", p.style(StyleDim)(line))
			}
			if cause, ok := appErr.Context["cause"]; ok {
				fmt.Fprintf(p.Err, "  %s\n", p.style(StyleDim)(fmt.Sprintf("cause: %v", cause)))
			}
			return
		}
		if len(appErr.Suggestions) > 0 {
			fmt.Fprintf(p.Err, "  %s %s\n", p.style(StyleInfo)("TIP:"), appErr.Suggestions[0])
		}
		return
	}

	if suggestion := getSuggestion(err.Error()); suggestion != "" {
		fmt.Fprintf(p.Err, "  %s %s\n", p.style(StyleInfo)("TIP:"), suggestion)
	}
}

// KeyValue prints an aligned key and value
func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.Out, "  %s %s\n", p.style(StyleBold)(fmt.Sprintf("%-14s", key+":")), value)
}
