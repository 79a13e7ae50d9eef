package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console colours. fatih/color disables them when stdout is not a terminal
// or NO_COLOR is set.
var (
	promptColor = color.New(color.FgCyan, color.Bold)
	errorColor  = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow, color.Bold)
	okColor     = color.New(color.FgGreen)
)

// printer writes user-facing messages according to --quiet and --verbose.
type printer struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	verbose bool
}

func newPrinter(env *Environment, f commonFlags) *printer {
	return &printer{stdout: env.Stdout, stderr: env.Stderr, quiet: f.quiet, verbose: f.verbose}
}

// info prints a normal progress line to stdout unless quiet.
func (p *printer) info(format string, a ...any) {
	if p.quiet {
		return
	}
	_, _ = promptColor.Fprintf(p.stdout, format+"\n", a...)
}

// success prints a result line to stdout unless quiet.
func (p *printer) success(format string, a ...any) {
	if p.quiet {
		return
	}
	_, _ = okColor.Fprintf(p.stdout, format+"\n", a...)
}

// detail prints a line to stderr in verbose mode.
func (p *printer) detail(format string, a ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.stderr, format+"\n", a...)
}

// warn prints a warning to stderr. Warnings survive --quiet.
func (p *printer) warn(format string, a ...any) {
	_, _ = warnColor.Fprintf(p.stderr, format+"\n", a...)
}

// fail prints a red message to stderr.
func (p *printer) fail(format string, a ...any) {
	_, _ = errorColor.Fprintf(p.stderr, format+"\n", a...)
}

// printError reports a command error on w.
func printError(w io.Writer, err error) {
	_, _ = errorColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}
