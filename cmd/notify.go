package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// consoleNotifier renders template events on the terminal. Notices go to
// errOut so list and show output stays machine readable.
type consoleNotifier struct {
	out    io.Writer
	errOut io.Writer

	warn    *color.Color
	failure *color.Color
	success *color.Color
}

func newConsoleNotifier(out, errOut io.Writer) *consoleNotifier {
	return &consoleNotifier{
		out:     out,
		errOut:  errOut,
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
	}
}

func (n *consoleNotifier) NoDocuments(folder string) {
	fmt.Fprintf(n.errOut, "No templates found in %s\n", folder)
}

func (n *consoleNotifier) Corrupted(name string, err error) {
	n.warn.Fprintf(n.errOut, "Warning: %v\n", err)
}

func (n *consoleNotifier) Failure(err error) {
	n.failure.Fprintf(n.errOut, "Error: %v\n", err)
}

func (n *consoleNotifier) Success(msg string) {
	n.success.Fprintf(n.out, "✓ %s\n", msg)
}

// Info prints a plain notice.
func (n *consoleNotifier) Info(format string, a ...any) {
	fmt.Fprintf(n.errOut, format+"\n", a...)
}
