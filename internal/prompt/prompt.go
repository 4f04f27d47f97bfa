// Package prompt asks the user to pick templates and fill in template
// metadata. The terminal implementation is backed by survey; Scripted answers
// from a fixed script for non-interactive runs and tests.
package prompt

import (
	"errors"
	"os"

	"golang.org/x/term"
)

var (
	// ErrCancelled is returned when the user dismisses a prompt.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNotInteractive is returned when an answer is needed but no
	// terminal is attached and none was scripted.
	ErrNotInteractive = errors.New("no interactive terminal; pass the template title as an argument")
)

// Option is one selectable entry. Description is shown as a preview next to
// the highlighted option.
type Option struct {
	Label       string
	Description string
}

// Selector collects choices from the user.
type Selector interface {
	// SelectOne returns the index of the chosen option.
	SelectOne(message string, options []Option) (int, error)
	// SelectMany returns the indices of the chosen options in option order.
	SelectMany(message string, options []Option) ([]int, error)
	// Input returns free text, or def when the answer is empty.
	Input(message, def string) (string, error)
}

// IsInteractive reports whether stdin and stdout are both terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// New returns a terminal selector when one is available and an empty
// script otherwise, so every question fails with ErrNotInteractive.
func New() Selector {
	if IsInteractive() {
		return NewSurvey()
	}
	return &Scripted{}
}

func labels(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Label
	}
	return out
}
