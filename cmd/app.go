package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/templatify/internal/config"
	"github.com/pders01/templatify/internal/prompt"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	appFs    afero.Fs = afero.NewOsFs()
	selector prompt.Selector
)

func getSelector() prompt.Selector {
	if selector == nil {
		selector = prompt.New()
	}
	return selector
}

func notifierFor(cmd *cobra.Command) *consoleNotifier {
	return newConsoleNotifier(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func openCatalog(cmd *cobra.Command) *template.Catalog {
	return template.NewCatalog(appFs, config.GetTemplateLocation(), notifierFor(cmd))
}

// resolveWorkspace returns the absolute workspace folder, failing when it is
// not an existing directory.
func resolveWorkspace() (string, error) {
	dir := workspaceDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve workspace: %w", err)
	}

	isDir, err := afero.IsDir(appFs, abs)
	if err != nil || !isDir {
		return "", fmt.Errorf("you must be working from inside a folder: %s", abs)
	}
	return abs, nil
}

func newEncoder() (*template.Encoder, error) {
	return template.NewEncoder(appFs,
		template.WithExclude(config.GetExclude()...),
		template.WithEncoderConcurrency(config.GetConcurrency()),
	)
}

func entryOptions(entries []template.Entry) []prompt.Option {
	options := make([]prompt.Option, len(entries))
	for i, e := range entries {
		files, dirs := e.Document.Stats()
		desc := fmt.Sprintf("%d files, %d directories", files, dirs)
		if e.Document.Description != "" {
			desc = e.Document.Description + " (" + desc + ")"
		}
		if e.Document.Author != "" {
			desc += " by " + e.Document.Author
		}
		options[i] = prompt.Option{Label: e.Document.Label(), Description: desc}
	}
	return options
}

// selectEntry picks the entry named by args or asks the user for one. ok is
// false when the user cancelled.
func selectEntry(entries []template.Entry, args []string, message string) (template.Entry, bool, error) {
	if len(args) > 0 {
		entry, found := template.Find(entries, args[0])
		if !found {
			return template.Entry{}, false, fmt.Errorf("template not found: %s", args[0])
		}
		return entry, true, nil
	}

	index, err := getSelector().SelectOne(message, entryOptions(entries))
	if errors.Is(err, prompt.ErrCancelled) {
		return template.Entry{}, false, nil
	}
	if err != nil {
		return template.Entry{}, false, err
	}
	return entries[index], true, nil
}
