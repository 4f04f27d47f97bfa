package cmd

import (
	"errors"
	"fmt"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/prompt"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [titles...]",
	Short: "Delete stored templates",
	Long: `Delete one or more templates from the templates folder.

Without titles you pick the templates to delete from a list. Only the chosen
templates are removed.

Examples:
  templatify remove
  templatify remove "Go service" "Old site"`,
	Aliases: []string{"rm"},
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	catalog := openCatalog(cmd)
	entries, err := catalog.ListDocuments(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	chosen, err := chooseForRemoval(entries, args)
	if errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	notifier := notifierFor(cmd)
	var errs []error
	for _, entry := range chosen {
		if err := catalog.Remove(entry); err != nil {
			errs = append(errs, err)
			continue
		}
		logging.Info("removed template",
			logging.String("title", entry.Document.Title),
			logging.String("path", entry.Path))
		notifier.Success(fmt.Sprintf("Removed template: %s", entry.Document.Title))
	}

	return errors.Join(errs...)
}

// chooseForRemoval resolves every title before anything is deleted.
func chooseForRemoval(entries []template.Entry, titles []string) ([]template.Entry, error) {
	if len(titles) > 0 {
		chosen := make([]template.Entry, 0, len(titles))
		seen := make(map[string]bool)
		for _, title := range titles {
			entry, ok := template.Find(entries, title)
			if !ok {
				return nil, fmt.Errorf("template not found: %s", title)
			}
			if !seen[entry.Path] {
				seen[entry.Path] = true
				chosen = append(chosen, entry)
			}
		}
		return chosen, nil
	}

	indices, err := getSelector().SelectMany("Select templates to remove:", entryOptions(entries))
	if err != nil {
		return nil, err
	}
	chosen := make([]template.Entry, 0, len(indices))
	for _, i := range indices {
		chosen = append(chosen, entries[i])
	}
	return chosen, nil
}
