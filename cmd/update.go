package cmd

import (
	"fmt"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var (
	updateDescription string
	updateAuthor      string
)

var updateCmd = &cobra.Command{
	Use:   "update [title]",
	Short: "Replace a template's contents with the workspace",
	Long: `Re-capture the workspace and overwrite the chosen template with it.

The title is kept; description and author are kept unless overridden.

Examples:
  templatify update
  templatify update "Go service" --description "now with zap logging"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateDescription, "description", "", "Replace the description")
	updateCmd.Flags().StringVar(&updateAuthor, "author", "", "Replace the author")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	workspace, err := resolveWorkspace()
	if err != nil {
		return err
	}

	catalog := openCatalog(cmd)
	entries, err := catalog.ListDocuments(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	entry, ok, err := selectEntry(entries, args, "Select a template to update:")
	if err != nil || !ok {
		return err
	}

	meta := template.Metadata{
		Title:       entry.Document.Title,
		Description: entry.Document.Description,
		Author:      entry.Document.Author,
	}
	if updateDescription != "" {
		meta.Description = updateDescription
	}
	if updateAuthor != "" {
		meta.Author = updateAuthor
	}

	encoder, err := newEncoder()
	if err != nil {
		return err
	}
	doc, err := encoder.EncodeDocument(cmd.Context(), workspace, meta)
	if err != nil {
		return err
	}

	if err := catalog.Replace(entry, doc); err != nil {
		return err
	}

	logging.Info("updated template",
		logging.String("title", doc.Title),
		logging.String("path", entry.Path))
	notifierFor(cmd).Success(fmt.Sprintf("Updated template: %s", doc.Title))
	return nil
}
