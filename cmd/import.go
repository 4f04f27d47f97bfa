package cmd

import (
	"fmt"

	"github.com/pders01/templatify/internal/config"
	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [title]",
	Short: "Recreate a template inside the workspace",
	Long: `Write every file and folder of a template into the workspace.

Nothing in the workspace is ever overwritten. When a name is already taken
the imported entry is renamed with the first free numbered suffix:
  main.go      -> main (1).go
  src/         -> src (1)/

Examples:
  templatify import
  templatify import "Go service" --workspace ./new-service`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	workspace, err := resolveWorkspace()
	if err != nil {
		return err
	}

	entries, err := openCatalog(cmd).ListDocuments(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	entry, ok, err := selectEntry(entries, args, "Select a template to import:")
	if err != nil || !ok {
		return err
	}

	m := template.NewMaterializer(appFs).WithConcurrency(config.GetConcurrency())
	if err := m.Materialize(cmd.Context(), workspace, entry.Document.Root); err != nil {
		return err
	}

	logging.Info("imported template",
		logging.String("title", entry.Document.Title),
		logging.String("workspace", workspace))
	notifierFor(cmd).Success(fmt.Sprintf("Imported template: %s", entry.Document.Title))
	return nil
}
