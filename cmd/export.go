package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/prompt"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var (
	exportDescription string
	exportAuthor      string
)

var exportCmd = &cobra.Command{
	Use:   "export [title]",
	Short: "Save the workspace as a new template",
	Long: `Capture every file and folder in the workspace as a new template.

Without a title you are asked for one (defaulting to the workspace folder
name), followed by an optional description and author. Titles that differ
only in case or whitespace name the same template and are rejected.

Examples:
  templatify export
  templatify export "Go service" --description "cobra + viper skeleton"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDescription, "description", "", "Template description")
	exportCmd.Flags().StringVar(&exportAuthor, "author", "", "Template author")
}

func runExport(cmd *cobra.Command, args []string) error {
	workspace, err := resolveWorkspace()
	if err != nil {
		return err
	}

	catalog := openCatalog(cmd)
	if err := catalog.EnsureFolder(); err != nil {
		return err
	}

	meta, err := exportMetadata(cmd, catalog, workspace, args)
	if errors.Is(err, prompt.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	encoder, err := newEncoder()
	if err != nil {
		return err
	}
	doc, err := encoder.EncodeDocument(cmd.Context(), workspace, meta)
	if err != nil {
		return err
	}

	path, err := catalog.Create(doc)
	if err != nil {
		return err
	}

	files, dirs := doc.Stats()
	logging.Info("exported template",
		logging.String("title", doc.Title),
		logging.String("path", path),
		logging.Int("files", files),
		logging.Int("directories", dirs))
	notifierFor(cmd).Success(fmt.Sprintf("Exported %s as template: %s", workspace, doc.Title))
	return nil
}

// exportMetadata settles the title, re-asking while it conflicts when the
// title came from a prompt.
func exportMetadata(cmd *cobra.Command, catalog *template.Catalog, workspace string, args []string) (template.Metadata, error) {
	meta := template.Metadata{Description: exportDescription, Author: exportAuthor}
	interactive := len(args) == 0

	var title string
	if interactive {
		answer, err := getSelector().Input("Template title:", filepath.Base(workspace))
		if err != nil {
			return meta, err
		}
		title = answer
	} else {
		title = args[0]
	}

	for {
		title = strings.TrimSpace(title)
		if title == "" {
			return meta, template.ErrEmptyTitle
		}

		exists, err := catalog.Exists(title)
		if err != nil {
			return meta, err
		}
		if !exists {
			break
		}
		if !interactive {
			return meta, fmt.Errorf("%w: %s", template.ErrNameConflict, title)
		}

		notifierFor(cmd).Info("A template with a similar name already exists. Please name your template differently.")
		answer, err := getSelector().Input("Template title:", "")
		if err != nil {
			return meta, err
		}
		title = answer
	}
	meta.Title = title

	if interactive {
		if meta.Description == "" {
			answer, err := getSelector().Input("Description (optional):", "")
			if err != nil {
				return meta, err
			}
			meta.Description = answer
		}
		if meta.Author == "" {
			answer, err := getSelector().Input("Author (optional):", "")
			if err != nil {
				return meta, err
			}
			meta.Author = answer
		}
	}

	return meta, nil
}
