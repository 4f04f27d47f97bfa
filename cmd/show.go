package cmd

import (
	"fmt"
	"strings"

	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var (
	showJSON bool
	showToon bool
)

var showCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show a template's metadata and tree",
	Long: `Print a template's title, description, author and the files and folders
it would create.

Examples:
  templatify show "Go service"
  templatify show "Go service" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showToon, "toon", false, "Output in LLM-friendly toon format")
}

type templateDetail struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	File        string   `json:"file"`
	Files       int      `json:"files"`
	Directories int      `json:"directories"`
	Tree        []string `json:"tree"`
}

func detail(e template.Entry) templateDetail {
	s := summarize(e)
	d := templateDetail{
		Title:       s.Title,
		Description: s.Description,
		Author:      s.Author,
		File:        s.File,
		Files:       s.Files,
		Directories: s.Directories,
		Tree:        []string{},
	}
	models.Walk(e.Document.Root, func(rel string, n *models.Node) {
		if n.IsDir() {
			rel += "/"
		}
		d.Tree = append(d.Tree, rel)
	})
	return d
}

func runShow(cmd *cobra.Command, args []string) error {
	entries, err := openCatalog(cmd).ListDocuments(cmd.Context())
	if err != nil {
		return err
	}

	entry, ok := template.Find(entries, args[0])
	if !ok {
		return fmt.Errorf("template not found: %s", args[0])
	}
	d := detail(entry)

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, d, showJSON, showToon); handled {
		return err
	}

	fmt.Fprintf(out, "Template: %s\n", d.Title)
	fmt.Fprintln(out, "━━━━━━━━━━━━━━━━━━━")
	if d.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", d.Description)
	}
	if d.Author != "" {
		fmt.Fprintf(out, "Author:      %s\n", d.Author)
	}
	fmt.Fprintf(out, "File:        %s\n", d.File)
	fmt.Fprintf(out, "Contents:    %d files, %d directories\n", d.Files, d.Directories)
	fmt.Fprintln(out)

	for _, rel := range d.Tree {
		depth := strings.Count(strings.TrimSuffix(rel, "/"), "/")
		name := rel[strings.LastIndex(strings.TrimSuffix(rel, "/"), "/")+1:]
		fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth+1), name)
	}

	return nil
}
