package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/templatify/internal/template"
	"github.com/spf13/cobra"
)

var (
	listJSON bool
	listToon bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	Long: `List every valid template in the templates folder.

Files that cannot be read or are not valid templates are reported and
skipped.

Examples:
  templatify list
  templatify list --json
  templatify list --toon`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
}

type templateSummary struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	File        string `json:"file"`
	Files       int    `json:"files"`
	Directories int    `json:"directories"`
}

func summarize(e template.Entry) templateSummary {
	files, dirs := e.Document.Stats()
	return templateSummary{
		Title:       e.Document.Title,
		Description: e.Document.Description,
		Author:      e.Document.Author,
		File:        e.FileName,
		Files:       files,
		Directories: dirs,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := openCatalog(cmd).ListDocuments(cmd.Context())
	if err != nil {
		return err
	}

	summaries := make([]templateSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, summarize(e))
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, summaries, listJSON, listToon); handled {
		return err
	}

	if len(summaries) == 0 {
		return nil
	}

	fmt.Fprintf(out, "Found %d template(s):\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(out, "  %s\n", s.Title)
		if s.Description != "" {
			fmt.Fprintf(out, "    Description: %s\n", truncate(s.Description, 60))
		}
		if s.Author != "" {
			fmt.Fprintf(out, "    Author:      %s\n", s.Author)
		}
		fmt.Fprintf(out, "    Contents:    %d files, %d directories\n", s.Files, s.Directories)
		fmt.Fprintf(out, "    File:        %s\n", s.File)
		fmt.Fprintln(out)
	}

	return nil
}

// writeStructured prints v as JSON or toon when either flag is set.
func writeStructured(out io.Writer, v any, asJSON, asToon bool) (bool, error) {
	if asJSON {
		output, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(output))
		return true, nil
	}

	if asToon {
		output, err := gotoon.Encode(v)
		if err != nil {
			return true, fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(out, output)
		return true, nil
	}

	return false, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
