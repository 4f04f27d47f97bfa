package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/pders01/templatify/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the templates folder and a default config",
	Long: `Prepare templatify for use.

This command:
  - Creates the templates folder if it doesn't exist
  - Creates a default config file if it doesn't exist

Existing files are never overwritten.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	catalog := openCatalog(cmd)
	if err := catalog.EnsureFolder(); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Templates folder: %s\n", catalog.Folder())

	path, err := configPath()
	if err != nil {
		return err
	}

	exists, err := afero.Exists(appFs, path)
	if err != nil {
		return fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		fmt.Fprintf(out, "Config already exists: %s\n", path)
	} else {
		if err := appFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		var buf bytes.Buffer
		if err := config.WriteDefault(&buf, catalog.Folder()); err != nil {
			return fmt.Errorf("failed to encode default config: %w", err)
		}
		if err := afero.WriteFile(appFs, path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Fprintf(out, "✓ Created default config: %s\n", path)
	}

	fmt.Fprintln(out, "\n✓ templatify initialized successfully!")
	fmt.Fprintln(out, "  You can now use: templatify export <title>")

	return nil
}
