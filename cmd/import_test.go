package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/templatify/internal/prompt"
	"github.com/pders01/templatify/internal/template"
)

func TestImportByTitleNeverOverwrites(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Starter", map[string]string{
		"main.go":    "package main\n",
		"src/lib.go": "package src\n",
		".gitignore": "bin/\n",
	})

	e.ws.CreateFile("main.go", "package existing\n")
	e.ws.CreateFile(".gitignore", "*.tmp\n")

	require.NoError(t, runImport(e.cmd(), []string{"Starter"}))

	assert.Equal(t, map[string]string{
		".gitignore":     "*.tmp\n",
		" (1).gitignore": "bin/\n",
		"main.go":        "package existing\n",
		"main (1).go":    "package main\n",
		"src/":           "",
		"src/lib.go":     "package src\n",
	}, e.ws.Tree())
	assert.Contains(t, e.out.String(), "Imported template: Starter")
}

func TestImportSelectsFromList(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Alpha", map[string]string{"alpha.txt": "a"})
	e.exportFrom(t, "Beta", map[string]string{"beta.txt": "b"})

	// Entries are listed by file name: nycun.template.json, orgn.template.json.
	e.sel.Picks = []int{1}
	require.NoError(t, runImport(e.cmd(), []string{}))

	assert.Equal(t, map[string]string{"beta.txt": "b"}, e.ws.Tree())
	assert.Equal(t, []string{"Select a template to import:"}, e.sel.Asked())
}

func TestImportCancelled(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Alpha", map[string]string{"alpha.txt": "a"})

	e.sel.Picks = []int{prompt.Cancel}
	require.NoError(t, runImport(e.cmd(), []string{}))

	assert.Empty(t, e.ws.Tree())
	assert.Empty(t, e.out.String())
}

func TestImportNonInteractiveNeedsTitle(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Alpha", map[string]string{"alpha.txt": "a"})

	err := runImport(e.cmd(), []string{})
	assert.ErrorIs(t, err, prompt.ErrNotInteractive)
}

func TestImportUnknownTitle(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Alpha", map[string]string{"alpha.txt": "a"})

	err := runImport(e.cmd(), []string{"alpha"})
	assert.Error(t, err)
	assert.Empty(t, e.ws.Tree())
}

func TestImportNoTemplates(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, os.MkdirAll(e.templates, 0755))

	require.NoError(t, runImport(e.cmd(), []string{}))
	assert.Contains(t, e.errOut.String(), "No templates found")
	assert.Empty(t, e.sel.Asked())
}

func TestImportTemplatesFolderMissing(t *testing.T) {
	e := setupEnv(t)

	err := runImport(e.cmd(), []string{"Alpha"})
	assert.ErrorIs(t, err, template.ErrDirectoryUnavailable)
}

func TestImportSkipsCorruptedTemplates(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Alpha", map[string]string{"alpha.txt": "a"})
	require.NoError(t, os.WriteFile(filepath.Join(e.templates, "broken.template.json"), []byte("{"), 0644))

	require.NoError(t, runImport(e.cmd(), []string{"Alpha"}))

	assert.Contains(t, e.errOut.String(), "broken.template.json may be corrupted")
	assert.Equal(t, map[string]string{"alpha.txt": "a"}, e.ws.Tree())
}
