package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/pders01/templatify/internal/config"
	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/prompt"
	"github.com/pders01/templatify/internal/template"
	"github.com/pders01/templatify/internal/testutil"
)

// testEnv points every command at temporary folders and scripted answers.
type testEnv struct {
	ws        *testutil.TempWorkspace
	templates string
	sel       *prompt.Scripted
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	viper.Reset()
	config.SetDefaults(t.TempDir())
	templates := filepath.Join(t.TempDir(), "templates")
	viper.Set(config.KeyTemplatesLocation, templates)

	e := &testEnv{
		ws:        testutil.NewTempWorkspace(t),
		templates: templates,
		sel:       &prompt.Scripted{},
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
	}

	appFs = afero.NewOsFs()
	selector = e.sel
	workspaceDir = e.ws.Path
	cfgFile = filepath.Join(t.TempDir(), "config.toml")

	// Reset flags
	exportDescription, exportAuthor = "", ""
	updateDescription, updateAuthor = "", ""
	listJSON, listToon = false, false
	showJSON, showToon = false, false

	t.Cleanup(func() {
		viper.Reset()
		selector = nil
		workspaceDir = ""
		cfgFile = ""
	})
	return e
}

func (e *testEnv) cmd() *cobra.Command {
	c := &cobra.Command{}
	c.SetOut(e.out)
	c.SetErr(e.errOut)
	c.SetContext(context.Background())
	return c
}

// exportFrom stores files as a template without touching the test workspace.
func (e *testEnv) exportFrom(t *testing.T, title string, files map[string]string) {
	t.Helper()

	src := t.TempDir()
	testutil.WriteTree(t, afero.NewOsFs(), src, files)

	prev := workspaceDir
	workspaceDir = src
	defer func() { workspaceDir = prev }()

	c := e.cmd()
	c.SetOut(io.Discard)
	require.NoError(t, runExport(c, []string{title}))
}

func (e *testEnv) entries(t *testing.T) []template.Entry {
	t.Helper()
	entries, err := template.NewCatalog(afero.NewOsFs(), e.templates, nil).ListDocuments(context.Background())
	require.NoError(t, err)
	return entries
}

func (e *testEnv) document(t *testing.T, title string) *models.Document {
	t.Helper()
	entry, ok := template.Find(e.entries(t), title)
	require.True(t, ok, "template %q not found", title)
	return entry.Document
}
