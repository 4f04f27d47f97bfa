package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowJSON(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Starter", map[string]string{
		"go.mod":          "module x\n",
		"cmd/app/main.go": "package main\n",
		"docs/":           "",
	})

	showJSON = true
	require.NoError(t, runShow(e.cmd(), []string{"Starter"}))

	var got templateDetail
	require.NoError(t, json.Unmarshal(e.out.Bytes(), &got))
	assert.Equal(t, "Starter", got.Title)
	assert.Equal(t, 2, got.Files)
	assert.Equal(t, 3, got.Directories)
	assert.Equal(t, []string{"cmd/", "cmd/app/", "cmd/app/main.go", "docs/", "go.mod"}, got.Tree)
}

func TestShowTree(t *testing.T) {
	e := setupEnv(t)
	exportDescription = "a go module"
	e.exportFrom(t, "Starter", map[string]string{
		"go.mod":          "module x\n",
		"cmd/app/main.go": "package main\n",
	})

	require.NoError(t, runShow(e.cmd(), []string{"Starter"}))

	output := e.out.String()
	assert.Contains(t, output, "Template: Starter")
	assert.Contains(t, output, "Description: a go module")
	assert.Contains(t, output, "  cmd/\n    app/\n      main.go\n  go.mod\n")
}

func TestShowUnknownTemplate(t *testing.T) {
	e := setupEnv(t)
	e.exportFrom(t, "Starter", map[string]string{"go.mod": "module x\n"})

	err := runShow(e.cmd(), []string{"Missing"})
	assert.Error(t, err)
}
