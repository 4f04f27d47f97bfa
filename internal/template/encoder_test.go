package template

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/testutil"
	"github.com/pders01/templatify/internal/transform"
)

func TestEncodeTree(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/work", map[string]string{
		"README.md":        "# hello\n",
		"src/main.go":      "package main\n",
		"src/util/util.go": "package util\n",
		"src/util/empty/":  "",
		"z.txt":            "",
		"assets/logo.svg":  "<svg/>",
		"assets/data.bin":  "\x00\x01\x02",
	})

	enc, err := NewEncoder(fsys)
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), "/work")
	require.NoError(t, err)

	want := []models.Node{
		models.NewFile("README.md", transform.EncodeContent([]byte("# hello\n"))),
		models.NewDirectory("assets", []models.Node{
			models.NewFile("data.bin", "%00%01%02"),
			models.NewFile("logo.svg", transform.EncodeContent([]byte("<svg/>"))),
		}),
		models.NewDirectory("src", []models.Node{
			models.NewFile("main.go", transform.EncodeContent([]byte("package main\n"))),
			models.NewDirectory("util", []models.Node{
				models.NewDirectory("empty", nil),
				models.NewFile("util.go", transform.EncodeContent([]byte("package util\n"))),
			}),
		}),
		models.NewFile("z.txt", ""),
	}
	assert.Equal(t, want, nodes)
}

func TestEncodeTreeEmptyDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/empty", 0755))

	enc, err := NewEncoder(fsys)
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), "/empty")
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestEncodeTreeExclude(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/work", map[string]string{
		".git/HEAD":         "ref: refs/heads/main\n",
		"node_modules/x.js": "",
		"main.go":           "package main\n",
		"debug.log":         "noise",
		"src/trace.log":     "noise",
		"src/keep.go":       "package src\n",
	})

	enc, err := NewEncoder(fsys, WithExclude(".git", "node_modules", "*.log", " "))
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), "/work")
	require.NoError(t, err)

	var paths []string
	models.Walk(nodes, func(rel string, _ *models.Node) {
		paths = append(paths, rel)
	})
	assert.Equal(t, []string{"main.go", "src", "src/keep.go"}, paths)
}

func TestNewEncoderInvalidPattern(t *testing.T) {
	_, err := NewEncoder(afero.NewMemMapFs(), WithExclude("[unclosed"))
	assert.Error(t, err)
}

func TestEncodeTreeMissingDirectory(t *testing.T) {
	enc, err := NewEncoder(afero.NewMemMapFs())
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), "/does/not/exist")
	assert.ErrorIs(t, err, ErrReadFailure)
	assert.Nil(t, nodes)
}

// failingFs fails reads of one file so the all-or-nothing contract can be
// observed.
type failingFs struct {
	afero.Fs
	path string
}

var errInjected = errors.New("injected read error")

func (f *failingFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: errInjected}
	}
	return f.Fs.Open(name)
}

func TestEncodeTreeReadFailureDiscardsResult(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WriteTree(t, mem, "/work", map[string]string{
		"a.txt":         "a",
		"nested/b.txt":  "b",
		"nested/c.txt":  "c",
		"z/zz/deep.txt": "z",
	})

	enc, err := NewEncoder(&failingFs{Fs: mem, path: "/work/nested/c.txt"}, WithEncoderConcurrency(2))
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), "/work")
	assert.ErrorIs(t, err, ErrReadFailure)
	assert.ErrorIs(t, err, errInjected)
	assert.Nil(t, nodes)
}

func TestEncodeDocument(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/work", map[string]string{"a.txt": "a"})

	enc, err := NewEncoder(fsys)
	require.NoError(t, err)

	doc, err := enc.EncodeDocument(context.Background(), "/work", Metadata{
		Title:       "  Starter  ",
		Description: " a starter project ",
		Author:      "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Starter", doc.Title)
	assert.Equal(t, "a starter project", doc.Description)
	assert.Empty(t, doc.Author)
	assert.Equal(t, []models.Node{models.NewFile("a.txt", "a")}, doc.Root)
}

func TestEncodeDocumentEmptyTitle(t *testing.T) {
	enc, err := NewEncoder(afero.NewMemMapFs())
	require.NoError(t, err)

	_, err = enc.EncodeDocument(context.Background(), "/work", Metadata{Title: " \t "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestEncodeTreeSkipsSymlinks(t *testing.T) {
	dir := t.TempDir()
	fsys := afero.NewOsFs()
	testutil.WriteTree(t, fsys, dir, map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
	})
	for link, target := range map[string]string{
		"link.txt": filepath.Join(dir, "a.txt"),
		"loop":     dir,
		"dangling": filepath.Join(dir, "missing"),
		"sub/up":   "..",
	} {
		if err := os.Symlink(target, filepath.Join(dir, link)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	enc, err := NewEncoder(fsys)
	require.NoError(t, err)

	nodes, err := enc.EncodeTree(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []models.Node{
		models.NewFile("a.txt", "a"),
		models.NewDirectory("sub", []models.Node{
			models.NewFile("b.txt", "b"),
		}),
	}, nodes)
}
