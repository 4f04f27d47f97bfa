package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
)

// TempWorkspace is a real on-disk directory for command tests
type TempWorkspace struct {
	Path string
	T    *testing.T
}

// NewTempWorkspace creates an empty workspace removed when the test ends
func NewTempWorkspace(t *testing.T) *TempWorkspace {
	t.Helper()

	return &TempWorkspace{
		Path: t.TempDir(),
		T:    t,
	}
}

// CreateFile creates a file in the workspace, creating parent directories
func (w *TempWorkspace) CreateFile(name, content string) {
	w.T.Helper()
	path := filepath.Join(w.Path, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		w.T.Fatalf("failed to create file: %v", err)
	}
}

// CreateDir creates an empty directory in the workspace
func (w *TempWorkspace) CreateDir(name string) {
	w.T.Helper()
	if err := os.MkdirAll(filepath.Join(w.Path, filepath.FromSlash(name)), 0755); err != nil {
		w.T.Fatalf("failed to create directory: %v", err)
	}
}

// Tree returns the workspace contents, see ReadTree
func (w *TempWorkspace) Tree() map[string]string {
	w.T.Helper()
	return ReadTree(w.T, afero.NewOsFs(), w.Path)
}

// WriteTree populates root on fsys. Keys are slash-separated relative paths;
// a key ending in "/" creates an empty directory.
func WriteTree(t *testing.T, fsys afero.Fs, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := fsys.MkdirAll(path, 0755); err != nil {
				t.Fatalf("failed to create directory: %v", err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := afero.WriteFile(fsys, path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

// ReadTree returns every entry below root keyed by slash-separated relative
// path. Directories appear with a trailing "/" and an empty value.
func ReadTree(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree: %v", err)
	}
	return tree
}

// Keys returns the sorted keys of a tree map
func Keys(tree map[string]string) []string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Notice is one event captured by RecordingNotifier
type Notice struct {
	Kind string
	Name string
	Err  error
	Msg  string
}

// RecordingNotifier captures notifications for assertions
type RecordingNotifier struct {
	mu      sync.Mutex
	Notices []Notice
}

func (r *RecordingNotifier) record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, n)
}

func (r *RecordingNotifier) NoDocuments(folder string) {
	r.record(Notice{Kind: "no-documents", Name: folder})
}

func (r *RecordingNotifier) Corrupted(name string, err error) {
	r.record(Notice{Kind: "corrupted", Name: name, Err: err})
}

func (r *RecordingNotifier) Failure(err error) {
	r.record(Notice{Kind: "failure", Err: err})
}

func (r *RecordingNotifier) Success(msg string) {
	r.record(Notice{Kind: "success", Msg: msg})
}

// Count returns how many notices of kind were recorded
func (r *RecordingNotifier) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, notice := range r.Notices {
		if notice.Kind == kind {
			n++
		}
	}
	return n
}

// Of returns the notices of kind in the order they were recorded
func (r *RecordingNotifier) Of(kind string) []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notice
	for _, notice := range r.Notices {
		if notice.Kind == kind {
			out = append(out, notice)
		}
	}
	return out
}
