package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/transform"
)

// Entry is a valid document discovered in the catalog folder.
type Entry struct {
	FileName string
	Path     string
	Document *models.Document
}

// Catalog reads and writes template documents in a single folder.
type Catalog struct {
	fs       afero.Fs
	folder   string
	notifier Notifier
}

// NewCatalog creates a catalog over folder. A nil notifier discards events.
func NewCatalog(fsys afero.Fs, folder string, notifier Notifier) *Catalog {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Catalog{fs: fsys, folder: folder, notifier: notifier}
}

// Folder returns the catalog folder.
func (c *Catalog) Folder() string {
	return c.folder
}

type scanResult struct {
	entry *Entry
	err   error
}

// ListDocuments returns every valid document in the folder in discovery
// order. Entries that cannot be read, parsed or validated are reported to the
// notifier once each and left out; they never abort the scan.
func (c *Catalog) ListDocuments(ctx context.Context) ([]Entry, error) {
	infos, err := afero.ReadDir(c.fs, c.folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectoryUnavailable, c.folder, err)
	}

	var names []string
	for _, info := range infos {
		if info.Mode().IsRegular() && transform.IsDocumentName(info.Name()) {
			names = append(names, info.Name())
		}
	}

	results := make([]scanResult, len(names))
	p := pool.New().WithMaxGoroutines(DefaultConcurrency).WithContext(ctx)
	for i, name := range names {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := c.load(name)
			results[i] = scanResult{entry: entry, err: err}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			logging.Warn("skipping corrupted template",
				logging.String("file", names[i]),
				logging.Err(r.err))
			c.notifier.Corrupted(names[i], r.err)
			continue
		}
		entries = append(entries, *r.entry)
	}

	if len(entries) == 0 {
		c.notifier.NoDocuments(c.folder)
	}
	return entries, nil
}

func (c *Catalog) load(name string) (*Entry, error) {
	path := filepath.Join(c.folder, name)
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, &CorruptedError{Name: name, Err: err}
	}

	candidate, err := ParseCandidate(data)
	if err != nil {
		return nil, &CorruptedError{Name: name, Err: err}
	}
	doc, err := candidate.Document()
	if err != nil {
		return nil, &CorruptedError{Name: name, Err: err}
	}

	return &Entry{FileName: name, Path: path, Document: doc}, nil
}

// Exists reports whether any file in the folder already uses the identifier
// that title encodes to.
func (c *Catalog) Exists(title string) (bool, error) {
	id, ok := transform.EncodeName(title)
	if !ok {
		return false, ErrEmptyTitle
	}
	exists, err := afero.Exists(c.fs, filepath.Join(c.folder, id))
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrDirectoryUnavailable, c.folder, err)
	}
	return exists, nil
}

// Create saves a new document, refusing to replace an existing one. The
// final name is reserved with an exclusive create before the document is
// renamed over it, so concurrent creates of one title yield one winner.
func (c *Catalog) Create(doc *models.Document) (string, error) {
	exists, err := c.Exists(doc.Title)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %q", ErrNameConflict, doc.Title)
	}
	id, _ := transform.EncodeName(doc.Title)
	path := filepath.Join(c.folder, id)

	f, err := c.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %q", ErrNameConflict, doc.Title)
		}
		return "", fmt.Errorf("failed to reserve %s: %w", path, err)
	}
	f.Close()

	if err := c.write(path, doc); err != nil {
		c.fs.Remove(path)
		return "", err
	}
	return path, nil
}

// Replace overwrites the document stored for entry.
func (c *Catalog) Replace(entry Entry, doc *models.Document) error {
	return c.write(entry.Path, doc)
}

// Remove deletes the file backing entry.
func (c *Catalog) Remove(entry Entry) error {
	if err := c.fs.Remove(entry.Path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", entry.FileName, err)
	}
	return nil
}

// write stores doc at path through a temporary file and a rename so readers
// never see a partially written document.
func (c *Catalog) write(path string, doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	tmp, err := afero.TempFile(c.fs, c.folder, ".templatify-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		c.fs.Remove(tmpName)
		return fmt.Errorf("failed to write template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("failed to write template: %w", err)
	}
	if err := c.fs.Chmod(tmpName, filePerm); err != nil {
		logging.Debug("failed to chmod template", logging.String("path", tmpName), logging.Err(err))
	}
	if err := c.fs.Rename(tmpName, path); err != nil {
		c.fs.Remove(tmpName)
		return fmt.Errorf("failed to save template: %w", err)
	}

	logging.Debug("saved template", logging.String("path", path), logging.Int("bytes", len(data)))
	return nil
}

// Find returns the first entry whose title matches exactly.
func Find(entries []Entry, title string) (Entry, bool) {
	for _, e := range entries {
		if e.Document.Title == title {
			return e, true
		}
	}
	return Entry{}, false
}

// EnsureFolder creates the catalog folder if it does not exist.
func (c *Catalog) EnsureFolder() error {
	if err := c.fs.MkdirAll(c.folder, dirPerm); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	return nil
}
