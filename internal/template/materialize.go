package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/transform"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Materializer writes document trees into a target directory without ever
// overwriting an existing entry.
type Materializer struct {
	fs          afero.Fs
	concurrency int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMaterializer creates a materializer writing to fsys.
func NewMaterializer(fsys afero.Fs) *Materializer {
	return &Materializer{
		fs:          fsys,
		concurrency: DefaultConcurrency,
		locks:       make(map[string]*sync.Mutex),
	}
}

// WithConcurrency bounds the sibling tasks run per directory level.
func (m *Materializer) WithConcurrency(n int) *Materializer {
	if n > 0 {
		m.concurrency = n
	}
	return m
}

// Materialize writes nodes into target, which must already exist.
//
// Names are claimed one node at a time in input order, so colliding siblings
// get " (1)", " (2)", ... suffixes deterministically. Once a node's path is
// claimed its content is written, or its children materialized, concurrently
// with the remaining siblings. File content is decoded before its name is
// claimed, so malformed content never leaves an empty file behind. Materialize returns only after every write has
// finished. A failed node fails its containing subtree; nodes already written
// are left in place.
func (m *Materializer) Materialize(ctx context.Context, target string, nodes []models.Node) error {
	p := pool.New().
		WithMaxGoroutines(m.concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	var claimErr error
	for i := range nodes {
		node := &nodes[i]
		if err := ctx.Err(); err != nil {
			claimErr = err
			break
		}

		var data []byte
		if !node.IsDir() {
			decoded, err := transform.DecodeContent(node.Content)
			if err != nil {
				claimErr = fmt.Errorf("%w: failed to decode %s: %w", ErrWriteFailure, filepath.Join(target, node.Name), err)
				break
			}
			data = decoded
		}

		path, err := m.claim(target, node)
		if err != nil {
			claimErr = err
			break
		}

		if node.IsDir() {
			p.Go(func(ctx context.Context) error {
				return m.Materialize(ctx, path, node.Children)
			})
		} else {
			p.Go(func(ctx context.Context) error {
				return m.writeFile(path, data)
			})
		}
	}

	waitErr := p.Wait()
	if claimErr != nil {
		return claimErr
	}
	return waitErr
}

// claim reserves the first free path for node inside dir and creates it
// empty. The per-directory lock serializes claims from concurrent
// materializations into the same directory.
func (m *Materializer) claim(dir string, node *models.Node) (string, error) {
	if err := ValidateName(node.Name); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	lock := m.dirLock(dir)
	lock.Lock()
	defer lock.Unlock()

	stem, ext := node.Name, ""
	if !node.IsDir() {
		stem, ext = SplitName(node.Name)
	}

	for n := 0; ; n++ {
		path := filepath.Join(dir, CandidateName(stem, ext, n))

		exists, err := afero.Exists(m.fs, path)
		if err != nil {
			return "", fmt.Errorf("%w: failed to stat %s: %w", ErrWriteFailure, path, err)
		}
		if !exists {
			err = m.create(path, node.IsDir())
			if err == nil {
				if n > 0 {
					logging.Debug("renamed to avoid collision",
						logging.String("name", node.Name),
						logging.String("path", path))
				}
				return path, nil
			}
			if !errors.Is(err, fs.ErrExist) {
				return "", fmt.Errorf("%w: failed to create %s: %w", ErrWriteFailure, path, err)
			}
		}
	}
}

// create makes an empty file or directory at path, failing if anything
// already exists there.
func (m *Materializer) create(path string, dir bool) error {
	if dir {
		return m.fs.Mkdir(path, dirPerm)
	}
	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	return f.Close()
}

func (m *Materializer) writeFile(path string, data []byte) error {
	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", ErrWriteFailure, path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("%w: failed to write %s: %w", ErrWriteFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrWriteFailure, path, err)
	}

	logging.Debug("materialized file", logging.String("path", path), logging.Int("bytes", len(data)))
	return nil
}

func (m *Materializer) dirLock(dir string) *sync.Mutex {
	key := filepath.Clean(dir)

	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

// SplitName splits a file name at its last dot. A name without a dot has no
// extension.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// CandidateName returns the n-th collision candidate for stem and ext:
// "stem.ext" for n == 0, "stem (n).ext" otherwise.
func CandidateName(stem, ext string, n int) string {
	if n == 0 {
		return stem + ext
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
