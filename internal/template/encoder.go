package template

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/pders01/templatify/internal/logging"
	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/transform"
)

// DefaultConcurrency bounds the sibling tasks run per directory level.
const DefaultConcurrency = 8

// Encoder snapshots a live directory into document nodes.
type Encoder struct {
	fs          afero.Fs
	exclude     []glob.Glob
	concurrency int
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder) error

// WithExclude skips entries whose base name matches any of the glob patterns.
func WithExclude(patterns ...string) EncoderOption {
	return func(e *Encoder) error {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			g, err := glob.Compile(p)
			if err != nil {
				return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
			}
			e.exclude = append(e.exclude, g)
		}
		return nil
	}
}

// WithEncoderConcurrency bounds the sibling tasks run per directory level.
func WithEncoderConcurrency(n int) EncoderOption {
	return func(e *Encoder) error {
		if n > 0 {
			e.concurrency = n
		}
		return nil
	}
}

// NewEncoder creates an encoder reading from fsys.
func NewEncoder(fsys afero.Fs, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{fs: fsys, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Metadata is the user-supplied part of a new document.
type Metadata struct {
	Title       string
	Description string
	Author      string
}

// EncodeDocument snapshots root into a new document. Title, description and
// author are trimmed; an empty title is rejected before anything is read.
func (e *Encoder) EncodeDocument(ctx context.Context, root string, meta Metadata) (*models.Document, error) {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	nodes, err := e.EncodeTree(ctx, root)
	if err != nil {
		return nil, err
	}

	return &models.Document{
		Title:       title,
		Description: strings.TrimSpace(meta.Description),
		Author:      strings.TrimSpace(meta.Author),
		Root:        nodes,
	}, nil
}

// EncodeTree encodes the entries of dir, recursively, in directory scan order.
//
// Entries that are neither regular files nor directories are skipped. If any
// file cannot be read the whole call fails with ErrReadFailure and no nodes
// are returned.
func (e *Encoder) EncodeTree(ctx context.Context, dir string) ([]models.Node, error) {
	entries, err := afero.ReadDir(e.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %w", ErrReadFailure, dir, err)
	}

	slots := make([]*models.Node, len(entries))
	p := pool.New().
		WithMaxGoroutines(e.concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, entry := range entries {
		name := entry.Name()
		if e.excluded(name) {
			logging.Debug("excluded entry", logging.String("path", filepath.Join(dir, name)))
			continue
		}

		path := filepath.Join(dir, name)
		switch {
		case entry.Mode().IsRegular():
			p.Go(func(ctx context.Context) error {
				node, err := e.encodeFile(ctx, path, name)
				if err != nil {
					return err
				}
				slots[i] = &node
				return nil
			})
		case entry.IsDir():
			p.Go(func(ctx context.Context) error {
				children, err := e.EncodeTree(ctx, path)
				if err != nil {
					return err
				}
				node := models.NewDirectory(name, children)
				slots[i] = &node
				return nil
			})
		default:
			logging.Debug("skipped special file", logging.String("path", path))
		}
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	nodes := make([]models.Node, 0, len(slots))
	for _, n := range slots {
		if n != nil {
			nodes = append(nodes, *n)
		}
	}
	return nodes, nil
}

func (e *Encoder) encodeFile(ctx context.Context, path, name string) (models.Node, error) {
	if err := ctx.Err(); err != nil {
		return models.Node{}, err
	}

	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return models.Node{}, fmt.Errorf("%w: failed to read %s: %w", ErrReadFailure, path, err)
	}

	logging.Debug("encoded file", logging.String("path", path), logging.Int("bytes", len(data)))
	return models.NewFile(name, transform.EncodeContent(data)), nil
}

func (e *Encoder) excluded(name string) bool {
	for _, g := range e.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}
