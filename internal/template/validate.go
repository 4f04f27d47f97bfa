package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pders01/templatify/internal/models"
	"github.com/pders01/templatify/internal/transform"
)

// Candidate is a parsed but untrusted template document.
//
// Pointer fields distinguish absent keys from zero values. The templateName,
// source, filename and directoryName keys written by older versions of the
// tool are accepted alongside the current ones.
type Candidate struct {
	Title        *string          `json:"title"`
	TemplateName *string          `json:"templateName"`
	Description  *string          `json:"description"`
	Author       *string          `json:"author"`
	Root         *[]CandidateNode `json:"root"`
	Source       *[]CandidateNode `json:"source"`
}

// CandidateNode is an untrusted tree node.
type CandidateNode struct {
	Kind          *string          `json:"kind"`
	Name          *string          `json:"name"`
	Filename      *string          `json:"filename"`
	DirectoryName *string          `json:"directoryName"`
	Content       *string          `json:"content"`
	Children      *[]CandidateNode `json:"children"`
	Source        *[]CandidateNode `json:"source"`
}

// ValidationError locates the first invalid part of a candidate.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ParseCandidate decodes document bytes without validating them.
func ParseCandidate(data []byte) (*Candidate, error) {
	var c Candidate
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &c, nil
}

// IsValidDocument reports whether the candidate may be handed to the materializer.
func IsValidDocument(c *Candidate) bool {
	return Validate(c) == nil
}

// Validate checks the candidate against the document schema and returns the
// first violation found.
func Validate(c *Candidate) error {
	if c == nil {
		return &ValidationError{Reason: "document is empty"}
	}
	if c.title() == nil {
		return &ValidationError{Path: "title", Reason: "missing title"}
	}
	root := c.root()
	if root == nil {
		return &ValidationError{Path: "root", Reason: "missing root list"}
	}
	return validateNodes("root", *root)
}

func validateNodes(prefix string, nodes []CandidateNode) error {
	for i := range nodes {
		if err := validateNode(fmt.Sprintf("%s[%d]", prefix, i), &nodes[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(at string, n *CandidateNode) error {
	kind, err := n.kind()
	if err != nil {
		return &ValidationError{Path: at, Reason: err.Error()}
	}

	name := n.name(kind)
	if name == nil {
		return &ValidationError{Path: at, Reason: fmt.Sprintf("%s node has no name", kind)}
	}
	if err := ValidateName(*name); err != nil {
		return &ValidationError{Path: at, Reason: err.Error()}
	}

	switch kind {
	case models.KindDirectory:
		if n.Content != nil {
			return &ValidationError{Path: at, Reason: "directory node has content"}
		}
		children := n.children()
		if children == nil {
			return &ValidationError{Path: at, Reason: "directory node has no children list"}
		}
		return validateNodes(at+".children", *children)
	default:
		if n.Content == nil {
			return &ValidationError{Path: at, Reason: "file node has no content"}
		}
		if n.children() != nil {
			return &ValidationError{Path: at, Reason: "file node has children"}
		}
		return nil
	}
}

// ValidateName checks that name is usable as a single path element.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidName, name)
	}
	return nil
}

// Document converts a validated candidate into a document.
// Call Validate first; invalid candidates produce an error.
func (c *Candidate) Document() (*models.Document, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	doc := &models.Document{
		Title: *c.title(),
		Root:  convertNodes(*c.root()),
	}
	if c.Description != nil {
		doc.Description = *c.Description
	}
	if c.Author != nil {
		doc.Author = *c.Author
	}
	return doc, nil
}

// convertNodes builds model nodes. Content of nodes without a kind was
// escaped by older versions and is re-encoded into the current form.
func convertNodes(nodes []CandidateNode) []models.Node {
	out := make([]models.Node, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		kind, _ := n.kind()
		name := *n.name(kind)
		if kind == models.KindDirectory {
			out = append(out, models.NewDirectory(name, convertNodes(*n.children())))
		} else {
			content := *n.Content
			if n.Kind == nil {
				content = transform.EncodeContent([]byte(transform.UnescapeLegacy(content)))
			}
			out = append(out, models.NewFile(name, content))
		}
	}
	return out
}

func (c *Candidate) title() *string {
	if c.Title != nil {
		return c.Title
	}
	return c.TemplateName
}

func (c *Candidate) root() *[]CandidateNode {
	if c.Root != nil {
		return c.Root
	}
	return c.Source
}

// kind resolves the node's discriminator. Nodes without an explicit kind are
// classified the way older documents were: a directory name marks a directory,
// otherwise a file name marks a file.
func (n *CandidateNode) kind() (models.NodeKind, error) {
	if n.Kind != nil {
		switch k := models.NodeKind(*n.Kind); k {
		case models.KindFile, models.KindDirectory:
			return k, nil
		default:
			return "", fmt.Errorf("unknown node kind %q", *n.Kind)
		}
	}

	switch {
	case n.DirectoryName != nil:
		return models.KindDirectory, nil
	case n.Filename != nil && *n.Filename != "":
		return models.KindFile, nil
	case n.Name != nil && n.Content != nil:
		return models.KindFile, nil
	case n.Name != nil && n.children() != nil:
		return models.KindDirectory, nil
	}
	return "", fmt.Errorf("node is neither a file nor a directory")
}

func (n *CandidateNode) name(kind models.NodeKind) *string {
	if n.Name != nil {
		return n.Name
	}
	if kind == models.KindDirectory {
		return n.DirectoryName
	}
	return n.Filename
}

func (n *CandidateNode) children() *[]CandidateNode {
	if n.Children != nil {
		return n.Children
	}
	return n.Source
}
