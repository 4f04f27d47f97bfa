package models

import "encoding/json"

// Document is the persisted snapshot of a directory tree.
// Root holds the immediate contents of the snapshotted directory.
type Document struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	Root        []Node `json:"root"`
}

// MarshalJSON keeps root a list even when the tree is empty.
func (d Document) MarshalJSON() ([]byte, error) {
	type document Document
	out := document(d)
	if out.Root == nil {
		out.Root = []Node{}
	}
	return json.Marshal(out)
}

// Label returns the display label used by selection prompts.
func (d *Document) Label() string {
	return d.Title
}

// Stats counts the files and directories in the document tree.
func (d *Document) Stats() (files, dirs int) {
	Walk(d.Root, func(_ string, n *Node) {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}
	})
	return files, dirs
}
