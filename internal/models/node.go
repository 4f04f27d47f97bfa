package models

import (
	"encoding/json"
	"path"
)

// NodeKind discriminates file nodes from directory nodes
type NodeKind string

const (
	KindFile      NodeKind = "file"
	KindDirectory NodeKind = "directory"
)

// Node is a file or directory entry within a document tree.
// Content is only meaningful for files and always holds the escaped
// representation; Children is only meaningful for directories.
type Node struct {
	Kind     NodeKind
	Name     string
	Content  string
	Children []Node
}

// NewFile creates a file node with already-escaped content
func NewFile(name, content string) Node {
	return Node{Kind: KindFile, Name: name, Content: content}
}

// NewDirectory creates a directory node
func NewDirectory(name string, children []Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Kind: KindDirectory, Name: name, Children: children}
}

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool {
	return n.Kind == KindDirectory
}

type fileJSON struct {
	Kind    NodeKind `json:"kind"`
	Name    string   `json:"name"`
	Content string   `json:"content"`
}

type directoryJSON struct {
	Kind     NodeKind `json:"kind"`
	Name     string   `json:"name"`
	Children []Node   `json:"children"`
}

// MarshalJSON emits only the fields that belong to the node's kind.
// Files always carry content and directories always carry a children list,
// so an empty file or directory still validates when read back.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindDirectory {
		children := n.Children
		if children == nil {
			children = []Node{}
		}
		return json.Marshal(directoryJSON{Kind: KindDirectory, Name: n.Name, Children: children})
	}
	return json.Marshal(fileJSON{Kind: KindFile, Name: n.Name, Content: n.Content})
}

// Walk visits every node depth-first in document order.
// rel is the slash-separated path of the node relative to the tree root.
func Walk(nodes []Node, fn func(rel string, n *Node)) {
	walk("", nodes, fn)
}

func walk(prefix string, nodes []Node, fn func(string, *Node)) {
	for i := range nodes {
		n := &nodes[i]
		rel := path.Join(prefix, n.Name)
		fn(rel, n)
		if n.IsDir() {
			walk(rel, n.Children, fn)
		}
	}
}
