// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package doctree provides the ordered, named node tree that carries
// both outgoing payloads and parsed responses.  A tree can be written
// and read as XML or as the map server's JSON convention.
//
// A Node is exactly one of three things:
//
//     unset   no value and no children; never serialized
//     leaf    a text value and no children
//     branch  zero or more children and no text value
//
// Siblings may share a name, and their order is significant; a list
// of <entry> elements is simply several children named "entry".
// Attributes ride alongside either kind of node and do not affect
// which kind it is.
package doctree

import (
	"errors"
	"strings"
)

// ErrMixedContent is returned when an operation would give a node
// both a text value and children.
var ErrMixedContent = errors.New("node cannot hold both text and children")

// Attr is a single name/value attribute on a node.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a document tree.
type Node struct {
	// Name is the element name, possibly with a namespace prefix
	// ("sld:Rule").
	Name string

	attrs    []Attr
	value    *string
	branch   bool
	children []*Node
}

// NewNode creates an unset node.  It becomes a leaf or a branch the
// first time a value or child is given to it.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// NewLeaf creates a leaf node holding text.
func NewLeaf(name, text string) *Node {
	return &Node{Name: name, value: &text}
}

// NewBranch creates a branch node with no children.  An empty branch
// serializes as an empty element.
func NewBranch(name string) *Node {
	return &Node{Name: name, branch: true}
}

// IsLeaf returns true if n holds a text value.
func (n *Node) IsLeaf() bool {
	return n.value != nil
}

// IsBranch returns true if n may hold children.
func (n *Node) IsBranch() bool {
	return n.branch
}

// IsSet returns true if n is either a leaf or a branch.
func (n *Node) IsSet() bool {
	return n.value != nil || n.branch
}

// Text returns the text value of a leaf.  The boolean is false for
// branches and unset nodes.
func (n *Node) Text() (string, bool) {
	if n.value == nil {
		return "", false
	}
	return *n.value, true
}

// SetText makes n a leaf with the given text, replacing any previous
// value.  Returns ErrMixedContent if n already has children.
func (n *Node) SetText(text string) error {
	if n.branch && len(n.children) > 0 {
		return ErrMixedContent
	}
	n.branch = false
	n.value = &text
	return nil
}

// MakeBranch turns an unset node, or a branch, into a branch.
// Returns ErrMixedContent if n is a leaf.
func (n *Node) MakeBranch() error {
	if n.value != nil {
		return ErrMixedContent
	}
	n.branch = true
	return nil
}

// Content returns the text of a leaf, or the concatenated text of all
// leaves below a branch in document order.
func (n *Node) Content() string {
	if n.value != nil {
		return *n.value
	}
	var b strings.Builder
	n.Walk(func(d *Node) {
		if d.value != nil {
			b.WriteString(*d.value)
		}
	})
	return b.String()
}

// Walk calls f on n and every node below it, parents before children.
func (n *Node) Walk(f func(*Node)) {
	f(n)
	for _, c := range n.children {
		c.Walk(f)
	}
}

// AddChild appends child to n, making n a branch if it was unset.
// Names are not deduplicated.
func (n *Node) AddChild(child *Node) error {
	if err := n.MakeBranch(); err != nil {
		return err
	}
	n.children = append(n.children, child)
	return nil
}

// Children returns the children of n in order.  The slice belongs to
// n and must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Len returns the number of children of n.
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the first child of n with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns every child of n with the given name, in
// order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var result []*Node
	for _, c := range n.children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// Find follows a "/"-separated path of child names from n, taking the
// first match at each step.  An empty path returns n.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range SplitPath(path) {
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// RemoveChild removes the first child of n for which match returns
// true.  Returns whether anything was removed.
func (n *Node) RemoveChild(match func(*Node) bool) bool {
	for i, c := range n.children {
		if match(c) {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// Attrs returns the attributes of n in order.
func (n *Node) Attrs() []Attr {
	return n.attrs
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr creates or replaces an attribute on n.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// SplitPath breaks a "/"-separated path into its non-empty parts.
func SplitPath(path string) []string {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	c := &Node{Name: n.Name, branch: n.branch}
	if n.value != nil {
		text := *n.value
		c.value = &text
	}
	if len(n.attrs) > 0 {
		c.attrs = append([]Attr(nil), n.attrs...)
	}
	for _, child := range n.children {
		c.children = append(c.children, child.Clone())
	}
	return c
}

// ReplaceChild swaps the first child named child.Name for child, or
// appends child if there is none.
func (n *Node) ReplaceChild(child *Node) error {
	for i, c := range n.children {
		if c.Name == child.Name {
			n.children[i] = child
			return nil
		}
	}
	return n.AddChild(child)
}
