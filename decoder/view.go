// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package decoder provides read-only views over parsed response
// documents.
//
// A View exposes a node's named scalar children, nested sub-views,
// and homogeneous lists.  Absence is never an error: a missing
// scalar reports false, a missing nested view is nil, and a missing
// list is empty.  What is an error is a list whose items do not all
// share one element name, since that means the caller is reading a
// document of a different shape than it expects.
//
// Resource-specific read models (Workspace, Layer, Style, ...) are
// plain structs filled from a View by Project.
package decoder

import (
	"github.com/diffeo/go-geoserver/doctree"
)

// View is a read-only wrapper around one node of a parsed document.
type View struct {
	node *doctree.Node
}

// Build parses a response body, XML or JSON, into a View.  It returns
// nil if data is empty or does not parse; "no usable body" is a normal
// outcome for many calls and callers are expected to check.
func Build(data []byte) *View {
	if len(data) == 0 {
		return nil
	}
	node, err := doctree.Parse(data)
	if err != nil {
		return nil
	}
	return &View{node: node}
}

// Wrap creates a View over an existing node, or returns nil if node is
// nil.
func Wrap(node *doctree.Node) *View {
	if node == nil {
		return nil
	}
	return &View{node: node}
}

// Node returns the underlying node.  Callers must not modify it.
func (v *View) Node() *doctree.Node {
	return v.node
}

// Name returns the element name of the view's node.
func (v *View) Name() string {
	return v.node.Name
}

// Kind returns the resource kind of this view, from its "class"
// attribute if present, else its element name.
func (v *View) Kind() Kind {
	if class, ok := v.node.Attr("class"); ok {
		if k := ParseKind(class); k != UnknownKind {
			return k
		}
	}
	return ParseKind(v.node.Name)
}

// Scalar returns the text of the first child leaf named name.  The
// boolean is false if there is no such child or it is not a leaf.
// name may be a "/"-separated path.
func (v *View) Scalar(name string) (string, bool) {
	n := v.node.Find(name)
	if n == nil {
		return "", false
	}
	return n.Text()
}

// Text returns the text of the named child, or "" if it is absent.
func (v *View) Text(name string) string {
	s, _ := v.Scalar(name)
	return s
}

// Value returns the view's own text if it is a leaf.
func (v *View) Value() (string, bool) {
	return v.node.Text()
}

// Attr returns an attribute of the view's own node.
func (v *View) Attr(name string) (string, bool) {
	return v.node.Attr(name)
}

// Nested returns a view over the first child named name, or nil.
// name may be a "/"-separated path.
func (v *View) Nested(name string) *View {
	return Wrap(v.node.Find(name))
}

// Has returns true if a child named name exists.
func (v *View) Has(name string) bool {
	return v.node.Find(name) != nil
}

// List returns a view over the children of the node named name.
// Every child must have the same element name or an *ErrMixedList is
// returned.  A missing node, a leaf, or an empty branch all produce an
// empty list.
func (v *View) List(name string) (*ListView, error) {
	return newListView(v.node.Find(name))
}

// MustList is like List but panics on a heterogeneous list.
func (v *View) MustList(name string) *ListView {
	list, err := v.List(name)
	if err != nil {
		panic(err)
	}
	return list
}

// Items returns a list view over this view's own children.  This is
// the usual entry point for collection documents such as
// <workspaces><workspace>...</workspace>...</workspaces>.
func (v *View) Items() (*ListView, error) {
	return newListView(v.node)
}

// Entries reads a metadata map, a branch of <entry key="k">v</entry>
// children, into a Go map.  Entries without a key are skipped; on a
// repeated key the first wins.
func (v *View) Entries(name string) map[string]string {
	result := make(map[string]string)
	n := v.node.Find(name)
	if n == nil {
		return result
	}
	for _, entry := range n.ChildrenNamed("entry") {
		key, ok := entry.Attr("key")
		if !ok {
			continue
		}
		if _, seen := result[key]; !seen {
			result[key] = entry.Content()
		}
	}
	return result
}

// Strings returns the text of every child of the node named name, in
// order, for lists of bare values like <keywords><string>a</string>
// ...</keywords>.
func (v *View) Strings(name string) []string {
	n := v.node.Find(name)
	if n == nil {
		return nil
	}
	var result []string
	for _, c := range n.Children() {
		result = append(result, c.Content())
	}
	return result
}
