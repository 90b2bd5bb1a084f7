// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package encoder builds request payloads one field at a time.  An
// Encoder holds only the fields the caller chose to send; empty
// values are skipped rather than written as blanks, so a partial
// update never overwrites a server default with an empty string.
//
// A typical use is
//
//     enc := encoder.New("featureType")
//     enc.Set("title", title)
//     bbox, _ := enc.SetChild("nativeBoundingBox")
//     bbox.Set("crs", "EPSG:4326")
//     if !enc.IsEmpty() {
//         body, err := enc.XML()
//         ...
//     }
//
// Encoders are meant to be built, serialized and dropped within one
// call; they are not safe for concurrent use.
package encoder

import (
	"errors"
	"strconv"

	"github.com/diffeo/go-geoserver/doctree"
)

// ErrEmptyPath is returned by operations that need at least one path
// element.
var ErrEmptyPath = errors.New("empty field path")

// Encoder is a write handle over one branch of a document tree.
type Encoder struct {
	node *doctree.Node
}

// New creates an encoder with an empty root element.
func New(root string) *Encoder {
	return &Encoder{node: doctree.NewBranch(root)}
}

// Wrap creates an encoder over an existing branch.  This can be used
// to edit a document previously fetched and parsed.
func Wrap(node *doctree.Node) (*Encoder, error) {
	if err := node.MakeBranch(); err != nil {
		return nil, err
	}
	return &Encoder{node: node}, nil
}

// Root returns the node this encoder writes to.
func (e *Encoder) Root() *doctree.Node {
	return e.node
}

// IsEmpty returns true if nothing has been written.  Sending an empty
// payload could wipe fields on the server, so callers should check
// this first.
func (e *Encoder) IsEmpty() bool {
	return e.node.Len() == 0
}

// branch finds or creates the branch named by parts below e, creating
// intermediate branches as needed.
func (e *Encoder) branch(parts []string) (*doctree.Node, error) {
	cur := e.node
	for _, part := range parts {
		next := cur.Child(part)
		if next == nil {
			next = doctree.NewBranch(part)
			if err := cur.AddChild(next); err != nil {
				return nil, err
			}
		} else if err := next.MakeBranch(); err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Set creates or replaces the leaf at path, a "/"-separated list of
// element names.  An empty value is ignored.  Calling Set again with
// a new value replaces the leaf in place.
func (e *Encoder) Set(path, value string) error {
	if value == "" {
		return nil
	}
	parts := doctree.SplitPath(path)
	if len(parts) == 0 {
		return ErrEmptyPath
	}
	parent, err := e.branch(parts[:len(parts)-1])
	if err != nil {
		return err
	}
	name := parts[len(parts)-1]
	if leaf := parent.Child(name); leaf != nil {
		return leaf.SetText(value)
	}
	return parent.AddChild(doctree.NewLeaf(name, value))
}

// SetOptional is Set for a value that may be absent.  A nil value is
// ignored; a pointer to "" is also ignored.
func (e *Encoder) SetOptional(path string, value *string) error {
	if value == nil {
		return nil
	}
	return e.Set(path, *value)
}

// SetBool writes "true" or "false" at path.
func (e *Encoder) SetBool(path string, value bool) error {
	return e.Set(path, strconv.FormatBool(value))
}

// SetInt writes a decimal integer at path.
func (e *Encoder) SetInt(path string, value int) error {
	return e.Set(path, strconv.Itoa(value))
}

// SetFloat writes a floating-point number at path in its shortest
// exact form.
func (e *Encoder) SetFloat(path string, value float64) error {
	return e.Set(path, strconv.FormatFloat(value, 'f', -1, 64))
}

// Get returns the text of the leaf at path.
func (e *Encoder) Get(path string) (string, bool) {
	n := e.node.Find(path)
	if n == nil {
		return "", false
	}
	return n.Text()
}

// Remove deletes the first node at path.  Returns whether anything
// was removed.
func (e *Encoder) Remove(path string) bool {
	return e.RemoveIf(path, func(*doctree.Node) bool { return true })
}

// RemoveByContent deletes the first node named by the last element of
// path, under the parent named by the rest of path, whose text
// content equals match.  For instance
//
//     enc.RemoveByContent("keywords/string", "roads")
//
// drops the <string>roads</string> keyword and leaves the others.
func (e *Encoder) RemoveByContent(path, match string) bool {
	return e.RemoveIf(path, func(n *doctree.Node) bool {
		return n.Content() == match
	})
}

// RemoveIf deletes the first node named by the last element of path,
// under the parent named by the rest of path, for which match returns
// true.
func (e *Encoder) RemoveIf(path string, match func(*doctree.Node) bool) bool {
	parts := doctree.SplitPath(path)
	if len(parts) == 0 {
		return false
	}
	parent := e.node
	for _, part := range parts[:len(parts)-1] {
		parent = parent.Child(part)
		if parent == nil {
			return false
		}
	}
	name := parts[len(parts)-1]
	return parent.RemoveChild(func(n *doctree.Node) bool {
		return n.Name == name && match(n)
	})
}

// SetChild returns an encoder over the branch at path, creating it
// if needed.  The new encoder writes into the same tree.
func (e *Encoder) SetChild(path string) (*Encoder, error) {
	parts := doctree.SplitPath(path)
	if len(parts) == 0 {
		return nil, ErrEmptyPath
	}
	n, err := e.branch(parts)
	if err != nil {
		return nil, err
	}
	return &Encoder{node: n}, nil
}

// AddChild always appends a new, empty branch named name and returns
// an encoder over it.  Use this for repeated elements.
func (e *Encoder) AddChild(name string) (*Encoder, error) {
	n := doctree.NewBranch(name)
	if err := e.node.AddChild(n); err != nil {
		return nil, err
	}
	return &Encoder{node: n}, nil
}

// AddLeaf always appends a new leaf, even if a sibling with the same
// name exists.  An empty value is ignored.
func (e *Encoder) AddLeaf(name, value string) error {
	if value == "" {
		return nil
	}
	return e.node.AddChild(doctree.NewLeaf(name, value))
}

// SetEntry writes a metadata map entry <entry key="key">value</entry>
// under the branch at mapPath, replacing an existing entry with the
// same key.  An empty value is ignored.
func (e *Encoder) SetEntry(mapPath, key, value string) error {
	if value == "" {
		return nil
	}
	m, err := e.SetChild(mapPath)
	if err != nil {
		return err
	}
	for _, entry := range m.node.ChildrenNamed("entry") {
		if k, _ := entry.Attr("key"); k == key {
			return entry.SetText(value)
		}
	}
	entry := doctree.NewLeaf("entry", value)
	entry.SetAttr("key", key)
	return m.node.AddChild(entry)
}

// RemoveEntry deletes the metadata map entry with the given key.
func (e *Encoder) RemoveEntry(mapPath, key string) bool {
	return e.RemoveIf(mapPath+"/entry", func(n *doctree.Node) bool {
		k, _ := n.Attr("key")
		return k == key
	})
}

// SetAttr sets an attribute on the encoder's own element.
func (e *Encoder) SetAttr(name, value string) {
	e.node.SetAttr(name, value)
}

// XML serializes the whole tree below this encoder as XML.
func (e *Encoder) XML() ([]byte, error) {
	return doctree.MarshalXML(e.node)
}

// JSON serializes the whole tree below this encoder as JSON.
func (e *Encoder) JSON() ([]byte, error) {
	return doctree.MarshalJSON(e.node)
}
