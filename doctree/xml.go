// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package doctree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when parsing input that contains no document
// element.
var ErrNoRoot = errors.New("document has no root element")

// ErrTrailingData is returned when parsing input that has a second
// root element, or other content after the first.
var ErrTrailingData = errors.New("document has content outside its root")

// MarshalXML writes the tree rooted at root as an XML document with
// no declaration.  Text is escaped, child order is kept, unset nodes
// are dropped, and empty branches become empty elements.
func MarshalXML(root *Node) ([]byte, error) {
	if root == nil || !root.IsSet() {
		return nil, ErrNoRoot
	}
	doc := etree.NewDocument()
	buildElement(&doc.Element, root)
	return doc.WriteToBytes()
}

func buildElement(parent *etree.Element, n *Node) {
	e := parent.CreateElement(n.Name)
	for _, a := range n.attrs {
		e.CreateAttr(a.Name, a.Value)
	}
	if n.value != nil {
		e.SetText(*n.value)
		return
	}
	for _, c := range n.children {
		if c.IsSet() {
			buildElement(e, c)
		}
	}
}

// ParseXML reads an XML document into a tree.  Whitespace between
// child elements is ignored; an element with both child elements and
// other text is rejected with ErrMixedContent, and anything but
// whitespace, comments or processing instructions beside the root
// with ErrTrailingData.  Comments and processing instructions are
// discarded.
func ParseXML(data []byte) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, ErrTrailingData
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, ErrTrailingData
			}
		}
	}
	if root == nil {
		return nil, ErrNoRoot
	}
	return readElement(root)
}

func readElement(e *etree.Element) (*Node, error) {
	n := NewNode(e.FullTag())
	for _, a := range e.Attr {
		n.SetAttr(a.FullKey(), a.Value)
	}

	var text strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			text.WriteString(t.Data)
		case *etree.Element:
			child, err := readElement(t)
			if err != nil {
				return nil, err
			}
			if err := n.AddChild(child); err != nil {
				return nil, err
			}
		}
	}

	if n.branch {
		if strings.TrimSpace(text.String()) != "" {
			return nil, fmt.Errorf("element %q: %w", n.Name, ErrMixedContent)
		}
		return n, nil
	}
	// <name/> and <name></name> are both an empty string value
	if err := n.SetText(text.String()); err != nil {
		return nil, err
	}
	return n, nil
}
