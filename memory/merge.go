// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/diffeo/go-geoserver/doctree"
)

// Merge applies src to dst as a partial update.  Attributes of src
// are set on dst.  Each child of src replaces the same-named child of
// dst, except that a branch with distinct child names merges into an
// existing branch recursively.  A branch whose children repeat a name
// is a list, and replaces the old list whole; an empty branch clears
// it.
func Merge(dst, src *doctree.Node) error {
	for _, a := range src.Attrs() {
		dst.SetAttr(a.Name, a.Value)
	}
	for _, child := range src.Children() {
		existing := dst.Child(child.Name)
		if existing == nil || !existing.IsBranch() || !child.IsBranch() ||
			isList(child) || isList(existing) {
			if err := dst.ReplaceChild(child.Clone()); err != nil {
				return err
			}
			continue
		}
		if err := Merge(existing, child); err != nil {
			return err
		}
	}
	return nil
}

// isList returns true for an empty branch or one with repeated child
// names.
func isList(n *doctree.Node) bool {
	if n.Len() == 0 {
		return true
	}
	seen := make(map[string]bool, n.Len())
	for _, c := range n.Children() {
		if seen[c.Name] {
			return true
		}
		seen[c.Name] = true
	}
	return false
}
