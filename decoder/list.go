// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package decoder

import (
	"fmt"

	"github.com/diffeo/go-geoserver/doctree"
)

// ErrMixedList is returned when a list's children do not all share
// one element name.
type ErrMixedList struct {
	// List is the name of the list node.
	List string

	// Want is the element name of the first item.
	Want string

	// Got is the first element name that differed.
	Got string
}

func (e *ErrMixedList) Error() string {
	return fmt.Sprintf("list %q mixes <%s> and <%s> items", e.List, e.Want, e.Got)
}

// ListView is a read-only sequence of same-named children.  It is
// backed by the already-parsed tree, so it may be iterated any
// number of times.
type ListView struct {
	tag   string
	items []*doctree.Node
}

func newListView(n *doctree.Node) (*ListView, error) {
	list := &ListView{}
	if n == nil {
		return list, nil
	}
	for _, c := range n.Children() {
		if list.tag == "" {
			list.tag = c.Name
		} else if c.Name != list.tag {
			return nil, &ErrMixedList{List: n.Name, Want: list.tag, Got: c.Name}
		}
	}
	list.items = n.Children()
	return list, nil
}

// Tag returns the shared element name of the items, or "" for an
// empty list.
func (l *ListView) Tag() string {
	return l.tag
}

// Len returns the number of items.
func (l *ListView) Len() int {
	return len(l.items)
}

// IsEmpty returns true if there are no items.
func (l *ListView) IsEmpty() bool {
	return len(l.items) == 0
}

// At returns a view over the i'th item.  It panics if i is out of
// range, like a slice index.
func (l *ListView) At(i int) *View {
	return &View{node: l.items[i]}
}

// Iter returns a new iterator positioned before the first item.
// Iterators are independent of each other.
func (l *ListView) Iter() *Iterator {
	return &Iterator{list: l, pos: -1}
}

// Names returns the "name" field of every item, in order.  Items
// without a name contribute "".
func (l *ListView) Names() []string {
	names := make([]string, len(l.items))
	for i := range l.items {
		names[i] = l.At(i).Text("name")
	}
	return names
}

// Names is the package-level form of ListView.Names; a nil list has
// no names.
func Names(l *ListView) []string {
	if l == nil {
		return nil
	}
	return l.Names()
}

// Iterator walks a ListView lazily.  Use it as
//
//     it := list.Iter()
//     for it.Next() {
//         item := it.View()
//     }
type Iterator struct {
	list *ListView
	pos  int
}

// Next advances to the next item, returning false when there are no
// more.
func (it *Iterator) Next() bool {
	if it.pos < len(it.list.items) {
		it.pos++
	}
	return it.pos < len(it.list.items)
}

// View returns the current item.  It is only valid after Next has
// returned true.
func (it *Iterator) View() *View {
	return it.list.At(it.pos)
}

// Index returns the position of the current item.
func (it *Iterator) Index() int {
	return it.pos
}
