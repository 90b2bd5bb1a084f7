// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory map server
// configuration catalog.  There is no persistence and no sharing
// between processes.  The entire catalog is behind a single global
// lock to protect against concurrent updates.
//
// This is mostly intended as a reference backend for the restserver
// package, so that the restclient package can be tested end to end
// without a real map server.  It is tuned for correctness, not
// performance.
//
// Objects are stored as document trees, exactly as they were sent.
// The catalog keeps the cross-object bookkeeping a real server does:
// creating a workspace creates its namespace and vice versa,
// publishing a resource creates a layer for it, and deleting
// anything with dependents requires a recursive delete.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/doctree"
	"github.com/satori/go.uuid"
)

// TimestampFormat is the layout of dateCreated and dateModified.
const TimestampFormat = "2006-01-02 15:04:05.000 MST"

// entry is one object in the catalog.
type entry struct {
	doc *doctree.Node

	// body and bodyType hold an attached file, such as a style's
	// SLD document.
	body     []byte
	bodyType string

	// children holds the member collections, by collection name.
	children map[string]map[string]*entry

	// layer is the name of the layer publishing this resource.
	layer string

	// resource is the path of the resource this layer publishes.
	resource Path
}

func newEntry(collectionName string, doc *doctree.Node) *entry {
	e := &entry{doc: doc, children: make(map[string]map[string]*entry)}
	for _, child := range schema[collectionName].Children {
		e.children[child] = make(map[string]*entry)
	}
	return e
}

func (e *entry) isEmpty() bool {
	for _, members := range e.children {
		if len(members) > 0 {
			return false
		}
	}
	return true
}

// Catalog is an in-memory map server configuration.
type Catalog struct {
	sem   sync.Mutex
	clock clock.Clock
	root  *entry
}

// New creates a new, empty catalog.
func New() *Catalog {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new, empty catalog with an alternate time
// source.  Tests use this with a mock clock to get predictable
// timestamps.
func NewWithClock(clk clock.Clock) *Catalog {
	root := &entry{children: make(map[string]map[string]*entry)}
	for _, name := range topLevel {
		root.children[name] = make(map[string]*entry)
	}
	return &Catalog{clock: clk, root: root}
}

// Clock returns the catalog's time source.
func (c *Catalog) Clock() clock.Clock {
	return c.clock
}

func (c *Catalog) now() string {
	return c.clock.Now().UTC().Format(TimestampFormat)
}

// do runs f with the global lock held.
func (c *Catalog) do(f func() error) error {
	c.sem.Lock()
	defer c.sem.Unlock()
	return f()
}

// lookup finds the object at an object path.
func (c *Catalog) lookup(p Path) (*entry, error) {
	if p.IsCollection() {
		return nil, ErrBadPath
	}
	cur := c.root
	for i := 0; i < len(p); i += 2 {
		members, ok := cur.children[p[i]]
		if !ok {
			return nil, ErrBadPath
		}
		next := members[p[i+1]]
		if next == nil {
			return nil, ErrNoSuchObject{Path: p}
		}
		cur = next
	}
	return cur, nil
}

// members finds the collection at a collection path.
func (c *Catalog) members(p Path) (map[string]*entry, error) {
	if !p.IsCollection() {
		return nil, ErrBadPath
	}
	parent, err := c.lookup(p.Parent())
	if err != nil {
		return nil, err
	}
	members, ok := parent.children[p.Collection()]
	if !ok {
		return nil, ErrBadPath
	}
	return members, nil
}

// Get returns a copy of the document at an object path.
func (c *Catalog) Get(p Path) (doc *doctree.Node, err error) {
	err = c.do(func() error {
		e, err := c.lookup(p)
		if err == nil {
			doc = e.doc.Clone()
		}
		return err
	})
	return
}

// Names returns the sorted names of the members of a collection.
func (c *Catalog) Names(p Path) (names []string, err error) {
	err = c.do(func() error {
		members, err := c.members(p)
		if err != nil {
			return err
		}
		names = sortedNames(members)
		return nil
	})
	return
}

func sortedNames(members map[string]*entry) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns a listing document for a collection, such as
//
//     <workspaces><workspace><name>topp</name></workspace></workspaces>
func (c *Catalog) List(p Path) (*doctree.Node, error) {
	names, err := c.Names(p)
	if err != nil {
		return nil, err
	}
	info := schema[p.Collection()]
	list := doctree.NewBranch(info.List)
	for _, name := range names {
		item := doctree.NewBranch(info.item())
		if err := item.AddChild(doctree.NewLeaf("name", name)); err != nil {
			return nil, err
		}
		if err := list.AddChild(item); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Create adds a new object to the collection at p and returns its
// name.  If doc carries no name, one is generated.
func (c *Catalog) Create(p Path, doc *doctree.Node) (name string, err error) {
	err = c.do(func() error {
		name, err = c.create(p, doc.Clone())
		return err
	})
	return
}

func (c *Catalog) create(p Path, doc *doctree.Node) (string, error) {
	members, err := c.members(p)
	if err != nil {
		return "", err
	}
	info := schema[p.Collection()]
	if decoder.ParseKind(doc.Name) != info.Kind {
		return "", ErrWrongElement{Want: info.Kind.String(), Got: doc.Name}
	}
	if err := doc.MakeBranch(); err != nil {
		return "", err
	}
	name := fieldText(doc, info.nameField())
	if name == "" {
		name = uuid.NewV4().String()
		if err := doc.ReplaceChild(doctree.NewLeaf(info.nameField(), name)); err != nil {
			return "", err
		}
	}
	if _, exists := members[name]; exists {
		return "", ErrAlreadyExists{Path: p.Child(name)}
	}
	if err := c.annotate(p, doc, false); err != nil {
		return "", err
	}
	if err := doc.ReplaceChild(doctree.NewLeaf("dateCreated", c.now())); err != nil {
		return "", err
	}
	e := newEntry(p.Collection(), doc)
	members[name] = e
	if err := c.created(p.Child(name), e); err != nil {
		delete(members, name)
		return "", err
	}
	return name, nil
}

// annotate adds the references a server fills in on its own.  If
// force is set, existing references are pointed at p's workspace and
// store too.
func (c *Catalog) annotate(p Path, doc *doctree.Node, force bool) error {
	ws := p.Workspace()
	if ws == "" {
		return nil
	}
	kind := schema[p.Collection()].Kind
	switch {
	case kind.IsStore(), kind == decoder.StyleKind, kind == decoder.LayerGroupKind:
		return setRef(doc, "workspace", "", ws, force)
	case kind.IsResource():
		if err := setRef(doc, "namespace", "", ws, force); err != nil {
			return err
		}
		storeKind := schema[p[2]].Kind
		return setRef(doc, "store", storeKind.String(), ws+":"+p[3], force)
	}
	return nil
}

// fieldText returns the content of doc's field, or "".
func fieldText(doc *doctree.Node, field string) string {
	if n := doc.Find(field); n != nil {
		return n.Content()
	}
	return ""
}

// setRef sets <field class="class"><name>name</name></field> unless
// doc already has the field.  With force, an existing reference gets
// the new name.
func setRef(doc *doctree.Node, field, class, name string, force bool) error {
	if existing := doc.Child(field); existing != nil {
		if !force || !existing.IsBranch() {
			return nil
		}
		return existing.ReplaceChild(doctree.NewLeaf("name", name))
	}
	ref, err := newBranch(field, doctree.NewLeaf("name", name))
	if err != nil {
		return err
	}
	if class != "" {
		ref.SetAttr("class", class)
	}
	return doc.AddChild(ref)
}

// newBranch builds a branch holding children, in order.
func newBranch(name string, children ...*doctree.Node) (*doctree.Node, error) {
	n := doctree.NewBranch(name)
	for _, child := range children {
		if err := n.AddChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// created keeps related objects in step after e is added at p.
func (c *Catalog) created(p Path, e *entry) error {
	switch {
	case len(p) == 2 && p[0] == "workspaces":
		return c.ensure(Path{"namespaces"}, p[1], func() (*doctree.Node, error) {
			return newBranch("namespace",
				doctree.NewLeaf("prefix", p[1]),
				doctree.NewLeaf("uri", "http://"+p[1]))
		})
	case len(p) == 2 && p[0] == "namespaces":
		return c.ensure(Path{"workspaces"}, p[1], func() (*doctree.Node, error) {
			return newBranch("workspace", doctree.NewLeaf("name", p[1]))
		})
	case len(p) == 6 && schema[p[4]].Kind.IsResource():
		return c.publish(p, e)
	}
	return nil
}

// ensure creates an object in coll named name if there is none.
func (c *Catalog) ensure(coll Path, name string, build func() (*doctree.Node, error)) error {
	members, err := c.members(coll)
	if err != nil {
		return err
	}
	if _, exists := members[name]; exists {
		return nil
	}
	doc, err := build()
	if err != nil {
		return err
	}
	_, err = c.create(coll, doc)
	return err
}

// publish creates the layer for a new resource.
func (c *Catalog) publish(p Path, res *entry) error {
	kind := schema[p.Collection()].Kind
	name := layerName(p)
	layers := c.root.children["layers"]
	if _, exists := layers[name]; exists {
		return ErrAlreadyExists{Path: Path{"layers", name}}
	}

	doc, err := newBranch("layer",
		doctree.NewLeaf("name", p.Name()),
		doctree.NewLeaf("type", layerType(kind)))
	if err != nil {
		return err
	}
	if err := setRef(doc, "defaultStyle", "", defaultStyle(kind), false); err != nil {
		return err
	}
	if err := setRef(doc, "resource", kind.String(), name, false); err != nil {
		return err
	}
	for _, leaf := range []*doctree.Node{
		doctree.NewLeaf("enabled", "true"),
		doctree.NewLeaf("dateCreated", c.now()),
	} {
		if err := doc.AddChild(leaf); err != nil {
			return err
		}
	}

	layer := newEntry("layers", doc)
	layer.resource = p
	layers[name] = layer
	res.layer = name
	return nil
}

// layerName is the name of the layer publishing the resource at p.
func layerName(p Path) string {
	return p.Workspace() + ":" + p.Name()
}

func defaultStyle(k decoder.Kind) string {
	if k == decoder.CoverageKind {
		return "raster"
	}
	return "generic"
}

// Update applies a partial update to the object at p.  Fields in doc
// replace fields of the stored object; fields not in doc keep their
// values.  Changing the name field renames the object, and the
// objects that refer to it follow.  On error nothing is changed.
func (c *Catalog) Update(p Path, doc *doctree.Node) error {
	return c.do(func() error {
		e, err := c.lookup(p)
		if err != nil {
			return err
		}
		info := schema[p.Collection()]
		if decoder.ParseKind(doc.Name) != info.Kind {
			return ErrWrongElement{Want: info.Kind.String(), Got: doc.Name}
		}
		if err := doc.MakeBranch(); err != nil {
			return err
		}
		merged := e.doc.Clone()
		if err := Merge(merged, doc); err != nil {
			return err
		}
		if err := merged.ReplaceChild(doctree.NewLeaf("dateModified", c.now())); err != nil {
			return err
		}
		newName := fieldText(doc, info.nameField())
		if newName == "" || newName == p.Name() {
			e.doc = merged
			return nil
		}
		to := p.Parent().Child(newName)
		if err := c.canRename(p, to); err != nil {
			return err
		}
		e.doc = merged
		return c.rename(p, to)
	})
}

// partnerOf returns the namespace of a workspace path and the
// workspace of a namespace path, or nil.
func partnerOf(p Path) Path {
	if len(p) != 2 {
		return nil
	}
	switch p[0] {
	case "workspaces":
		return Path{"namespaces", p[1]}
	case "namespaces":
		return Path{"workspaces", p[1]}
	}
	return nil
}

// subtree returns the old and new paths of the workspace-side object
// whose descendants move when from is renamed to to, or nil if
// nothing moves.
func subtree(from, to Path) (Path, Path) {
	switch from[0] {
	case "workspaces":
		return from, to
	case "namespaces":
		return partnerOf(from), partnerOf(to)
	}
	return nil, nil
}

// rebase returns p with its prefix from replaced by to.
func rebase(p, from, to Path) (Path, bool) {
	if len(p) < len(from) {
		return nil, false
	}
	for i := range from {
		if p[i] != from[i] {
			return nil, false
		}
	}
	moved := append(Path(nil), to...)
	return append(moved, p[len(from):]...), true
}

// canRename checks that renaming from to to would not collide with
// anything: the new name, the new partner name, or the new names of
// layers that follow.
func (c *Catalog) canRename(from, to Path) error {
	if _, err := c.lookup(to); err == nil {
		return ErrAlreadyExists{Path: to}
	}
	if partner := partnerOf(to); partner != nil {
		if _, err := c.lookup(partner); err == nil {
			return ErrAlreadyExists{Path: partner}
		}
	}
	subFrom, subTo := subtree(from, to)
	if subFrom == nil {
		return nil
	}
	layers := c.root.children["layers"]
	for name, layer := range layers {
		if res, ok := rebase(layer.resource, subFrom, subTo); ok {
			if moved := layerName(res); moved != name && layers[moved] != nil {
				return ErrAlreadyExists{Path: Path{"layers", moved}}
			}
		}
	}
	return nil
}

// move re-keys the object at from under to's name and sets its name
// field.
func (c *Catalog) move(from, to Path) (*entry, error) {
	members, err := c.members(from.Parent())
	if err != nil {
		return nil, err
	}
	e := members[from.Name()]
	if e == nil {
		return nil, ErrNoSuchObject{Path: from}
	}
	field := schema[from.Collection()].nameField()
	if err := e.doc.ReplaceChild(doctree.NewLeaf(field, to.Name())); err != nil {
		return nil, err
	}
	delete(members, from.Name())
	members[to.Name()] = e
	return e, nil
}

// rename moves the object at from to to after canRename has passed.
// A workspace and its namespace keep the same name, references
// under a renamed workspace or store are rewritten, and layers keep
// pointing at the resources they publish.
func (c *Catalog) rename(from, to Path) error {
	e, err := c.move(from, to)
	if err != nil {
		return err
	}
	if partner := partnerOf(from); partner != nil {
		if _, err := c.lookup(partner); err == nil {
			if _, err := c.move(partner, partnerOf(to)); err != nil {
				return err
			}
		}
	}
	if from[0] == "layers" {
		if e.resource != nil {
			if res, err := c.lookup(e.resource); err == nil {
				res.layer = to.Name()
			}
		}
		return nil
	}

	_, subTo := subtree(from, to)
	if subTo == nil {
		return nil
	}
	top, err := c.lookup(subTo)
	if err != nil {
		return nil
	}
	return c.walk(subTo, top, func(p Path, e *entry) error {
		if err := c.annotate(p, e.doc, true); err != nil {
			return err
		}
		if e.layer != "" {
			return c.relayer(p, e)
		}
		return nil
	})
}

// relayer points the layer publishing res at res's path p, renaming
// the layer to match.
func (c *Catalog) relayer(p Path, res *entry) error {
	layers := c.root.children["layers"]
	layer := layers[res.layer]
	if layer == nil {
		res.layer = ""
		return nil
	}
	layer.resource = append(Path(nil), p...)
	name := layerName(p)
	if name == res.layer {
		return nil
	}
	delete(layers, res.layer)
	layers[name] = layer
	res.layer = name
	if err := layer.doc.ReplaceChild(doctree.NewLeaf("name", p.Name())); err != nil {
		return err
	}
	return setRef(layer.doc, "resource", "", name, true)
}

// walk calls f on e, at p, and then on each of its descendants.
func (c *Catalog) walk(p Path, e *entry, f func(Path, *entry) error) error {
	if err := f(p, e); err != nil {
		return err
	}
	for coll, members := range e.children {
		for _, name := range sortedNames(members) {
			if err := c.walk(p.Child(coll).Child(name), members[name], f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes the object at p.  An object with dependents, such as
// a workspace holding stores or a resource published as a layer, is
// only removed if recurse is set, and then its dependents go too.
func (c *Catalog) Delete(p Path, recurse bool) error {
	return c.do(func() error {
		return c.remove(p, recurse)
	})
}

func (c *Catalog) remove(p Path, recurse bool) error {
	e, err := c.lookup(p)
	if err != nil {
		return err
	}
	if !recurse && (!e.isEmpty() || e.layer != "") {
		return ErrNotEmpty{Path: p}
	}
	for coll, members := range e.children {
		for _, name := range sortedNames(members) {
			if err := c.remove(p.Child(coll).Child(name), true); err != nil {
				return err
			}
		}
	}
	if e.layer != "" {
		if layer := c.root.children["layers"][e.layer]; layer != nil {
			layer.resource = nil
		}
		delete(c.root.children["layers"], e.layer)
	}
	if e.resource != nil && recurse {
		if res, err := c.lookup(e.resource); err == nil {
			res.layer = ""
			if err := c.remove(e.resource, true); err != nil {
				return err
			}
		}
	} else if e.resource != nil {
		if res, err := c.lookup(e.resource); err == nil {
			res.layer = ""
		}
	}

	members, err := c.members(p.Parent())
	if err != nil {
		return err
	}
	delete(members, p.Name())

	// Workspaces and namespaces come and go together
	if len(p) == 2 {
		var other Path
		switch p[0] {
		case "workspaces":
			other = Path{"namespaces", p[1]}
		case "namespaces":
			other = Path{"workspaces", p[1]}
		}
		if other != nil {
			if _, err := c.lookup(other); err == nil {
				return c.remove(other, recurse)
			}
		}
	}
	return nil
}

// SetBody attaches a file to the object at p, replacing any previous
// one.
func (c *Catalog) SetBody(p Path, body []byte, contentType string) error {
	return c.do(func() error {
		e, err := c.lookup(p)
		if err != nil {
			return err
		}
		e.body = append([]byte(nil), body...)
		e.bodyType = contentType
		return e.doc.ReplaceChild(doctree.NewLeaf("dateModified", c.now()))
	})
}

// Body returns the file attached to the object at p.  It returns
// ErrNoSuchObject if the object exists but has no file.
func (c *Catalog) Body(p Path) (body []byte, contentType string, err error) {
	err = c.do(func() error {
		e, err := c.lookup(p)
		if err != nil {
			return err
		}
		if e.body == nil {
			return ErrNoSuchObject{Path: p}
		}
		body = append([]byte(nil), e.body...)
		contentType = e.bodyType
		return nil
	})
	return
}

// Modified returns when the object at p was last changed, from its
// dateModified or dateCreated field.
func (c *Catalog) Modified(p Path) (time.Time, error) {
	doc, err := c.Get(p)
	if err != nil {
		return time.Time{}, err
	}
	stamp := doc.Find("dateModified")
	if stamp == nil {
		stamp = doc.Find("dateCreated")
	}
	if stamp == nil {
		return time.Time{}, nil
	}
	return time.Parse(TimestampFormat, stamp.Content())
}
