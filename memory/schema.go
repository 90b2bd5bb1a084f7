// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"strings"

	"github.com/diffeo/go-geoserver/decoder"
)

// Path addresses something in the catalog.  Elements alternate
// between collection names and object names, so an odd-length path
// is a collection and an even-length path is an object:
//
//     workspaces
//     workspaces/topp
//     workspaces/topp/datastores/roads/featuretypes
type Path []string

// ParsePath splits a "/"-separated path.
func ParsePath(s string) Path {
	return Path(strings.Split(strings.Trim(s, "/"), "/"))
}

func (p Path) String() string {
	return strings.Join(p, "/")
}

// IsCollection returns true if p names a collection.
func (p Path) IsCollection() bool {
	return len(p)%2 == 1
}

// Collection returns the collection p is, or the collection the
// object p lives in.
func (p Path) Collection() string {
	if len(p) == 0 {
		return ""
	}
	if p.IsCollection() {
		return p[len(p)-1]
	}
	return p[len(p)-2]
}

// Name returns the object name of an object path, or "".
func (p Path) Name() string {
	if len(p) == 0 || p.IsCollection() {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path one level up: the collection holding an
// object, or the object holding a collection.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Child extends p by one element.
func (p Path) Child(element string) Path {
	return append(p[:len(p):len(p)], element)
}

// Workspace returns the workspace p is under, or "".
func (p Path) Workspace() string {
	if len(p) >= 2 && p[0] == "workspaces" {
		return p[1]
	}
	return ""
}

// collection describes one kind of collection in the catalog.
type collection struct {
	// Kind is the kind of its members; the member element name is
	// Kind.String().
	Kind decoder.Kind

	// List is the root element of a listing document.
	List string

	// Item is the element name of each listing entry, if not the
	// member element name.
	Item string

	// NameField is the member field holding its name.
	NameField string

	// Children are the collections each member holds.
	Children []string
}

func (c collection) item() string {
	if c.Item != "" {
		return c.Item
	}
	return c.Kind.String()
}

func (c collection) nameField() string {
	if c.NameField != "" {
		return c.NameField
	}
	return "name"
}

// topLevel are the collections directly under the catalog root.
var topLevel = []string{"workspaces", "namespaces", "layers", "layergroups", "styles", "gwclayers"}

var schema = map[string]collection{
	"workspaces": {
		Kind: decoder.WorkspaceKind,
		List: "workspaces",
		Children: []string{
			"datastores", "coveragestores", "wmsstores", "wmtsstores",
			"styles", "layergroups",
		},
	},
	"namespaces":     {Kind: decoder.NamespaceKind, List: "namespaces", NameField: "prefix"},
	"datastores":     {Kind: decoder.DataStoreKind, List: "dataStores", Children: []string{"featuretypes"}},
	"coveragestores": {Kind: decoder.CoverageStoreKind, List: "coverageStores", Children: []string{"coverages"}},
	"wmsstores":      {Kind: decoder.WMSStoreKind, List: "wmsStores", Children: []string{"wmslayers"}},
	"wmtsstores":     {Kind: decoder.WMTSStoreKind, List: "wmtsStores", Children: []string{"wmtslayers"}},
	"featuretypes":   {Kind: decoder.FeatureTypeKind, List: "featureTypes"},
	"coverages":      {Kind: decoder.CoverageKind, List: "coverages"},
	"wmslayers":      {Kind: decoder.WMSLayerKind, List: "wmsLayers"},
	"wmtslayers":     {Kind: decoder.WMTSLayerKind, List: "wmtsLayers"},
	"layers":         {Kind: decoder.LayerKind, List: "layers"},
	"layergroups":    {Kind: decoder.LayerGroupKind, List: "layerGroups"},
	"styles":         {Kind: decoder.StyleKind, List: "styles"},
	"gwclayers":      {Kind: decoder.GWCLayerKind, List: "layers", Item: "layer"},
}

// layerType is the <type> of the layer that publishes a resource.
func layerType(k decoder.Kind) string {
	switch k {
	case decoder.FeatureTypeKind:
		return "VECTOR"
	case decoder.CoverageKind:
		return "RASTER"
	case decoder.WMSLayerKind:
		return "WMS"
	case decoder.WMTSLayerKind:
		return "WMTS"
	}
	return ""
}
