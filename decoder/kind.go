// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package decoder

import (
	"strings"
)

// Kind identifies the type of resource a document describes.  The
// server tags polymorphic references with a class attribute, such as
// <store class="coverageStore">; that string is mapped to a Kind once,
// here, and nowhere else.
type Kind int

const (
	// UnknownKind is any tag not listed below.
	UnknownKind Kind = iota
	WorkspaceKind
	NamespaceKind
	DataStoreKind
	CoverageStoreKind
	WMSStoreKind
	WMTSStoreKind
	FeatureTypeKind
	CoverageKind
	WMSLayerKind
	WMTSLayerKind
	LayerKind
	LayerGroupKind
	StyleKind
	GWCLayerKind
)

var kindNames = map[Kind]string{
	UnknownKind:       "unknown",
	WorkspaceKind:     "workspace",
	NamespaceKind:     "namespace",
	DataStoreKind:     "dataStore",
	CoverageStoreKind: "coverageStore",
	WMSStoreKind:      "wmsStore",
	WMTSStoreKind:     "wmtsStore",
	FeatureTypeKind:   "featureType",
	CoverageKind:      "coverage",
	WMSLayerKind:      "wmsLayer",
	WMTSLayerKind:     "wmtsLayer",
	LayerKind:         "layer",
	LayerGroupKind:    "layerGroup",
	StyleKind:         "style",
	GWCLayerKind:      "GeoServerLayer",
}

var kindsByTag map[string]Kind

func init() {
	kindsByTag = make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if k != UnknownKind {
			kindsByTag[strings.ToLower(name)] = k
		}
	}
}

// ParseKind maps an element name or class attribute to a Kind.  The
// comparison ignores case.
func ParseKind(tag string) Kind {
	return kindsByTag[strings.ToLower(tag)]
}

// String returns the wire tag for k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[UnknownKind]
}

// IsStore returns true for the store kinds.
func (k Kind) IsStore() bool {
	switch k {
	case DataStoreKind, CoverageStoreKind, WMSStoreKind, WMTSStoreKind:
		return true
	}
	return false
}

// IsResource returns true for the kinds a layer can publish.
func (k Kind) IsResource() bool {
	switch k {
	case FeatureTypeKind, CoverageKind, WMSLayerKind, WMTSLayerKind:
		return true
	}
	return false
}

// Collection returns the URL path element that lists resources of
// this kind, such as "datastores" for DataStoreKind, or "" if there is
// none.
func (k Kind) Collection() string {
	switch k {
	case WorkspaceKind:
		return "workspaces"
	case NamespaceKind:
		return "namespaces"
	case DataStoreKind:
		return "datastores"
	case CoverageStoreKind:
		return "coveragestores"
	case WMSStoreKind:
		return "wmsstores"
	case WMTSStoreKind:
		return "wmtsstores"
	case FeatureTypeKind:
		return "featuretypes"
	case CoverageKind:
		return "coverages"
	case WMSLayerKind:
		return "wmslayers"
	case WMTSLayerKind:
		return "wmtslayers"
	case LayerKind:
		return "layers"
	case LayerGroupKind:
		return "layergroups"
	case StyleKind:
		return "styles"
	}
	return ""
}
