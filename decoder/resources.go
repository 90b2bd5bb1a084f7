// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package decoder

// This file holds read models for the resource documents this client
// most often reads.  Each is a plain struct filled by Project plus a
// few list fields read directly from the view.

// Ref is a by-name reference to another resource, as in
// <defaultStyle><name>line</name></defaultStyle>.
type Ref struct {
	Name string `field:"name"`
	Href string `field:"href"`

	// Class holds the class attribute, when the reference carries
	// one, as in <resource class="featureType">.
	Class string `field:"@class"`
}

// Kind returns the resource kind named by the reference's class.
func (r Ref) Kind() Kind {
	return ParseKind(r.Class)
}

// BoundingBox is an envelope in some coordinate reference system.
type BoundingBox struct {
	MinX float64 `field:"minx"`
	MaxX float64 `field:"maxx"`
	MinY float64 `field:"miny"`
	MaxY float64 `field:"maxy"`
	CRS  string  `field:"crs"`
}

// Workspace is a <workspace> document.
type Workspace struct {
	Name     string `field:"name"`
	Isolated bool   `field:"isolated"`
}

// Namespace is a <namespace> document.
type Namespace struct {
	Prefix   string `field:"prefix"`
	URI      string `field:"uri"`
	Isolated bool   `field:"isolated"`
}

// Store is any of the store documents: <dataStore>, <coverageStore>,
// <wmsStore>, <wmtsStore>.
type Store struct {
	Kind        Kind   `field:"-"`
	Name        string `field:"name"`
	Description string `field:"description"`
	Type        string `field:"type"`
	Enabled     bool   `field:"enabled"`
	Workspace   Ref    `field:"workspace"`

	// URL is the coverage file or capabilities URL, for store kinds
	// that have one.
	URL string `field:"url"`

	// ConnectionParameters holds a data store's connection entries.
	ConnectionParameters map[string]string `field:"-"`
}

// Resource is a publishable resource document: <featureType>,
// <coverage>, <wmsLayer>, <wmtsLayer>.
type Resource struct {
	Kind              Kind        `field:"-"`
	Name              string      `field:"name"`
	NativeName        string      `field:"nativeName"`
	Title             string      `field:"title"`
	Abstract          string      `field:"abstract"`
	SRS               string      `field:"srs"`
	Enabled           bool        `field:"enabled"`
	Namespace         Ref         `field:"namespace"`
	Store             Ref         `field:"store"`
	NativeBoundingBox BoundingBox `field:"nativeBoundingBox"`
	LatLonBoundingBox BoundingBox `field:"latLonBoundingBox"`

	Keywords []string          `field:"-"`
	Metadata map[string]string `field:"-"`
}

// Layer is a <layer> document.
type Layer struct {
	Name         string   `field:"name"`
	Type         string   `field:"type"`
	Path         string   `field:"path"`
	Enabled      bool     `field:"enabled"`
	Queryable    bool     `field:"queryable"`
	DefaultStyle Ref      `field:"defaultStyle"`
	Resource     Ref      `field:"resource"`
	Styles       []string `field:"-"`
}

// LayerGroup is a <layerGroup> document.
type LayerGroup struct {
	Name      string   `field:"name"`
	Mode      string   `field:"mode"`
	Title     string   `field:"title"`
	Abstract  string   `field:"abstractTxt"`
	Workspace Ref      `field:"workspace"`
	Published []Ref    `field:"-"`
	Styles    []string `field:"-"`
}

// Style is a <style> document.
type Style struct {
	Name      string `field:"name"`
	Format    string `field:"format"`
	Filename  string `field:"filename"`
	Version   string `field:"-"`
	Workspace Ref    `field:"workspace"`
}

// GWCLayer is a tile cache layer document, <GeoServerLayer>.
type GWCLayer struct {
	ID          string   `field:"id"`
	Name        string   `field:"name"`
	Enabled     bool     `field:"enabled"`
	ExpireCache int      `field:"expireCache"`
	MimeFormats []string `field:"-"`
	GridSubsets []string `field:"-"`
}

// ReadWorkspace reads a workspace document.  A nil view reads as nil.
func ReadWorkspace(v *View) (*Workspace, error) {
	if v == nil {
		return nil, nil
	}
	var ws Workspace
	if err := v.Project(&ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// ReadNamespace reads a namespace document.
func ReadNamespace(v *View) (*Namespace, error) {
	if v == nil {
		return nil, nil
	}
	var ns Namespace
	if err := v.Project(&ns); err != nil {
		return nil, err
	}
	return &ns, nil
}

// ReadStore reads any store document.  Kind comes from the root
// element, so a <coverageStore> reads with Kind CoverageStore.
func ReadStore(v *View) (*Store, error) {
	if v == nil {
		return nil, nil
	}
	var store Store
	if err := v.Project(&store); err != nil {
		return nil, err
	}
	store.Kind = v.Kind()
	if v.Has("connectionParameters") {
		store.ConnectionParameters = v.Entries("connectionParameters")
	}
	return &store, nil
}

// ReadResource reads a feature type, coverage, or cascaded layer
// document.
func ReadResource(v *View) (*Resource, error) {
	if v == nil {
		return nil, nil
	}
	var res Resource
	if err := v.Project(&res); err != nil {
		return nil, err
	}
	res.Kind = v.Kind()
	res.Keywords = v.Strings("keywords")
	res.Metadata = v.Entries("metadata")
	return &res, nil
}

// ReadLayer reads a layer document.
func ReadLayer(v *View) (*Layer, error) {
	if v == nil {
		return nil, nil
	}
	var layer Layer
	if err := v.Project(&layer); err != nil {
		return nil, err
	}
	styles, err := v.List("styles")
	if err != nil {
		return nil, err
	}
	layer.Styles = styles.Names()
	return &layer, nil
}

// ReadLayerGroup reads a layer group document.
func ReadLayerGroup(v *View) (*LayerGroup, error) {
	if v == nil {
		return nil, nil
	}
	var group LayerGroup
	if err := v.Project(&group); err != nil {
		return nil, err
	}
	published, err := v.List("publishables")
	if err != nil {
		return nil, err
	}
	for it := published.Iter(); it.Next(); {
		var ref Ref
		if err := it.View().Project(&ref); err != nil {
			return nil, err
		}
		if t, ok := it.View().Attr("type"); ok && ref.Class == "" {
			ref.Class = t
		}
		group.Published = append(group.Published, ref)
	}
	styles, err := v.List("styles")
	if err != nil {
		return nil, err
	}
	group.Styles = styles.Names()
	return &group, nil
}

// ReadStyle reads a style document.
func ReadStyle(v *View) (*Style, error) {
	if v == nil {
		return nil, nil
	}
	var style Style
	if err := v.Project(&style); err != nil {
		return nil, err
	}
	style.Version = v.Text("languageVersion/version")
	return &style, nil
}

// ReadGWCLayer reads a tile cache layer document.
func ReadGWCLayer(v *View) (*GWCLayer, error) {
	if v == nil {
		return nil, nil
	}
	var layer GWCLayer
	if err := v.Project(&layer); err != nil {
		return nil, err
	}
	layer.MimeFormats = v.Strings("mimeFormats")
	subsets, err := v.List("gridSubsets")
	if err != nil {
		return nil, err
	}
	for it := subsets.Iter(); it.Next(); {
		layer.GridSubsets = append(layer.GridSubsets, it.View().Text("gridSetName"))
	}
	return &layer, nil
}
