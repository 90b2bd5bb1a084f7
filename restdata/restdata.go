// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines the addressing and wire conventions shared
// between the restclient and restserver packages.
//
// API Usage
//
// Every configuration object lives under the server's REST root,
// normally <base>/rest, at a hierarchical path:
//
//     /workspaces/{workspace}
//     /workspaces/{workspace}/datastores/{store}
//     /workspaces/{workspace}/datastores/{store}/featuretypes/{resource}
//     /workspaces/{workspace}/coveragestores/{store}/coverages/{resource}
//     /layers/{layer}
//     /styles/{style}
//
// The constants below are RFC 6570 URI templates for these paths;
// Expand fills them in, percent-encoding each name.  A collection
// path (without the trailing name) supports GET, returning a list
// document, and POST, creating a member.  A member path supports
// GET, PUT and DELETE.  Paths may end in ".xml" or ".json" to pick a
// representation; without a suffix the Content-Type and Accept
// headers decide.
//
// Encoding Considerations
//
// Object names may contain spaces, colons ("topp:roads") and other
// characters that are not legal in a URL path.  Expand and JoinPath
// escape names; EncodeURL re-escapes the path of an already-built URL
// string as a last line of defense before it is sent.
//
// HTTP Considerations
//
// PUT of a document updates only the fields present in it.  Fields
// that are absent keep their current values, which is why the
// encoder package never writes empty fields.
//
// A GET of something that does not exist returns 404 Not Found.  The
// server logs this as an error unless the request carries
// quietOnNotFound=true; probe calls should use QuietOnNotFound.
//
// DELETE of a workspace or store that still has contents fails unless
// recurse=true is given.  DELETE of a style may give purge=true to
// also remove its SLD file.
package restdata

// XMLMediaType is the media type for XML documents.
const XMLMediaType = "application/xml"

// TextXMLMediaType is the older XML media type many endpoints still
// emit.
const TextXMLMediaType = "text/xml"

// JSONMediaType is the media type for JSON documents.
const JSONMediaType = "application/json"

// SLDMediaType is the media type of an SLD 1.0 style body.
const SLDMediaType = "application/vnd.ogc.sld+xml"

// SE11MediaType is the media type of an SLD 1.1 / SE style body.
const SE11MediaType = "application/vnd.ogc.se+xml"

// ZipMediaType is the media type of a zipped upload.
const ZipMediaType = "application/zip"

// URI templates, relative to the REST root.
const (
	WorkspacesURL = "workspaces"
	WorkspaceURL  = "workspaces/{workspace}"

	NamespacesURL = "namespaces"
	NamespaceURL  = "namespaces/{namespace}"

	// StoresURL and StoreURL take a collection, one of
	// "datastores", "coveragestores", "wmsstores", "wmtsstores".
	StoresURL = "workspaces/{workspace}/{collection}"
	StoreURL  = "workspaces/{workspace}/{collection}/{store}"

	// ResourcesURL and ResourceURL take the store collection and
	// the resource collection ("featuretypes", "coverages", ...).
	ResourcesURL = "workspaces/{workspace}/{collection}/{store}/{resources}"
	ResourceURL  = "workspaces/{workspace}/{collection}/{store}/{resources}/{resource}"

	LayersURL = "layers"
	LayerURL  = "layers/{layer}"

	LayerGroupsURL = "layergroups"
	LayerGroupURL  = "layergroups/{group}"

	StylesURL          = "styles"
	StyleURL           = "styles/{style}"
	WorkspaceStylesURL = "workspaces/{workspace}/styles"
	WorkspaceStyleURL  = "workspaces/{workspace}/styles/{style}"

	// GWCLayerURL is relative to the tile cache REST root, normally
	// <base>/gwc/rest.
	GWCLayersURL = "layers"
	GWCLayerURL  = "layers/{layer}"
)

// Query parameter names.
const (
	QuietOnNotFoundParam = "quietOnNotFound"
	RecurseParam         = "recurse"
	PurgeParam           = "purge"
)
