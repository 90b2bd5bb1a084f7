// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes an in-memory catalog through the map
// server's REST configuration API.  The restclient package is a
// matching client, and this package is mainly a test double for it.
//
// HTTP Considerations
//
// GET of a collection returns a listing document; POST to it creates
// a member and answers 201 Created with a Location: header and the
// new name as the body.  GET, PUT and DELETE work on members.  PUT
// is a partial update: only fields present in the request change.
// Success otherwise answers 200 OK, possibly with an empty body.
//
// DELETE of an object with dependents answers 403 Forbidden unless
// the request carries recurse=true.  A missing object is 404; a 404
// is logged at info level unless the request carries
// quietOnNotFound=true.
//
// If the server is configured with credentials, every request must
// carry them as HTTP basic authentication or gets 401 Unauthorized.
//
// MIME Types
//
// Documents are exchanged as XML (application/xml, text/xml) or JSON
// (application/json, text/json).  The request Content-Type: picks the
// parser.  The response format comes from a ".xml" or ".json" path
// suffix if there is one, else from the Accept: header, defaulting to
// XML.
//
// A style's SLD body is sent with PUT to the style's URL with
// Content-Type: application/vnd.ogc.sld+xml (or the SE 1.1 type), and
// read back with GET of the style's URL with a ".sld" suffix.
//
// URL Scheme
//
// Object names are single path segments and must be percent-encoded
// if they contain reserved characters; "topp:roads" may be sent as
// "topp%3Aroads".  The following URLs are defined, each with an
// optional format suffix:
//
//     /rest/workspaces
//     /rest/workspaces/{workspace}
//     /rest/namespaces
//     /rest/namespaces/{namespace}
//     /rest/workspaces/{workspace}/{datastores|coveragestores|wmsstores|wmtsstores}
//     /rest/workspaces/{workspace}/{stores}/{store}
//     /rest/workspaces/{workspace}/{stores}/{store}/{featuretypes|coverages|wmslayers|wmtslayers}
//     /rest/workspaces/{workspace}/{stores}/{store}/{resources}/{resource}
//     /rest/workspaces/{workspace}/styles
//     /rest/workspaces/{workspace}/styles/{style}
//     /rest/workspaces/{workspace}/layergroups
//     /rest/workspaces/{workspace}/layergroups/{group}
//     /rest/layers
//     /rest/layers/{layer}
//     /rest/layergroups
//     /rest/layergroups/{group}
//     /rest/styles
//     /rest/styles/{style}
//     /gwc/rest/layers
//     /gwc/rest/layers/{layer}
package restserver
