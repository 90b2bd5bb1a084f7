// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"strings"

	"github.com/diffeo/go-geoserver/memory"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Option changes how the server behaves.
type Option func(*restAPI)

// WithBasicAuth requires every request to carry these credentials.
func WithBasicAuth(user, password string) Option {
	return func(api *restAPI) {
		api.User = user
		api.Password = password
	}
}

// WithLogger sends the server's request log to logger instead of the
// standard logrus logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(api *restAPI) {
		api.Logger = logger
	}
}

// NewRouter creates a new HTTP handler that serves the REST API over
// a catalog.  The API lives under /rest and /gwc/rest from the URL
// path root.  For more control over this setup, create a mux.Router
// and call PopulateRouter instead.
func NewRouter(cat *memory.Catalog, opts ...Option) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, cat, opts...)
	return r
}

// PopulateRouter adds the REST API routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the API under a subpath like a real server's
// context root:
//
//     r := mux.NewRouter()
//     s := r.PathPrefix("/geoserver").Subrouter()
//     PopulateRouter(s, memory.New())
//
// Routes match against the encoded URL path, so that a name holding
// an escaped "/" stays one path segment.
func PopulateRouter(r *mux.Router, cat *memory.Catalog, opts ...Option) {
	api := &restAPI{Catalog: cat, Router: r, Logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(api)
	}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Catalog  *memory.Catalog
	Router   *mux.Router
	Logger   logrus.FieldLogger
	User     string
	Password string
}

// route is one URL pattern.  url is the mux path template with plain
// {name} variables; path is the catalog path with the same
// variables.
type route struct {
	name string
	url  string
	path string
}

const (
	storeCollections    = "datastores|coveragestores|wmsstores|wmtsstores"
	resourceCollections = "featuretypes|coverages|wmslayers|wmtslayers"
)

var routes = []route{
	{"workspaces", "/rest/workspaces", "workspaces"},
	{"workspace", "/rest/workspaces/{workspace}", "workspaces/{workspace}"},
	{"namespaces", "/rest/namespaces", "namespaces"},
	{"namespace", "/rest/namespaces/{namespace}", "namespaces/{namespace}"},
	{"stores", "/rest/workspaces/{workspace}/{stores:" + storeCollections + "}",
		"workspaces/{workspace}/{stores}"},
	{"store", "/rest/workspaces/{workspace}/{stores:" + storeCollections + "}/{store}",
		"workspaces/{workspace}/{stores}/{store}"},
	{"resources", "/rest/workspaces/{workspace}/{stores:" + storeCollections + "}/{store}/{resources:" + resourceCollections + "}",
		"workspaces/{workspace}/{stores}/{store}/{resources}"},
	{"resource", "/rest/workspaces/{workspace}/{stores:" + storeCollections + "}/{store}/{resources:" + resourceCollections + "}/{resource}",
		"workspaces/{workspace}/{stores}/{store}/{resources}/{resource}"},
	{"workspaceStyles", "/rest/workspaces/{workspace}/styles", "workspaces/{workspace}/styles"},
	{"workspaceStyle", "/rest/workspaces/{workspace}/styles/{style}", "workspaces/{workspace}/styles/{style}"},
	{"workspaceLayerGroups", "/rest/workspaces/{workspace}/layergroups", "workspaces/{workspace}/layergroups"},
	{"workspaceLayerGroup", "/rest/workspaces/{workspace}/layergroups/{group}", "workspaces/{workspace}/layergroups/{group}"},
	{"layers", "/rest/layers", "layers"},
	{"layer", "/rest/layers/{layer}", "layers/{layer}"},
	{"layerGroups", "/rest/layergroups", "layergroups"},
	{"layerGroup", "/rest/layergroups/{group}", "layergroups/{group}"},
	{"styles", "/rest/styles", "styles"},
	{"style", "/rest/styles/{style}", "styles/{style}"},
	{"gwcLayers", "/gwc/rest/layers", "gwclayers"},
	{"gwcLayer", "/gwc/rest/layers/{layer}", "gwclayers/{layer}"},
}

// suffixPattern matches the optional format suffix on every route.
const suffixPattern = `{suffix:(?:\.xml|\.json|\.sld)?}`

// muxTemplate gives every plain {name} variable a non-greedy pattern,
// so that it stops short of the format suffix, and appends the
// suffix variable.
func muxTemplate(url string) string {
	parts := strings.Split(url, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && !strings.Contains(part, ":") {
			parts[i] = part[:len(part)-1] + `:[^/]+?}`
		}
	}
	return strings.Join(parts, "/") + suffixPattern
}

// memberRoute returns the name of the member route under a
// collection route, or "".
func memberRoute(collection string) string {
	for i, r := range routes {
		if r.name == collection && i+1 < len(routes) {
			return routes[i+1].name
		}
	}
	return ""
}

// PopulateRouter adds all URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	r.UseEncodedPath()
	for _, rt := range routes {
		pathTemplate := strings.Split(rt.path, "/")
		collection := len(pathTemplate)%2 == 1
		h := &resourceHandler{
			Name:    rt.name,
			API:     api,
			Context: api.contextBuilder(pathTemplate),
		}
		if collection {
			h.Get = api.GetCollection
			h.Post = api.PostCollection(memberRoute(rt.name))
		} else {
			h.Get = api.GetMember
			h.Put = api.PutMember
			h.Delete = api.DeleteMember
		}
		r.Path(muxTemplate(rt.url)).Name(rt.name).Handler(h)
	}
}
