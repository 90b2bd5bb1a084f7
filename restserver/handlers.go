// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/go-geoserver/doctree"
	"github.com/diffeo/go-geoserver/memory"
	"github.com/diffeo/go-geoserver/restdata"
)

// GetCollection returns a listing document.
func (api *restAPI) GetCollection(ctx *context) (interface{}, error) {
	return api.Catalog.List(ctx.Path)
}

// PostCollection returns a handler that creates a member from the
// request document.  member names the route of the new object, for
// its Location: header.
func (api *restAPI) PostCollection(member string) func(*context) (interface{}, error) {
	return func(ctx *context) (interface{}, error) {
		doc, err := ctx.Document()
		if err != nil {
			return nil, err
		}
		name, err := api.Catalog.Create(ctx.Path, doc)
		if err != nil {
			return nil, err
		}

		var location string
		key := api.nameVar(member)
		err = buildURLs(api.Router, routeParams(ctx, key, name)...).
			URL(&location, member).
			Error
		if err != nil {
			// The object exists; a missing Location: is not
			// worth failing the request over
			api.Logger.WithError(err).Debug("Could not build Location")
			return responseCreated{Body: name}, nil
		}
		return responseCreated{Location: Absolute(ctx.Request, location), Body: name}, nil
	}
}

// nameVar returns the URL variable holding the object name in a
// member route.
func (api *restAPI) nameVar(member string) string {
	for _, rt := range routes {
		if rt.name == member {
			path := memory.ParsePath(rt.path)
			name := path[len(path)-1]
			return name[1 : len(name)-1]
		}
	}
	return ""
}

// GetMember returns an object's document, or a style's SLD file.
func (api *restAPI) GetMember(ctx *context) (interface{}, error) {
	if ctx.WantsStyleBody() && ctx.Path.Collection() == "styles" {
		body, contentType, err := api.Catalog.Body(ctx.Path)
		if err != nil {
			return nil, err
		}
		return rawResponse{ContentType: contentType, Body: body}, nil
	}
	doc, err := api.Catalog.Get(ctx.Path)
	if err != nil {
		return nil, err
	}
	if modified, err := api.Catalog.Modified(ctx.Path); err == nil && !modified.IsZero() {
		ctx.ResponseHeader.Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	}
	return doc, nil
}

// PutMember updates an object from the request document, or replaces
// a style's SLD file.  PUT of a tile cache layer that does not exist
// creates it.
func (api *restAPI) PutMember(ctx *context) (interface{}, error) {
	if ctx.IsStyleBody() {
		if ctx.Path.Collection() != "styles" {
			return nil, restdata.ErrUnsupportedMediaType{Type: ctx.ContentType}
		}
		return nil, api.Catalog.SetBody(ctx.Path, ctx.Body, ctx.ContentType)
	}
	doc, err := ctx.Document()
	if err != nil {
		return nil, err
	}
	err = api.Catalog.Update(ctx.Path, doc)
	if _, missing := err.(memory.ErrNoSuchObject); missing && ctx.Path.Collection() == "gwclayers" {
		if doc.Find("name") == nil {
			if err := doc.AddChild(doctree.NewLeaf("name", ctx.Path.Name())); err != nil {
				return nil, err
			}
		}
		_, err = api.Catalog.Create(ctx.Path.Parent(), doc)
	}
	return nil, err
}

// DeleteMember removes an object.  recurse=true also removes its
// dependents.
func (api *restAPI) DeleteMember(ctx *context) (interface{}, error) {
	return nil, api.Catalog.Delete(ctx.Path, ctx.BoolParam(restdata.RecurseParam, false))
}
