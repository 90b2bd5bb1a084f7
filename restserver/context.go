// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/diffeo/go-geoserver/doctree"
	"github.com/diffeo/go-geoserver/memory"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/gorilla/mux"
)

// context holds all of the information that can be extracted from
// one request.
type context struct {
	// Path is the catalog path the URL names.
	Path memory.Path

	// Vars holds the decoded URL variables.
	Vars map[string]string

	// Suffix is the URL's format suffix, including the dot, or "".
	Suffix string

	// Format is the format of the response document.
	Format restdata.Format

	// Accept is the negotiated response media type.
	Accept string

	QueryParams url.Values

	// Body and ContentType are the request body, for PUT and
	// POST.
	Body        []byte
	ContentType string

	// Request is the original request.
	Request *http.Request

	// ResponseHeader holds extra response headers.
	ResponseHeader http.Header
}

// contextBuilder returns a function that fills in a context, mapping
// URL variables into the catalog path template.
func (api *restAPI) contextBuilder(pathTemplate []string) func(*http.Request) (*context, error) {
	return func(req *http.Request) (ctx *context, err error) {
		ctx = &context{
			Vars:        make(map[string]string),
			QueryParams: req.URL.Query(),
			ContentType: req.Header.Get("Content-Type"),
			Request:     req,
		}
		for name, value := range mux.Vars(req) {
			ctx.Vars[name], err = url.PathUnescape(value)
			if err != nil {
				return nil, restdata.ErrBadRequest{Err: err}
			}
		}
		ctx.Suffix = ctx.Vars["suffix"]

		ctx.Path = make(memory.Path, len(pathTemplate))
		for i, element := range pathTemplate {
			if strings.HasPrefix(element, "{") {
				element = ctx.Vars[strings.Trim(element, "{}")]
			}
			ctx.Path[i] = element
		}

		if req.Method == http.MethodPut || req.Method == http.MethodPost {
			ctx.Body, err = ioutil.ReadAll(req.Body)
			if err != nil {
				return nil, restdata.ErrBadRequest{Err: err}
			}
		}
		return ctx, nil
	}
}

// BoolParam looks at ctx.QueryParams for a parameter named name.  If
// it has a normally-truthy value (1, on, false, no, ...) then return
// that value.  Otherwise (empty string, foo, ...) return def.
func (ctx *context) BoolParam(name string, def bool) bool {
	switch strings.ToLower(ctx.QueryParams.Get(name)) {
	case "0", "f", "n", "false", "off", "no":
		return false
	case "1", "t", "y", "true", "on", "yes":
		return true
	default:
		return def
	}
}

// IsStyleBody returns true if the request body is a style document
// rather than a catalog document.
func (ctx *context) IsStyleBody() bool {
	return isStyleType(ctx.ContentType)
}

// WantsStyleBody returns true if the client asked for a style's SLD
// file rather than its catalog entry.
func (ctx *context) WantsStyleBody() bool {
	return ctx.Suffix == ".sld" || isStyleType(ctx.Accept)
}

func isStyleType(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0]))
	return mediaType == restdata.SLDMediaType || mediaType == restdata.SE11MediaType
}

// Document parses the request body as a catalog document.
func (ctx *context) Document() (*doctree.Node, error) {
	if len(ctx.Body) == 0 {
		return nil, restdata.ErrBadRequest{Err: errEmptyBody}
	}
	node, err := restdata.Decode(ctx.ContentType, bytes.NewReader(ctx.Body))
	if err != nil {
		if _, unsupported := err.(restdata.ErrUnsupportedMediaType); unsupported {
			return nil, err
		}
		return nil, restdata.ErrBadRequest{Err: err}
	}
	return node, nil
}
