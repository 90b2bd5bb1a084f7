// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains various HTTP-related helpers.

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

type urlBuilder struct {
	Router *mux.Router
	Params []string
	Error  error
}

// buildURLs starts building URLs from a router.  params alternate
// variable names and unescaped values; url.URL escapes them when the
// result is formatted.
func buildURLs(router *mux.Router, params ...string) *urlBuilder {
	return &urlBuilder{Router: router, Params: params}
}

// routeParams turns a context's URL variables, minus the format
// suffix, into buildURLs parameters.
func routeParams(ctx *context, extra ...string) []string {
	var params []string
	for name, value := range ctx.Vars {
		if name != "suffix" {
			params = append(params, name, value)
		}
	}
	return append(params, extra...)
}

func (u *urlBuilder) Route(route string) *mux.Route {
	if u.Error != nil {
		return nil
	}
	r := u.Router.Get(route)
	if r == nil {
		u.Error = fmt.Errorf("No such route %q", route)
	}
	return r
}

// URL stores the URL of a named route in out.  The suffix variable is
// always empty.
func (u *urlBuilder) URL(out *string, route string) *urlBuilder {
	var r *mux.Route
	var built *url.URL
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		params := append(append([]string{}, u.Params...), "suffix", "")
		built, u.Error = r.URL(params...)
	}
	if u.Error == nil {
		*out = built.String()
	}
	return u
}

// Absolute makes a server-relative URL absolute, using the host the
// request came in on.
func Absolute(req *http.Request, path string) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + req.Host + path
}
