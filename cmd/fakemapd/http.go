// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"net/http"

	"github.com/diffeo/go-geoserver/memory"
	"github.com/diffeo/go-geoserver/restserver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// HTTP serves the REST API over one catalog.
type HTTP struct {
	catalog   *memory.Catalog
	laddr     string
	prefix    string
	user      string
	password  string
	reqLogger *logrus.Logger
}

// Handler builds the complete request handler: the REST API under
// the prefix, /metrics at the root, and recovery and access logging
// around both.
func (h *HTTP) Handler() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	api := r.PathPrefix(h.prefix).Subrouter()
	var opts []restserver.Option
	if h.user != "" {
		opts = append(opts, restserver.WithBasicAuth(h.user, h.password))
	}
	if h.reqLogger != nil {
		opts = append(opts, restserver.WithLogger(h.reqLogger))
	}
	restserver.PopulateRouter(api, h.catalog, opts...)

	n := negroni.New(negroni.NewRecovery())
	if h.reqLogger != nil {
		n.Use(negroni.NewLogger())
	}
	n.UseHandler(r)
	return n
}

// Serve runs an HTTP server on the configured local address.  This
// serves connections until the listener fails.
func (h *HTTP) Serve() error {
	return http.ListenAndServe(h.laddr, h.Handler())
}
