// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"time"

	"github.com/diffeo/go-geoserver/memory"
	"github.com/prometheus/client_golang/prometheus"
)

var catalogSummary = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "diffeo",
		Subsystem: "geoserver",
		Name:      "catalog_objects",
		Help:      "Number of top-level catalog objects",
	},
	[]string{
		"collection",
	},
)

// summarized are the collections observe() reports on.
var summarized = []string{
	"workspaces",
	"namespaces",
	"layers",
	"layergroups",
	"styles",
	"gwclayers",
}

// summaryInterval is how often observe() refreshes the gauges.
const summaryInterval = 15 * time.Second

func init() {
	prometheus.MustRegister(catalogSummary)
}

func summarize(catalog *memory.Catalog) {
	for _, collection := range summarized {
		names, err := catalog.Names(memory.Path{collection})
		if err != nil {
			continue
		}
		catalogSummary.With(prometheus.Labels{
			"collection": collection,
		}).Set(float64(len(names)))
	}
}

func observe(catalog *memory.Catalog) {
	ticker := catalog.Clock().Ticker(summaryInterval)
	defer ticker.Stop()
	summarize(catalog)
	for range ticker.C {
		summarize(catalog)
	}
}
