// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "diffeo",
		Subsystem: "geoserver",
		Name:      "rest_requests_total",
		Help:      "REST requests served, by route and status",
	},
	[]string{
		"method",
		"route",
		"code",
	},
)

func init() {
	prometheus.MustRegister(requestCount)
}

func observeRequest(method, route string, status int) {
	requestCount.With(prometheus.Labels{
		"method": method,
		"route":  route,
		"code":   strconv.Itoa(status),
	}).Inc()
}
