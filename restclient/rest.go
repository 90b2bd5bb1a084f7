// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

// This file provides the generic one-shot HTTP transport.

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/sirupsen/logrus"
)

// errNoOrigin is returned for a URL with no scheme and host.
var errNoOrigin = errors.New("URL has no scheme and host")

// ConnectTimeout bounds how long a call waits to open its connection.
const ConnectTimeout = 5 * time.Second

// RequestTimeout bounds the whole of a call, from dialing to reading
// the last byte of the response.
const RequestTimeout = 30 * time.Second

// OutcomeKind is the classification of a finished call.
type OutcomeKind int

const (
	// Success means the server accepted the call.  The body may be
	// empty.
	Success OutcomeKind = iota

	// NotFound means the server answered 404.
	NotFound

	// Fatal means the server answered with any other status.
	Fatal

	// Unreachable means no HTTP response arrived at all.
	Unreachable
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case NotFound:
		return "not found"
	case Fatal:
		return "fatal"
	case Unreachable:
		return "unreachable"
	}
	return "invalid"
}

// Outcome is the result of one call.
type Outcome struct {
	Kind OutcomeKind

	// Method and URL are the request as sent, after URL
	// re-encoding.
	Method string
	URL    string

	// Status is the HTTP status code; zero if Unreachable.
	Status int

	// Body is the response body.  It is non-nil, possibly empty,
	// whenever a response arrived.
	Body []byte

	// Location is the Location: header of the response, which
	// names the new resource after a create.
	Location string

	// Err is the network-level error for Unreachable outcomes.
	Err error
}

// OK returns true for a Success outcome.
func (o Outcome) OK() bool {
	return o.Kind == Success
}

// Error converts a non-success outcome to an error: ErrNotFound,
// *ErrStatus, or *ErrUnreachable from the restdata package.  Success
// returns nil.
func (o Outcome) Error() error {
	switch o.Kind {
	case Success:
		return nil
	case NotFound:
		return restdata.ErrNotFound{URL: o.URL}
	case Unreachable:
		return &restdata.ErrUnreachable{Method: o.Method, URL: o.URL, Err: o.Err}
	}
	return &restdata.ErrStatus{Method: o.Method, URL: o.URL, Status: o.Status, Body: string(o.Body)}
}

// View parses the body as a document, or returns nil if there is no
// usable body.
func (o Outcome) View() *decoder.View {
	return decoder.Build(o.Body)
}

// classify reduces a status code to an outcome kind.  PUT and POST may
// also answer 201 Created or 202 Accepted.
func classify(method string, status int) OutcomeKind {
	switch status {
	case http.StatusOK:
		return Success
	case http.StatusCreated, http.StatusAccepted:
		if method == http.MethodPut || method == http.MethodPost {
			return Success
		}
	case http.StatusNotFound:
		return NotFound
	}
	return Fatal
}

// call is everything needed to make one request.
type call struct {
	Method      string
	URL         string
	Body        []byte
	ContentType string
	Accept      string
	User        string
	Password    string
	Logger      logrus.FieldLogger
}

// Request performs one HTTP call and classifies the result.  body may
// be nil.  If both user and password are non-empty they are sent as
// basic authentication on the first request, without waiting for a
// challenge.
//
// The path of rawURL is re-encoded before sending; see
// restdata.EncodeURL.  A URL that cannot be re-encoded is sent as
// given.  Each call opens and closes its own connection
// and is bounded by ConnectTimeout and RequestTimeout.
func Request(method, rawURL string, body []byte, contentType, user, password string) Outcome {
	return call{
		Method:      method,
		URL:         rawURL,
		Body:        body,
		ContentType: contentType,
		User:        user,
		Password:    password,
		Logger:      logrus.StandardLogger(),
	}.Do()
}

// Exists probes a URL with GET: true on 200, false on 404, and an
// error for any other outcome.
func Exists(rawURL, user, password string) (bool, error) {
	return outcomeExists(Request(http.MethodGet, rawURL, nil, "", user, password))
}

func outcomeExists(o Outcome) (bool, error) {
	switch o.Kind {
	case Success:
		return true, nil
	case NotFound:
		return false, nil
	}
	return false, o.Error()
}

// Do performs the call.
func (c call) Do() Outcome {
	out := Outcome{Method: c.Method, URL: restdata.EncodeURL(c.URL)}
	log := c.Logger.WithFields(logrus.Fields{
		"method": out.Method,
		"url":    out.URL,
	})

	var body io.Reader
	if c.Body != nil {
		body = bytes.NewReader(c.Body)
	}
	req, err := http.NewRequest(c.Method, out.URL, body)
	if err != nil {
		log.WithError(err).Debug("Sending URL as given")
		req, err = rawRequest(c.Method, out.URL, body)
	}
	if err != nil {
		out.Kind = Unreachable
		out.Err = err
		log.WithError(err).Error("Could not build request")
		return out
	}
	if c.Body != nil && c.ContentType != "" {
		req.Header.Set("Content-Type", c.ContentType)
	}
	if c.Accept != "" {
		req.Header.Set("Accept", c.Accept)
	}
	if c.User != "" && c.Password != "" {
		req.SetBasicAuth(c.User, c.Password)
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: ConnectTimeout}).DialContext,
		TLSHandshakeTimeout:   ConnectTimeout,
		ResponseHeaderTimeout: RequestTimeout,
		DisableKeepAlives:     true,
	}
	defer transport.CloseIdleConnections()
	client := &http.Client{Transport: transport, Timeout: RequestTimeout}

	log.Debug("Sending request")
	resp, err := client.Do(req)
	if err != nil {
		out.Kind = Unreachable
		out.Err = err
		log.WithError(err).Error("Server unreachable")
		return out
	}
	out.Body, err = ioutil.ReadAll(resp.Body)
	err = firstError(err, resp.Body.Close())
	if err != nil {
		out.Kind = Unreachable
		out.Err = err
		log.WithError(err).Error("Could not read response")
		return out
	}
	if out.Body == nil {
		out.Body = []byte{}
	}
	out.Status = resp.StatusCode
	out.Location = resp.Header.Get("Location")
	out.Kind = classify(c.Method, resp.StatusCode)

	log = log.WithField("status", out.Status)
	switch out.Kind {
	case Success:
		log.Debug("Request succeeded")
	case NotFound:
		if strings.Contains(out.URL, restdata.QuietOnNotFoundParam+"=true") {
			log.Debug("Not found")
		} else {
			log.Info("Not found")
		}
	case Fatal:
		log.WithField("body", string(out.Body)).Warn("Request failed")
	}
	return out
}

// rawRequest builds a request for a URL that net/url will not parse,
// such as one with a malformed %-escape in its path.  Only the scheme
// and host are parsed; the path and query go on the request line
// byte for byte.
func rawRequest(method, rawURL string, body io.Reader) (*http.Request, error) {
	i := strings.Index(rawURL, "://")
	if i < 0 {
		return nil, errNoOrigin
	}
	origin, target := rawURL, ""
	if j := strings.IndexAny(rawURL[i+3:], "/?#"); j >= 0 {
		origin, target = rawURL[:i+3+j], rawURL[i+3+j:]
	}
	req, err := http.NewRequest(method, origin, body)
	if err != nil {
		return nil, err
	}
	if k := strings.IndexByte(target, '#'); k >= 0 {
		target = target[:k]
	}
	if k := strings.IndexByte(target, '?'); k >= 0 {
		req.URL.RawQuery = target[k+1:]
		target = target[:k]
	}
	if target == "" || strings.HasPrefix(target, "//") {
		target = "/" + strings.TrimLeft(target, "/")
	}
	req.URL.Opaque = target
	return req, nil
}

func firstError(e1, e2 error) error {
	if e1 != nil {
		return e1
	}
	return e2
}
