// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides an HTTP client for a map server's REST
// configuration API.
//
// The generic transport is Request, which performs one call and
// reduces its result to an Outcome: Success, NotFound, Fatal or
// Unreachable.  Client builds on that with a base address,
// credentials, and URI-template addressing from the restdata package;
// call New() with the server's base URL, for instance
//
//     c, err := restclient.New("http://localhost:8080/geoserver", "admin", "geoserver")
//
// Every Client method is a synchronous, self-contained round trip.
// Client holds no mutable state and may be shared between goroutines.
// Sequences of calls are not atomic: if a later call fails, earlier
// ones have already taken effect on the server.
package restclient

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/sirupsen/logrus"
)

// ErrEmptyPayload is returned instead of sending an encoder with no
// fields, which the server could read as "clear everything".
var ErrEmptyPayload = errors.New("refusing to send an empty document")

// ErrNoHost is returned from New if the base URL has no scheme or
// host.
var ErrNoHost = errors.New("base URL must include a scheme and host")

// Vars holds URI template parameters.
type Vars map[string]interface{}

// Client talks to one map server.
type Client struct {
	// Base is the server's base URL, such as
	// http://localhost:8080/geoserver.
	Base *url.URL

	// User and Password are sent as basic authentication on every
	// call when both are set.
	User     string
	Password string

	// Format selects the representation of documents sent and
	// requested.
	Format restdata.Format

	// Logger receives one line per call.
	Logger logrus.FieldLogger
}

// New creates a client for the server at baseURL.  It does not
// contact the server.
func New(baseURL, user, password string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, ErrNoHost
	}
	return &Client{
		Base:     base,
		User:     user,
		Password: password,
		Format:   restdata.FormatXML,
		Logger:   logrus.StandardLogger(),
	}, nil
}

// RESTRoot returns the URL of the configuration API, <base>/rest/.
func (c *Client) RESTRoot() string {
	return strings.TrimRight(c.Base.String(), "/") + "/rest/"
}

// GWCRoot returns the URL of the tile cache API, <base>/gwc/rest/.
func (c *Client) GWCRoot() string {
	return strings.TrimRight(c.Base.String(), "/") + "/gwc/rest/"
}

// URL expands a template relative to the REST root and adds the
// client's format suffix.
func (c *Client) URL(template string, vars Vars) (string, error) {
	return c.urlFrom(c.RESTRoot(), template, vars)
}

func (c *Client) urlFrom(root, template string, vars Vars) (string, error) {
	expanded, err := restdata.Expand(template, vars)
	if err != nil {
		return "", err
	}
	return restdata.WithSuffix(root+expanded, c.Format.Suffix()), nil
}

// Do performs one call with the client's credentials.
func (c *Client) Do(method, rawURL string, body []byte, contentType string) Outcome {
	logger := c.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return call{
		Method:      method,
		URL:         rawURL,
		Body:        body,
		ContentType: contentType,
		Accept:      c.Format.MediaType(),
		User:        c.User,
		Password:    c.Password,
		Logger:      logger,
	}.Do()
}

// fetch GETs a URL, returning nil for 404 and an error for any other
// failure.
func (c *Client) fetch(rawURL string) (*decoder.View, error) {
	out := c.Do(http.MethodGet, rawURL, nil, "")
	switch out.Kind {
	case Success:
		return out.View(), nil
	case NotFound:
		return nil, nil
	}
	return nil, out.Error()
}

// Get reads the document at a template URL.  It returns nil with no
// error if the resource does not exist or the body is not a document.
func (c *Client) Get(template string, vars Vars) (*decoder.View, error) {
	u, err := c.URL(template, vars)
	if err != nil {
		return nil, err
	}
	return c.fetch(u)
}

// Exists probes a template URL.  A 404 is false; anything other than
// 200 or 404 is an error.
func (c *Client) Exists(template string, vars Vars) (bool, error) {
	return c.exists(c.RESTRoot(), template, vars)
}

func (c *Client) exists(root, template string, vars Vars) (bool, error) {
	u, err := c.urlFrom(root, template, vars)
	if err != nil {
		return false, err
	}
	return outcomeExists(c.Do(http.MethodGet, restdata.QuietOnNotFound(u), nil, ""))
}

// Names lists the "name" of every member of a collection.  A missing
// collection has no names.
func (c *Client) Names(template string, vars Vars) ([]string, error) {
	view, err := c.Get(template, vars)
	if err != nil || view == nil {
		return nil, err
	}
	items, err := view.Items()
	if err != nil {
		return nil, err
	}
	return items.Names(), nil
}

// send serializes enc and sends it.  It returns the outcome's error
// for anything but Success.
func (c *Client) send(method, template string, vars Vars, enc *encoder.Encoder) (Outcome, error) {
	if enc.IsEmpty() {
		return Outcome{}, ErrEmptyPayload
	}
	body, err := c.Format.Marshal(enc.Root())
	if err != nil {
		return Outcome{}, err
	}
	return c.sendRaw(method, template, vars, body, c.Format.MediaType())
}

func (c *Client) sendRaw(method, template string, vars Vars, body []byte, contentType string) (Outcome, error) {
	u, err := c.URL(template, vars)
	if err != nil {
		return Outcome{}, err
	}
	out := c.Do(method, u, body, contentType)
	return out, out.Error()
}

// Put sends a document to a member URL, creating or updating it.
func (c *Client) Put(template string, vars Vars, enc *encoder.Encoder) error {
	_, err := c.send(http.MethodPut, template, vars, enc)
	return err
}

// Post sends a document to a collection URL, creating a member.  It
// returns the new member's location if the server gave one.
func (c *Client) Post(template string, vars Vars, enc *encoder.Encoder) (string, error) {
	out, err := c.send(http.MethodPost, template, vars, enc)
	return out.Location, err
}

// PutRaw sends an arbitrary body, such as an SLD file or a zip
// archive.
func (c *Client) PutRaw(template string, vars Vars, body []byte, contentType string) error {
	_, err := c.sendRaw(http.MethodPut, template, vars, body, contentType)
	return err
}

// PostRaw sends an arbitrary body to a collection URL.
func (c *Client) PostRaw(template string, vars Vars, body []byte, contentType string) (string, error) {
	out, err := c.sendRaw(http.MethodPost, template, vars, body, contentType)
	return out.Location, err
}

// Delete removes the resource at a template URL.  query holds extra
// parameters such as recurse=true.  It returns false, with no error,
// if there was nothing to delete.
func (c *Client) Delete(template string, vars Vars, query url.Values) (bool, error) {
	u, err := c.URL(template, vars)
	if err != nil {
		return false, err
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return outcomeExists(c.Do(http.MethodDelete, u, nil, ""))
}
