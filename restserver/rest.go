// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Handlers return a document tree, raw bytes, a plain string, or nil,
// and this turns that into a response in the negotiated format.

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/diffeo/go-geoserver/doctree"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/sirupsen/logrus"
)

var typeMap = map[string]restdata.Format{
	restdata.XMLMediaType:     restdata.FormatXML,
	restdata.TextXMLMediaType: restdata.FormatXML,
	restdata.SLDMediaType:     restdata.FormatXML,
	restdata.SE11MediaType:    restdata.FormatXML,
	restdata.JSONMediaType:    restdata.FormatJSON,
	"text/json":               restdata.FormatJSON,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errEmptyBody is returned when a PUT or POST carries no document.
var errEmptyBody = errors.New("request body is empty")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// errUnauthorized is returned when the request lacks the configured
// credentials.
type errUnauthorized struct{}

func (e errUnauthorized) Error() string {
	return "Authentication required"
}

func (e errUnauthorized) HTTPStatus() int {
	return http.StatusUnauthorized
}

// responseCreated is returned as a value response from handler
// functions that want to indicate that a new resource was created.
type responseCreated struct {
	// Location holds the canonical URL to the newly created resource.
	Location string

	// Body contains the object sent in the body of the response.
	Body interface{}
}

// rawResponse is returned from handler functions to send bytes
// as-is, such as a style's SLD file.
type rawResponse struct {
	ContentType string
	Body        []byte
}

type resourceHandler struct {
	// Name is the route name, used as a metric label.
	Name string

	// API is the server this handler belongs to.
	API *restAPI

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Put, if non-nil, updates the object from ctx.Body.
	Put func(*context) (interface{}, error)

	// Post, if non-nil, creates something from ctx.Body.  The
	// return can be responseCreated.
	Post func(*context) (interface{}, error)

	// Delete, if non-nil, deletes the object.
	Delete func(*context) (interface{}, error)
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *context
		out          interface{}
		err          error
		status       int
		responseType string
		format       restdata.Format
	)

	log := h.API.Logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			log.WithField("panic", recovered).Error("Panic in handler")
			resp.Header().Set("Content-Type", "text/plain")
			resp.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(resp, "%v", recovered)
			observeRequest(req.Method, h.Name, http.StatusInternalServerError)
		}
	}()

	// Check credentials before anything else.
	if h.API.User != "" {
		user, password, ok := req.BasicAuth()
		if !ok || user != h.API.User || password != h.API.Password {
			status = http.StatusUnauthorized
			err = errUnauthorized{}
			resp.Header().Set("WWW-Authenticate", `Basic realm="GeoServer Realm"`)
		}
	}

	// Start by trying to come up with a response type, even before
	// trying to parse the input.
	if err == nil {
		// Errors here by default are in the header setup
		status = http.StatusBadRequest
		responseType, err = negotiateResponse(req)
		if err != nil {
			// Gotta pick something
			responseType = restdata.XMLMediaType
		}
		format = typeMap[responseType]
	}

	// Get bits from URL parameters and the body
	if err == nil {
		ctx, err = h.Context(req)
	}
	if err == nil {
		// A path suffix overrides the Accept: header
		switch ctx.Suffix {
		case ".json":
			format = restdata.FormatJSON
		case ".xml":
			format = restdata.FormatXML
		}
		ctx.Format = format
		ctx.Accept = responseType
		ctx.ResponseHeader = resp.Header()
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		// If anything else goes wrong here, it's an error in
		// the catalog
		status = http.StatusInternalServerError
		switch req.Method {
		case "GET", "HEAD":
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case "PUT":
			if h.Put != nil {
				out, err = h.Put(ctx)
			}
		case "POST":
			if h.Post != nil {
				out, err = h.Post(ctx)
			}
		case "DELETE":
			if h.Delete != nil {
				out, err = h.Delete(ctx)
			}
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		out = err.Error()
	} else if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		if created.Location != "" {
			resp.Header().Set("Location", created.Location)
		}
		out = created.Body
	} else {
		status = http.StatusOK
	}
	h.log(log, ctx, status, err)

	// Serialize the response
	var body []byte
	var contentType string
	switch o := out.(type) {
	case nil:
	case *doctree.Node:
		body, err = format.Marshal(o)
		contentType = format.MediaType()
		if err != nil {
			status = http.StatusInternalServerError
			body = []byte(err.Error())
			contentType = "text/plain"
		}
	case rawResponse:
		body = o.Body
		contentType = o.ContentType
	case string:
		body = []byte(o)
		contentType = "text/plain"
	default:
		status = http.StatusInternalServerError
		body = []byte(fmt.Sprintf("Invalid response type %T", out))
		contentType = "text/plain"
	}
	if req.Method == "HEAD" {
		body = nil
	}

	// Actually send the response
	if contentType != "" {
		resp.Header().Set("Content-Type", contentType)
	}
	resp.WriteHeader(status)
	observeRequest(req.Method, h.Name, status)
	if len(body) > 0 {
		if _, err := resp.Write(body); err != nil {
			log.WithError(err).Debug("Could not write response")
		}
	}
}

// log writes one line about a finished request.  A 404 is not worth
// more than debug level if the client said it was only probing.
func (h *resourceHandler) log(log logrus.FieldLogger, ctx *context, status int, err error) {
	log = log.WithField("status", status)
	switch {
	case err == nil:
		log.Debug("Request")
	case status == http.StatusNotFound:
		if ctx != nil && ctx.BoolParam(restdata.QuietOnNotFoundParam, false) {
			log.WithError(err).Debug("Not found")
		} else {
			log.WithError(err).Info("Not found")
		}
	case status >= 500:
		log.WithError(err).Error("Request failed")
	default:
		log.WithError(err).Warn("Request failed")
	}
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*", "application/*":
		return restdata.XMLMediaType, nil
	case "text/*":
		return restdata.TextXMLMediaType, nil
	default:
		return bestType, nil
	}
}
