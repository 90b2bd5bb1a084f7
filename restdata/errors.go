// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"fmt"
	"net/http"
)

// ErrorStatus describes errors that correspond to specific HTTP status
// codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrStatus is returned when the server answers with a status code
// the caller did not expect.
type ErrStatus struct {
	// Method and URL identify the failed request.
	Method string
	URL    string

	// Status is the HTTP status code.
	Status int

	// Body holds the response body, presumed to be text.
	Body string
}

func (e *ErrStatus) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// HTTPStatus returns the status code the server sent.
func (e *ErrStatus) HTTPStatus() int {
	return e.Status
}

// ErrUnreachable is returned when a request got no HTTP response at
// all: the connection was refused, timed out, or failed before a
// status line arrived.
type ErrUnreachable struct {
	Method string
	URL    string
	Err    error
}

func (e *ErrUnreachable) Error() string {
	return fmt.Sprintf("%s %s: server unreachable: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying network error.
func (e *ErrUnreachable) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when a resource that must exist does not.
// Calls that merely look for a resource report absence without an
// error.
type ErrNotFound struct {
	URL string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("no such resource %v", e.URL)
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrBadRequest is returned as an error when there is an error decoding
// HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// StatusOf returns the HTTP status code carried by err, or 500 if it
// carries none.
func StatusOf(err error) int {
	if es, ok := err.(ErrorStatus); ok {
		return es.HTTPStatus()
	}
	return http.StatusInternalServerError
}
