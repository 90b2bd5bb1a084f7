// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBadPath is returned when a path does not address an object or a
// collection the catalog knows about.
var ErrBadPath = errors.New("invalid catalog path")

// ErrNoName is returned when an object would be stored without a name.
var ErrNoName = errors.New("object has no name")

// ErrNoSuchObject is returned when a path names an object or
// collection that does not exist.
type ErrNoSuchObject struct {
	Path Path
}

func (e ErrNoSuchObject) Error() string {
	return fmt.Sprintf("no such object %v", e.Path)
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNoSuchObject) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrAlreadyExists is returned when creating an object whose name is
// already taken in its collection.
type ErrAlreadyExists struct {
	Path Path
}

func (e ErrAlreadyExists) Error() string {
	return fmt.Sprintf("%v already exists", e.Path)
}

// HTTPStatus returns a fixed 409 Conflict error code.
func (e ErrAlreadyExists) HTTPStatus() int {
	return http.StatusConflict
}

// ErrNotEmpty is returned when deleting an object that still has
// dependents, without asking for a recursive delete.
type ErrNotEmpty struct {
	Path Path
}

func (e ErrNotEmpty) Error() string {
	return fmt.Sprintf("%v is not empty; delete with recurse=true", e.Path)
}

// HTTPStatus returns a fixed 403 Forbidden error code.
func (e ErrNotEmpty) HTTPStatus() int {
	return http.StatusForbidden
}

// ErrWrongElement is returned when a document's root element does not
// match the collection it is sent to.
type ErrWrongElement struct {
	Want string
	Got  string
}

func (e ErrWrongElement) Error() string {
	return fmt.Sprintf("expected <%s> document, got <%s>", e.Want, e.Got)
}

// HTTPStatus returns a fixed 400 Bad Request error code.
func (e ErrWrongElement) HTTPStatus() int {
	return http.StatusBadRequest
}
