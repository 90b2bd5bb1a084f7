// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"io"
	"io/ioutil"
	"mime"
	"strings"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/doctree"
)

// Format is a wire representation of a document.
type Format int

const (
	// FormatXML is an XML document.
	FormatXML Format = iota

	// FormatJSON is a JSON document.
	FormatJSON
)

// MediaType returns the Content-Type for documents in this format.
func (f Format) MediaType() string {
	if f == FormatJSON {
		return JSONMediaType
	}
	return XMLMediaType
}

// Suffix returns the path suffix that selects this format.
func (f Format) Suffix() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".xml"
}

// Marshal serializes a tree in this format.
func (f Format) Marshal(root *doctree.Node) ([]byte, error) {
	if f == FormatJSON {
		return doctree.MarshalJSON(root)
	}
	return doctree.MarshalXML(root)
}

// FormatOf maps a Content-Type or Accept value to a Format.  Anything
// JSON-like is FormatJSON; any XML type, including SLD bodies, is
// FormatXML.
func FormatOf(contentType string) (Format, error) {
	if contentType == "" {
		// RFC 7231 section 3.1.1.5
		contentType = "application/octet-stream"
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatXML, err
	}
	switch {
	case mediaType == JSONMediaType, mediaType == "text/json",
		strings.HasSuffix(mediaType, "+json"):
		return FormatJSON, nil
	case mediaType == XMLMediaType, mediaType == TextXMLMediaType,
		strings.HasSuffix(mediaType, "+xml"):
		return FormatXML, nil
	}
	return FormatXML, ErrUnsupportedMediaType{Type: mediaType}
}

// Decode reads a document from r, such as an HTTP request or response
// body, using contentType to pick the parser.
func Decode(contentType string, r io.Reader) (*doctree.Node, error) {
	format, err := FormatOf(contentType)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if format == FormatJSON {
		return doctree.ParseJSON(data)
	}
	return doctree.ParseXML(data)
}

// DecodeView is Decode wrapped in a decoder.View.  Unlike
// decoder.Build, it reports why the body could not be read.
func DecodeView(contentType string, r io.Reader) (*decoder.View, error) {
	node, err := Decode(contentType, r)
	if err != nil {
		return nil, err
	}
	return decoder.Wrap(node), nil
}
