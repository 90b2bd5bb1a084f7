// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"strings"
	"testing"

	"github.com/diffeo/go-geoserver/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		ContentType string
		Format      Format
		OK          bool
	}{
		{"application/json", FormatJSON, true},
		{"application/json; charset=UTF-8", FormatJSON, true},
		{"text/json", FormatJSON, true},
		{"application/vnd.example+json", FormatJSON, true},
		{"application/xml", FormatXML, true},
		{"text/xml", FormatXML, true},
		{SLDMediaType, FormatXML, true},
		{"", FormatXML, false},
		{ZipMediaType, FormatXML, false},
		{"not a / type;;", FormatXML, false},
	}
	for _, test := range tests {
		format, err := FormatOf(test.ContentType)
		assert.Equal(t, test.Format, format, test.ContentType)
		if test.OK {
			assert.NoError(t, err, test.ContentType)
		} else {
			assert.Error(t, err, test.ContentType)
		}
	}

	_, err := FormatOf(ZipMediaType)
	assert.Equal(t, ErrUnsupportedMediaType{Type: ZipMediaType}, err)
	assert.Equal(t, 415, StatusOf(err))
}

func TestDecode(t *testing.T) {
	node, err := Decode("text/xml", strings.NewReader("<workspace><name>topp</name></workspace>"))
	require.NoError(t, err)
	assert.Equal(t, "topp", node.Find("name").Content())

	view, err := DecodeView("application/json", strings.NewReader(`{"workspace": {"name": "sf"}}`))
	require.NoError(t, err)
	assert.Equal(t, "sf", view.Text("name"))

	_, err = Decode("application/json", strings.NewReader("<workspace/>"))
	assert.Error(t, err)
}

func TestFormatMarshal(t *testing.T) {
	root := doctree.NewBranch("workspace")
	require.NoError(t, root.AddChild(doctree.NewLeaf("name", "topp")))

	out, err := FormatXML.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "<workspace><name>topp</name></workspace>", string(out))
	assert.Equal(t, ".xml", FormatXML.Suffix())
	assert.Equal(t, XMLMediaType, FormatXML.MediaType())

	out, err = FormatJSON.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, `{"workspace":{"name":"topp"}}`, string(out))
	assert.Equal(t, ".json", FormatJSON.Suffix())
	assert.Equal(t, JSONMediaType, FormatJSON.MediaType())
}

func TestErrors(t *testing.T) {
	err := &ErrStatus{Method: "GET", URL: "http://h/x", Status: 500, Body: "boom"}
	assert.Equal(t, "GET http://h/x: 500 Internal Server Error: boom", err.Error())
	assert.Equal(t, 500, StatusOf(err))
	assert.Equal(t, 404, StatusOf(ErrNotFound{URL: "x"}))
	assert.Equal(t, 500, StatusOf(assert.AnError))

	unreachable := &ErrUnreachable{Method: "PUT", URL: "http://h/x", Err: assert.AnError}
	assert.Equal(t, assert.AnError, unreachable.Unwrap())
	assert.Contains(t, unreachable.Error(), "unreachable")
}
