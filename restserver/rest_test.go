// Regression tests for the REST server.
//
// Main tests are really by running the end-to-end path, driven from
// restclient.  This covers the HTTP-level behavior directly.
//
// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diffeo/go-geoserver/memory"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failResponseWriter struct {
	Headers    http.Header
	StatusCode int
}

func (rw *failResponseWriter) Header() http.Header {
	if rw.Headers == nil {
		rw.Headers = make(http.Header)
	}
	return rw.Headers
}

func (rw *failResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("foo")
}

func (rw *failResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
}

// serve sends one request to router and returns the recorded
// response.
func serve(router http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newWorkspace(t *testing.T, router http.Handler, name string) {
	rec := serve(router, http.MethodPost, "/rest/workspaces.xml", restdata.XMLMediaType,
		"<workspace><name>"+name+"</name></workspace>")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// TestDoubleFault checks that, if there is an error writing a
// response, it doesn't actually panic the process.
func TestDoubleFault(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")

	req := httptest.NewRequest(http.MethodGet, "/rest/workspaces/topp", nil)
	resp := &failResponseWriter{}
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndGet(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodPost, "/rest/workspaces", restdata.XMLMediaType,
		"<workspace><name>topp</name></workspace>")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "topp", rec.Body.String())
	assert.Equal(t, "http://example.com/rest/workspaces/topp", rec.Header().Get("Location"))

	rec = serve(router, http.MethodGet, "/rest/workspaces/topp.xml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, restdata.XMLMediaType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<name>topp</name>")
	assert.NotEmpty(t, rec.Header().Get("Last-Modified"))

	rec = serve(router, http.MethodGet, "/rest/workspaces/topp.json", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, restdata.JSONMediaType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"name":"topp"`)

	rec = serve(router, http.MethodGet, "/rest/workspaces.xml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"<workspaces><workspace><name>topp</name></workspace></workspaces>",
		rec.Body.String())
}

func TestCreateJSON(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodPost, "/rest/workspaces.json", restdata.JSONMediaType,
		`{"workspace": {"name": "sf"}}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/rest/namespaces/sf.xml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<prefix>sf</prefix>")
}

func TestAccept(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")

	req := httptest.NewRequest(http.MethodGet, "/rest/workspaces/topp", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, restdata.JSONMediaType, rec.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodGet, "/rest/workspaces/topp", nil)
	req.Header.Set("Accept", "image/png")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotAcceptable, rec.Code)
}

func TestNotFound(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodGet, "/rest/workspaces/nope.xml?quietOnNotFound=true", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodGet, "/rest/workspaces/nope/datastores.xml", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodDelete, "/rest/workspaces", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBadBody(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodPost, "/rest/workspaces", restdata.XMLMediaType, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, http.MethodPost, "/rest/workspaces", restdata.XMLMediaType, "<workspace>")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, http.MethodPost, "/rest/workspaces", "image/png", "x")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = serve(router, http.MethodPost, "/rest/workspaces", restdata.XMLMediaType,
		"<style><name>x</name></style>")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicate(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")
	rec := serve(router, http.MethodPost, "/rest/workspaces", restdata.XMLMediaType,
		"<workspace><name>topp</name></workspace>")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPartialUpdate(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")
	rec := serve(router, http.MethodPost, "/rest/workspaces/topp/datastores", restdata.XMLMediaType,
		"<dataStore><name>shapes</name><description>old</description><enabled>true</enabled></dataStore>")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodPut, "/rest/workspaces/topp/datastores/shapes.xml", restdata.XMLMediaType,
		"<dataStore><description>new</description></dataStore>")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/rest/workspaces/topp/datastores/shapes.xml", "", "")
	body := rec.Body.String()
	assert.Contains(t, body, "<description>new</description>")
	assert.Contains(t, body, "<enabled>true</enabled>")
	assert.Contains(t, body, "<workspace><name>topp</name></workspace>")
}

func TestDeleteRecurse(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")
	rec := serve(router, http.MethodPost, "/rest/workspaces/topp/datastores", restdata.XMLMediaType,
		"<dataStore><name>shapes</name></dataStore>")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(router, http.MethodDelete, "/rest/workspaces/topp", "", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(router, http.MethodDelete, "/rest/workspaces/topp?recurse=true", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/rest/workspaces/topp", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEncodedName(t *testing.T) {
	router := NewRouter(memory.New())
	newWorkspace(t, router, "topp")
	rec := serve(router, http.MethodPost, "/rest/workspaces/topp/datastores", restdata.XMLMediaType,
		"<dataStore><name>my shapes</name></dataStore>")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "http://example.com/rest/workspaces/topp/datastores/my%20shapes",
		rec.Header().Get("Location"))

	rec = serve(router, http.MethodPost, "/rest/workspaces/topp/datastores/my%20shapes/featuretypes",
		restdata.XMLMediaType, "<featureType><name>roads</name></featureType>")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/rest/layers/topp%3Aroads.xml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<resource class="featureType"><name>topp:roads</name></resource>`)
}

func TestStyleBody(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodPost, "/rest/styles", restdata.XMLMediaType,
		"<style><name>line</name><filename>line.sld</filename></style>")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(router, http.MethodGet, "/rest/styles/line.sld", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	sld := "<StyledLayerDescriptor/>"
	rec = serve(router, http.MethodPut, "/rest/styles/line", restdata.SLDMediaType, sld)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/rest/styles/line.sld", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, restdata.SLDMediaType, rec.Header().Get("Content-Type"))
	assert.Equal(t, sld, rec.Body.String())

	// SLD bodies only go to styles
	rec = serve(router, http.MethodPut, "/rest/layers/line", restdata.SLDMediaType, sld)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestGWCLayerPutCreates(t *testing.T) {
	router := NewRouter(memory.New())
	rec := serve(router, http.MethodPut, "/gwc/rest/layers/topp%3Aroads.xml", restdata.XMLMediaType,
		"<GeoServerLayer><enabled>true</enabled></GeoServerLayer>")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(router, http.MethodGet, "/gwc/rest/layers/topp%3Aroads.xml", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<name>topp:roads</name>")
}

func TestBasicAuth(t *testing.T) {
	router := NewRouter(memory.New(), WithBasicAuth("admin", "geoserver"))

	rec := serve(router, http.MethodGet, "/rest/workspaces", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/rest/workspaces", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/rest/workspaces", nil)
	req.SetBasicAuth("admin", "geoserver")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubrouter(t *testing.T) {
	r := mux.NewRouter()
	PopulateRouter(r.PathPrefix("/geoserver").Subrouter(), memory.New())
	rec := serve(r, http.MethodPost, "/geoserver/rest/workspaces", restdata.XMLMediaType,
		"<workspace><name>topp</name></workspace>")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "http://example.com/geoserver/rest/workspaces/topp", rec.Header().Get("Location"))
}

func TestMuxTemplate(t *testing.T) {
	assert.Equal(t,
		`/rest/workspaces/{workspace:[^/]+?}{suffix:(?:\.xml|\.json|\.sld)?}`,
		muxTemplate("/rest/workspaces/{workspace}"))
	assert.Equal(t, "layer", (&restAPI{}).nameVar("gwcLayer"))
	assert.Equal(t, "store", memberRoute("stores"))
}
