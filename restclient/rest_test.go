// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"bufio"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diffeo/go-geoserver/restdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		method string
		status int
		kind   OutcomeKind
	}{
		{"GET", 200, Success},
		{"DELETE", 200, Success},
		{"PUT", 201, Success},
		{"POST", 201, Success},
		{"POST", 202, Success},
		{"GET", 201, Fatal},
		{"DELETE", 202, Fatal},
		{"GET", 204, Fatal},
		{"GET", 404, NotFound},
		{"PUT", 404, NotFound},
		{"GET", 401, Fatal},
		{"DELETE", 403, Fatal},
		{"GET", 500, Fatal},
	}
	for _, test := range tests {
		assert.Equal(t, test.kind, classify(test.method, test.status),
			"%v %v", test.method, test.status)
	}
}

// statusServer answers every request with status and body.
func statusServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestRequestSuccess(t *testing.T) {
	server := statusServer(http.StatusOK, "<workspace><name>topp</name></workspace>")
	defer server.Close()

	out := Request("GET", server.URL+"/rest/workspaces/topp", nil, "", "", "")
	assert.Equal(t, Success, out.Kind)
	assert.True(t, out.OK())
	assert.Equal(t, http.StatusOK, out.Status)
	assert.NoError(t, out.Error())
	view := out.View()
	require.NotNil(t, view)
	assert.Equal(t, "topp", view.Text("name"))
}

func TestRequestEmptyBody(t *testing.T) {
	server := statusServer(http.StatusOK, "")
	defer server.Close()

	out := Request("DELETE", server.URL+"/rest/styles/line", nil, "", "", "")
	assert.Equal(t, Success, out.Kind)
	assert.NotNil(t, out.Body)
	assert.Empty(t, out.Body)
	assert.Nil(t, out.View())
}

func TestRequestNotFound(t *testing.T) {
	server := statusServer(http.StatusNotFound, "No such workspace")
	defer server.Close()

	out := Request("GET", server.URL+"/rest/workspaces/nope", nil, "", "", "")
	assert.Equal(t, NotFound, out.Kind)
	assert.Equal(t, http.StatusNotFound, out.Status)
	assert.IsType(t, restdata.ErrNotFound{}, out.Error())
}

func TestRequestFatal(t *testing.T) {
	server := statusServer(http.StatusInternalServerError, "boom")
	defer server.Close()

	out := Request("GET", server.URL+"/rest/workspaces", nil, "", "", "")
	assert.Equal(t, Fatal, out.Kind)
	assert.Equal(t, "boom", string(out.Body))
	err := out.Error()
	if assert.IsType(t, &restdata.ErrStatus{}, err) {
		status := err.(*restdata.ErrStatus)
		assert.Equal(t, http.StatusInternalServerError, status.Status)
		assert.Equal(t, "boom", status.Body)
		assert.Equal(t, http.StatusInternalServerError, restdata.StatusOf(err))
	}
}

func TestRequestUnreachable(t *testing.T) {
	server := statusServer(http.StatusOK, "")
	target := server.URL + "/rest/workspaces"
	server.Close()

	out := Request("GET", target, nil, "", "", "")
	assert.Equal(t, Unreachable, out.Kind)
	assert.Zero(t, out.Status)
	assert.Error(t, out.Err)
	assert.IsType(t, &restdata.ErrUnreachable{}, out.Error())

	_, err := Exists(target, "", "")
	assert.IsType(t, &restdata.ErrUnreachable{}, err)
}

func TestExists(t *testing.T) {
	for _, test := range []struct {
		status int
		exists bool
		fails  bool
	}{
		{http.StatusOK, true, false},
		{http.StatusNotFound, false, false},
		{http.StatusInternalServerError, false, true},
		{http.StatusUnauthorized, false, true},
	} {
		server := statusServer(test.status, "")
		exists, err := Exists(server.URL+"/rest/workspaces/topp", "", "")
		server.Close()
		assert.Equal(t, test.exists, exists, "status %v", test.status)
		if test.fails {
			assert.Error(t, err, "status %v", test.status)
		} else {
			assert.NoError(t, err, "status %v", test.status)
		}
	}
}

// recorded holds what the server saw of the last request.
type recorded struct {
	RequestURI  string
	Auth        bool
	User        string
	Password    string
	ContentType string
	Body        string
}

func recordingServer(rec *recorded) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rec.RequestURI = req.RequestURI
		rec.User, rec.Password, rec.Auth = req.BasicAuth()
		rec.ContentType = req.Header.Get("Content-Type")
		body, _ := ioutil.ReadAll(req.Body)
		rec.Body = string(body)
	}))
}

func TestBasicAuthPreemptive(t *testing.T) {
	var rec recorded
	server := recordingServer(&rec)
	defer server.Close()

	out := Request("GET", server.URL+"/rest/workspaces", nil, "", "admin", "geoserver")
	assert.Equal(t, Success, out.Kind)
	assert.True(t, rec.Auth)
	assert.Equal(t, "admin", rec.User)
	assert.Equal(t, "geoserver", rec.Password)

	// Half a credential is no credential
	Request("GET", server.URL+"/rest/workspaces", nil, "", "admin", "")
	assert.False(t, rec.Auth)
}

func TestRequestBody(t *testing.T) {
	var rec recorded
	server := recordingServer(&rec)
	defer server.Close()

	out := Request("PUT", server.URL+"/rest/styles/line", []byte("<sld/>"), restdata.SLDMediaType, "", "")
	assert.Equal(t, Success, out.Kind)
	assert.Equal(t, restdata.SLDMediaType, rec.ContentType)
	assert.Equal(t, "<sld/>", rec.Body)
}

func TestURLEncodedOnTheWire(t *testing.T) {
	var rec recorded
	server := recordingServer(&rec)
	defer server.Close()

	out := Request("GET", server.URL+"/rest/layers/topp:major roads.xml?quietOnNotFound=true", nil, "", "", "")
	assert.Equal(t, Success, out.Kind)
	assert.Equal(t, "/rest/layers/topp%3Amajor%20roads.xml?quietOnNotFound=true", rec.RequestURI)
	assert.Equal(t, server.URL+"/rest/layers/topp%3Amajor%20roads.xml?quietOnNotFound=true", out.URL)

	// Already-encoded paths are not encoded twice
	Request("GET", server.URL+"/rest/layers/topp%3Amajor%20roads.xml", nil, "", "", "")
	assert.Equal(t, "/rest/layers/topp%3Amajor%20roads.xml", rec.RequestURI)
}

// lineServer accepts one connection, records its request line, and
// answers 200.  net/http servers reject malformed request targets
// before any handler sees them, so this reads the socket directly.
func lineServer(t *testing.T) (string, <-chan string) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	lines := make(chan string, 1)
	go func() {
		defer l.Close()
		conn, err := l.Accept()
		if err != nil {
			lines <- ""
			return
		}
		defer conn.Close()
		line, _ := bufio.NewReader(conn).ReadString('\n')
		lines <- strings.TrimRight(line, "\r\n")
		_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 0\r\nConnection: close\r\n\r\n"))
	}()
	return "http://" + l.Addr().String(), lines
}

func TestUnencodableURLSentAsGiven(t *testing.T) {
	base, lines := lineServer(t)
	out := Request("GET", base+"/rest/layers/100%zz?quietOnNotFound=true#frag", nil, "", "", "")
	assert.Equal(t, "GET /rest/layers/100%zz?quietOnNotFound=true HTTP/1.1", <-lines)
	assert.Equal(t, Success, out.Kind)
	assert.NoError(t, out.Err)
	assert.Equal(t, base+"/rest/layers/100%zz?quietOnNotFound=true#frag", out.URL)
}

func TestRawRequest(t *testing.T) {
	req, err := rawRequest("PUT", "http://example.com:8080/a/100%zz?x=1", nil)
	require.NoError(t, err)
	assert.Equal(t, "example.com:8080", req.URL.Host)
	assert.Equal(t, "/a/100%zz?x=1", req.URL.RequestURI())

	req, err = rawRequest("GET", "http://example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "/", req.URL.RequestURI())

	_, err = rawRequest("GET", "/a/100%zz", nil)
	assert.Equal(t, errNoOrigin, err)

	out := Request("GET", "/a/100%zz", nil, "", "", "")
	assert.Equal(t, Unreachable, out.Kind)
	assert.Equal(t, errNoOrigin, out.Err)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "fatal", Fatal.String())
	assert.Equal(t, "unreachable", Unreachable.String())
	assert.Equal(t, "invalid", OutcomeKind(17).String())
}

func TestEmptyURL(t *testing.T) {
	_, err := New("", "", "")
	assert.Equal(t, ErrNoHost, err)

	_, err = New("localhost:8080/geoserver", "", "")
	assert.Error(t, err)
}

func TestClientRoots(t *testing.T) {
	c, err := New("http://localhost:8080/geoserver/", "admin", "geoserver")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/geoserver/rest/", c.RESTRoot())
	assert.Equal(t, "http://localhost:8080/geoserver/gwc/rest/", c.GWCRoot())

	u, err := c.URL(restdata.LayerURL, Vars{"layer": "topp:roads"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/geoserver/rest/layers/topp%3Aroads.xml", u)

	c.Format = restdata.FormatJSON
	u, err = c.URL(restdata.StoreURL, Vars{"workspace": "topp", "collection": "datastores", "store": "my shapes"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/geoserver/rest/workspaces/topp/datastores/my%20shapes.json", u)
}
