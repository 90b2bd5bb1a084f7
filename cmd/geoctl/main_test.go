// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"bytes"
	"io/ioutil"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diffeo/go-geoserver/memory"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/diffeo/go-geoserver/restserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t      *testing.T
	server *httptest.Server
	dir    string
}

func newFixture(t *testing.T) *fixture {
	dir, err := ioutil.TempDir("", "geoctl")
	require.NoError(t, err)
	return &fixture{
		t:      t,
		server: httptest.NewServer(restserver.NewRouter(memory.New())),
		dir:    dir,
	}
}

func (f *fixture) Close() {
	f.server.Close()
	os.RemoveAll(f.dir)
}

// run runs geoctl against the fixture's server and returns its
// output.
func (f *fixture) run(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	argv := append([]string{"geoctl", "--url", f.server.URL}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func (f *fixture) mustRun(args ...string) string {
	out, err := f.run(args...)
	require.NoError(f.t, err, "geoctl %v: %v", args, out)
	return out
}

func (f *fixture) file(name, content string) string {
	filename := filepath.Join(f.dir, name)
	require.NoError(f.t, ioutil.WriteFile(filename, []byte(content), 0644))
	return filename
}

func TestWorkspaceCommands(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	assert.Equal(t, "false\n", f.mustRun("exists", "workspaces/topp"))
	f.mustRun("workspace", "create", "topp")
	f.mustRun("workspace", "create", "sf")
	assert.Equal(t, "true\n", f.mustRun("exists", "workspaces/topp"))
	assert.Equal(t, "sf\ntopp\n", f.mustRun("workspace", "list"))
	assert.Equal(t, "sf\ntopp\n", f.mustRun("names", "namespaces"))

	assert.Equal(t, "true\n", f.mustRun("workspace", "delete", "sf"))
	assert.Equal(t, "false\n", f.mustRun("workspace", "delete", "sf"))
	assert.Equal(t, "topp\n", f.mustRun("workspace", "list"))
}

func TestDefaultWorkspace(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	config := f.file("geoctl.yaml", "url: http://invalid.example\nworkspace: topp\nlog_level: error\n")
	f.mustRun("--config", config, "workspace", "create")
	assert.Equal(t, "topp\n", f.mustRun("workspace", "list"))

	_, err := f.run("workspace", "create")
	assert.Equal(t, errNoName, err)
}

func TestDocumentCommands(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	f.mustRun("workspace", "create", "topp")
	store := f.file("store.xml", "<dataStore><name>shapes</name><enabled>true</enabled></dataStore>")
	out := f.mustRun("post", "workspaces/topp/datastores", store)
	assert.Equal(t, f.server.URL+"/rest/workspaces/topp/datastores/shapes\n", out)

	ft := f.file("roads.xml", "<featureType><name>roads</name><title>Roads</title></featureType>")
	f.mustRun("post", "workspaces/topp/datastores/shapes/featuretypes", ft)

	out = f.mustRun("get", "layers/topp:roads")
	assert.Contains(t, out, "<defaultStyle><name>generic</name></defaultStyle>")

	f.mustRun("set", "layers/topp:roads", "defaultStyle/name=line", "enabled=false")
	out = f.mustRun("get", "layers/topp:roads")
	assert.Contains(t, out, "<defaultStyle><name>line</name></defaultStyle>")
	assert.Contains(t, out, "<enabled>false</enabled>")
	assert.Contains(t, out, "<type>VECTOR</type>")

	out = f.mustRun("--json", "get", "workspaces/topp/datastores/shapes")
	assert.True(t, strings.HasPrefix(out, `{"dataStore":`), out)

	_, err := f.run("delete", "workspaces/topp")
	assert.Equal(t, 403, restdata.StatusOf(err))
	assert.Equal(t, "true\n", f.mustRun("delete", "--recurse", "workspaces/topp"))
	assert.Equal(t, "false\n", f.mustRun("exists", "layers/topp:roads"))
}

func TestStyleUpload(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	entry := f.file("entry.xml", "<style><name>line</name><filename>line.sld</filename></style>")
	f.mustRun("post", "styles", entry)

	sld := `<StyledLayerDescriptor version="1.0.0"/>`
	f.mustRun("put", "styles/line", f.file("line.sld", sld))
	assert.Equal(t, sld+"\n", f.mustRun("get", "styles/line.sld"))
	assert.Equal(t, "true\n", f.mustRun("delete", "--purge", "all", "styles/line"))
}

func TestGWCPath(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	layer := f.file("gwc.xml", "<GeoServerLayer><enabled>true</enabled></GeoServerLayer>")
	f.mustRun("put", "gwc/layers/topp:roads", layer)
	assert.Equal(t, "true\n", f.mustRun("exists", "gwc/layers/topp:roads"))
	assert.Equal(t, "topp:roads\n", f.mustRun("names", "gwc/layers"))
}

func TestBadArguments(t *testing.T) {
	f := newFixture(t)
	defer f.Close()

	_, err := f.run("get")
	assert.Equal(t, errNoPath, err)

	_, err = f.run("put", "styles/line")
	assert.Error(t, err)

	f.mustRun("workspace", "create", "topp")
	_, err = f.run("set", "workspaces/topp", "isolated")
	assert.Error(t, err)
	_, err = f.run("set", "workspaces/topp", "isolated=")
	assert.Error(t, err)
}
