// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"net/url"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
)

// styleURL picks the global or per-workspace style templates.
func styleURL(workspace, name string) (string, Vars) {
	vars := Vars{}
	if name != "" {
		vars["style"] = name
	}
	if workspace == "" {
		if name == "" {
			return restdata.StylesURL, vars
		}
		return restdata.StyleURL, vars
	}
	vars["workspace"] = workspace
	if name == "" {
		return restdata.WorkspaceStylesURL, vars
	}
	return restdata.WorkspaceStyleURL, vars
}

// StyleExists returns true if the style exists.  An empty workspace
// means a global style.
func (c *Client) StyleExists(workspace, name string) (bool, error) {
	template, vars := styleURL(workspace, name)
	return c.Exists(template, vars)
}

// Style reads a style's catalog entry, or returns nil if it does not
// exist.
func (c *Client) Style(workspace, name string) (*decoder.Style, error) {
	template, vars := styleURL(workspace, name)
	view, err := c.Get(template, vars)
	if err != nil {
		return nil, err
	}
	return decoder.ReadStyle(view)
}

// Styles lists the names of the global styles, or of one workspace's
// styles.
func (c *Client) Styles(workspace string) ([]string, error) {
	template, vars := styleURL(workspace, "")
	return c.Names(template, vars)
}

// CreateStyle creates a catalog entry for a style whose SLD body will
// live in filename.  Upload the body with UploadStyle.
func (c *Client) CreateStyle(workspace, name, filename string) error {
	enc := encoder.New("style")
	if err := enc.Set("name", name); err != nil {
		return err
	}
	if err := enc.Set("filename", filename); err != nil {
		return err
	}
	template, vars := styleURL(workspace, "")
	_, err := c.Post(template, vars, enc)
	return err
}

// UploadStyle replaces the SLD body of an existing style.
// contentType is restdata.SLDMediaType for SLD 1.0 or
// restdata.SE11MediaType for SLD 1.1.
func (c *Client) UploadStyle(workspace, name string, sld []byte, contentType string) error {
	template, vars := styleURL(workspace, name)
	u, err := restdata.Expand(template, vars)
	if err != nil {
		return err
	}
	// The body endpoint has no format suffix.
	out := c.Do("PUT", c.RESTRoot()+u, sld, contentType)
	return out.Error()
}

// DeleteStyle removes a style.  If purge is set the SLD file is
// removed from the server's data directory too.
func (c *Client) DeleteStyle(workspace, name string, purge bool) (bool, error) {
	template, vars := styleURL(workspace, name)
	query := url.Values{}
	if purge {
		query.Set(restdata.PurgeParam, "true")
	}
	return c.Delete(template, vars, query)
}
