// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"net/url"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
)

// WorkspaceExists returns true if the named workspace exists.
func (c *Client) WorkspaceExists(name string) (bool, error) {
	return c.Exists(restdata.WorkspaceURL, Vars{"workspace": name})
}

// Workspace reads a workspace, or returns nil if it does not exist.
func (c *Client) Workspace(name string) (*decoder.Workspace, error) {
	view, err := c.Get(restdata.WorkspaceURL, Vars{"workspace": name})
	if err != nil {
		return nil, err
	}
	return decoder.ReadWorkspace(view)
}

// Workspaces lists the names of all workspaces.
func (c *Client) Workspaces() ([]string, error) {
	return c.Names(restdata.WorkspacesURL, Vars{})
}

// CreateWorkspace creates a workspace.  An isolated workspace is not
// visible through the global services.
func (c *Client) CreateWorkspace(name string, isolated bool) error {
	enc := encoder.New("workspace")
	if err := enc.Set("name", name); err != nil {
		return err
	}
	if isolated {
		if err := enc.SetBool("isolated", true); err != nil {
			return err
		}
	}
	_, err := c.Post(restdata.WorkspacesURL, Vars{}, enc)
	return err
}

// CreateNamespace creates a namespace with the given prefix and URI.
// The server creates the matching workspace along with it.
func (c *Client) CreateNamespace(prefix, uri string) error {
	enc := encoder.New("namespace")
	if err := enc.Set("prefix", prefix); err != nil {
		return err
	}
	if err := enc.Set("uri", uri); err != nil {
		return err
	}
	_, err := c.Post(restdata.NamespacesURL, Vars{}, enc)
	return err
}

// Namespace reads a namespace, or returns nil if it does not exist.
func (c *Client) Namespace(prefix string) (*decoder.Namespace, error) {
	view, err := c.Get(restdata.NamespaceURL, Vars{"namespace": prefix})
	if err != nil {
		return nil, err
	}
	return decoder.ReadNamespace(view)
}

// DeleteWorkspace removes a workspace.  Unless recurse is set, the
// server refuses to remove a workspace that still holds stores or
// styles.  Returns false if there was no such workspace.
func (c *Client) DeleteWorkspace(name string, recurse bool) (bool, error) {
	query := url.Values{}
	if recurse {
		query.Set(restdata.RecurseParam, "true")
	}
	return c.Delete(restdata.WorkspaceURL, Vars{"workspace": name}, query)
}
