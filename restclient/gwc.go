// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
)

// GWCLayerExists returns true if the tile cache has a layer
// configured under this name.
func (c *Client) GWCLayerExists(name string) (bool, error) {
	return c.exists(c.GWCRoot(), restdata.GWCLayerURL, Vars{"layer": name})
}

// GWCLayer reads a tile cache layer, or returns nil if there is none.
func (c *Client) GWCLayer(name string) (*decoder.GWCLayer, error) {
	u, err := c.urlFrom(c.GWCRoot(), restdata.GWCLayerURL, Vars{"layer": name})
	if err != nil {
		return nil, err
	}
	view, err := c.fetch(u)
	if err != nil {
		return nil, err
	}
	return decoder.ReadGWCLayer(view)
}

// SetGWCLayer writes a tile cache layer configuration, replacing any
// existing one.  The document root must be <GeoServerLayer>.
func (c *Client) SetGWCLayer(name string, enc *encoder.Encoder) error {
	if enc.IsEmpty() {
		return ErrEmptyPayload
	}
	u, err := c.urlFrom(c.GWCRoot(), restdata.GWCLayerURL, Vars{"layer": name})
	if err != nil {
		return err
	}
	body, err := c.Format.Marshal(enc.Root())
	if err != nil {
		return err
	}
	return c.Do("PUT", u, body, c.Format.MediaType()).Error()
}

// DeleteGWCLayer removes a tile cache layer configuration and its
// cached tiles.
func (c *Client) DeleteGWCLayer(name string) (bool, error) {
	u, err := c.urlFrom(c.GWCRoot(), restdata.GWCLayerURL, Vars{"layer": name})
	if err != nil {
		return false, err
	}
	return outcomeExists(c.Do("DELETE", u, nil, ""))
}
