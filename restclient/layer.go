// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"net/url"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
)

// Layer reads a layer, or returns nil if it does not exist.  name may
// be qualified with a workspace prefix, "topp:roads".
func (c *Client) Layer(name string) (*decoder.Layer, error) {
	view, err := c.Get(restdata.LayerURL, Vars{"layer": name})
	if err != nil {
		return nil, err
	}
	return decoder.ReadLayer(view)
}

// LayerExists returns true if the layer exists.
func (c *Client) LayerExists(name string) (bool, error) {
	return c.Exists(restdata.LayerURL, Vars{"layer": name})
}

// Layers lists the names of all layers.
func (c *Client) Layers() ([]string, error) {
	return c.Names(restdata.LayersURL, Vars{})
}

// SetDefaultStyle changes a layer's default style, leaving all of its
// other settings alone.
func (c *Client) SetDefaultStyle(layer, style string) error {
	enc := encoder.New("layer")
	if err := enc.Set("defaultStyle/name", style); err != nil {
		return err
	}
	return c.Put(restdata.LayerURL, Vars{"layer": layer}, enc)
}

// SetLayerEnabled turns a layer on or off.
func (c *Client) SetLayerEnabled(layer string, enabled bool) error {
	enc := encoder.New("layer")
	if err := enc.SetBool("enabled", enabled); err != nil {
		return err
	}
	return c.Put(restdata.LayerURL, Vars{"layer": layer}, enc)
}

// DeleteLayer removes a layer.  The published resource stays unless
// recurse is set.
func (c *Client) DeleteLayer(name string, recurse bool) (bool, error) {
	query := url.Values{}
	if recurse {
		query.Set(restdata.RecurseParam, "true")
	}
	return c.Delete(restdata.LayerURL, Vars{"layer": name}, query)
}

// LayerGroup reads a layer group, or returns nil if it does not exist.
func (c *Client) LayerGroup(name string) (*decoder.LayerGroup, error) {
	view, err := c.Get(restdata.LayerGroupURL, Vars{"group": name})
	if err != nil {
		return nil, err
	}
	return decoder.ReadLayerGroup(view)
}

// LayerGroups lists the names of all global layer groups.
func (c *Client) LayerGroups() ([]string, error) {
	return c.Names(restdata.LayerGroupsURL, Vars{})
}

// CreateLayerGroup creates a layer group drawing layers in order, each
// with the style at the same index; an empty style name means the
// layer's default.
func (c *Client) CreateLayerGroup(name string, layers, styles []string) error {
	enc := encoder.New("layerGroup")
	if err := enc.Set("name", name); err != nil {
		return err
	}
	published, err := enc.SetChild("publishables")
	if err != nil {
		return err
	}
	styleList, err := enc.SetChild("styles")
	if err != nil {
		return err
	}
	for i, layer := range layers {
		item, err := published.AddChild("published")
		if err != nil {
			return err
		}
		item.SetAttr("type", "layer")
		if err := item.Set("name", layer); err != nil {
			return err
		}
		style, err := styleList.AddChild("style")
		if err != nil {
			return err
		}
		if i < len(styles) {
			if err := style.Set("name", styles[i]); err != nil {
				return err
			}
		}
	}
	_, err = c.Post(restdata.LayerGroupsURL, Vars{}, enc)
	return err
}

// DeleteLayerGroup removes a layer group.
func (c *Client) DeleteLayerGroup(name string) (bool, error) {
	return c.Delete(restdata.LayerGroupURL, Vars{"group": name}, nil)
}
