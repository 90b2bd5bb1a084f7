// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"fmt"
	"net/url"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restdata"
)

// ErrNotStoreKind is returned when a store operation is given a kind
// that is not a store.
type ErrNotStoreKind struct {
	Kind decoder.Kind
}

func (e ErrNotStoreKind) Error() string {
	return fmt.Sprintf("%v is not a kind of store", e.Kind)
}

// resourceKind returns the kind of resource a store of kind k
// publishes.
func resourceKind(k decoder.Kind) decoder.Kind {
	switch k {
	case decoder.DataStoreKind:
		return decoder.FeatureTypeKind
	case decoder.CoverageStoreKind:
		return decoder.CoverageKind
	case decoder.WMSStoreKind:
		return decoder.WMSLayerKind
	case decoder.WMTSStoreKind:
		return decoder.WMTSLayerKind
	}
	return decoder.UnknownKind
}

func storeVars(workspace string, kind decoder.Kind, store string) (Vars, error) {
	if !kind.IsStore() {
		return nil, ErrNotStoreKind{Kind: kind}
	}
	vars := Vars{"workspace": workspace, "collection": kind.Collection()}
	if store != "" {
		vars["store"] = store
	}
	return vars, nil
}

func resourceVars(workspace string, kind decoder.Kind, store, resource string) (Vars, error) {
	vars, err := storeVars(workspace, kind, store)
	if err != nil {
		return nil, err
	}
	vars["resources"] = resourceKind(kind).Collection()
	if resource != "" {
		vars["resource"] = resource
	}
	return vars, nil
}

// StoreExists returns true if the named store of the given kind
// exists in a workspace.
func (c *Client) StoreExists(workspace string, kind decoder.Kind, name string) (bool, error) {
	vars, err := storeVars(workspace, kind, name)
	if err != nil {
		return false, err
	}
	return c.Exists(restdata.StoreURL, vars)
}

// Store reads a store, or returns nil if it does not exist.
func (c *Client) Store(workspace string, kind decoder.Kind, name string) (*decoder.Store, error) {
	vars, err := storeVars(workspace, kind, name)
	if err != nil {
		return nil, err
	}
	view, err := c.Get(restdata.StoreURL, vars)
	if err != nil {
		return nil, err
	}
	return decoder.ReadStore(view)
}

// Stores lists the names of the stores of one kind in a workspace.
func (c *Client) Stores(workspace string, kind decoder.Kind) ([]string, error) {
	vars, err := storeVars(workspace, kind, "")
	if err != nil {
		return nil, err
	}
	return c.Names(restdata.StoresURL, vars)
}

// CreateStore creates a store from a document whose root element
// matches kind, such as encoder.New("dataStore").
func (c *Client) CreateStore(workspace string, kind decoder.Kind, enc *encoder.Encoder) error {
	vars, err := storeVars(workspace, kind, "")
	if err != nil {
		return err
	}
	_, err = c.Post(restdata.StoresURL, vars, enc)
	return err
}

// UpdateStore changes the fields present in enc on an existing store.
func (c *Client) UpdateStore(workspace string, kind decoder.Kind, name string, enc *encoder.Encoder) error {
	vars, err := storeVars(workspace, kind, name)
	if err != nil {
		return err
	}
	return c.Put(restdata.StoreURL, vars, enc)
}

// DeleteStore removes a store.  Unless recurse is set, the server
// refuses to remove a store that still publishes resources.
func (c *Client) DeleteStore(workspace string, kind decoder.Kind, name string, recurse bool) (bool, error) {
	vars, err := storeVars(workspace, kind, name)
	if err != nil {
		return false, err
	}
	query := url.Values{}
	if recurse {
		query.Set(restdata.RecurseParam, "true")
	}
	return c.Delete(restdata.StoreURL, vars, query)
}

// Resource reads a resource published by a store: a feature type for
// a data store, a coverage for a coverage store, and so on.
func (c *Client) Resource(workspace string, kind decoder.Kind, store, name string) (*decoder.Resource, error) {
	vars, err := resourceVars(workspace, kind, store, name)
	if err != nil {
		return nil, err
	}
	view, err := c.Get(restdata.ResourceURL, vars)
	if err != nil {
		return nil, err
	}
	return decoder.ReadResource(view)
}

// Resources lists the names of the resources a store publishes.
func (c *Client) Resources(workspace string, kind decoder.Kind, store string) ([]string, error) {
	vars, err := resourceVars(workspace, kind, store, "")
	if err != nil {
		return nil, err
	}
	return c.Names(restdata.ResourcesURL, vars)
}

// PublishResource creates a resource in a store from a document whose
// root element matches the store's resource kind.
func (c *Client) PublishResource(workspace string, kind decoder.Kind, store string, enc *encoder.Encoder) error {
	vars, err := resourceVars(workspace, kind, store, "")
	if err != nil {
		return err
	}
	_, err = c.Post(restdata.ResourcesURL, vars, enc)
	return err
}

// UpdateResource changes the fields present in enc on a resource.
func (c *Client) UpdateResource(workspace string, kind decoder.Kind, store, name string, enc *encoder.Encoder) error {
	vars, err := resourceVars(workspace, kind, store, name)
	if err != nil {
		return err
	}
	return c.Put(restdata.ResourceURL, vars, enc)
}
