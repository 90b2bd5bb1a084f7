// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package decoder

import (
	"github.com/diffeo/go-geoserver/doctree"
	"github.com/mitchellh/mapstructure"
)

// FieldTag is the struct tag Project reads to map element names to
// struct fields.
const FieldTag = "field"

// Map converts the view's subtree into nested Go values: a leaf
// becomes its string, a branch becomes a map[string]interface{}, and
// repeated child names become a []interface{} in document order.
// Attributes of branches appear under "@"-prefixed keys.  Attributes
// of leaves are not represented, and children with empty text are
// left out, so <abstract/> reads the same as no abstract at all.
func (v *View) Map() interface{} {
	return toValue(v.node)
}

func toValue(n *doctree.Node) interface{} {
	if text, ok := n.Text(); ok {
		return text
	}
	m := make(map[string]interface{}, n.Len()+len(n.Attrs()))
	for _, a := range n.Attrs() {
		m["@"+a.Name] = a.Value
	}
	for _, c := range n.Children() {
		if text, ok := c.Text(); ok && text == "" {
			continue
		}
		value := toValue(c)
		switch prev := m[c.Name].(type) {
		case nil:
			m[c.Name] = value
		case []interface{}:
			m[c.Name] = append(prev, value)
		default:
			m[c.Name] = []interface{}{prev, value}
		}
	}
	return m
}

// Project fills the struct pointed to by out from the view.  Fields
// are matched by their `field:"..."` tag, or by name when untagged,
// and text is converted to the field's type where that is reasonable
// ("true" to bool, "12" to int).  Unmatched elements are ignored.
func (v *View) Project(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          FieldTag,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(v.Map())
}
