// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package doctree

// This file maps trees to and from the map server's JSON convention:
//
//     {"layer": {"name": "roads", "@class": "layer",
//                "styles": {"style": [{"name": "a"}, {"name": "b"}]}}}
//
// Leaves are strings, attributes are "@"-prefixed keys, a leaf that
// also has attributes keeps its text under "$", and repeated sibling
// names become arrays.

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ugorji/go/codec"
)

// ErrNotObject is returned from ParseJSON if the input is not a JSON
// object with exactly one member.
var ErrNotObject = errors.New("JSON document must be an object with one member")

// ErrNestedArray is returned from ParseJSON for an array directly
// inside an array, which has no tree form.
var ErrNestedArray = errors.New("arrays may not directly contain arrays")

// orderedMap is encoded by the codec as a JSON object whose members
// appear in slice order: key, value, key, value, ...
type orderedMap []interface{}

// MapBySlice marks orderedMap for the codec.
func (orderedMap) MapBySlice() {}

// MarshalJSON writes the tree rooted at root as a single-member JSON
// object.  Member order follows child order; repeated names are
// grouped into an array at the position of their first occurrence.
func MarshalJSON(root *Node) ([]byte, error) {
	if root == nil || !root.IsSet() {
		return nil, ErrNoRoot
	}
	var out []byte
	encoder := codec.NewEncoderBytes(&out, &codec.JsonHandle{})
	err := encoder.Encode(orderedMap{root.Name, jsonValue(root)})
	return out, err
}

func jsonValue(n *Node) interface{} {
	if n.value != nil && len(n.attrs) == 0 {
		return *n.value
	}
	m := orderedMap{}
	for _, a := range n.attrs {
		m = append(m, "@"+a.Name, a.Value)
	}
	if n.value != nil {
		return append(m, "$", *n.value)
	}

	// Group repeated names, keeping first-occurrence order
	var names []string
	groups := make(map[string][]interface{})
	for _, c := range n.children {
		if !c.IsSet() {
			continue
		}
		if _, seen := groups[c.Name]; !seen {
			names = append(names, c.Name)
		}
		groups[c.Name] = append(groups[c.Name], jsonValue(c))
	}
	for _, name := range names {
		if values := groups[name]; len(values) == 1 {
			m = append(m, name, values[0])
		} else {
			m = append(m, name, values)
		}
	}
	return m
}

// ParseJSON reads a single-member JSON object into a tree.  Object
// members are visited in sorted key order, since the decoder does
// not report the original order; array order is kept.  Null members
// are dropped.  Anything but whitespace after the object is an
// error, as is an array directly inside an array.
func ParseJSON(data []byte) (*Node, error) {
	handle := &codec.JsonHandle{}
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))
	var doc interface{}
	r := bytes.NewReader(data)
	if err := codec.NewDecoder(r, handle).Decode(&doc); err != nil {
		return nil, err
	}
	rest := data[len(data)-r.Len():]
	if len(bytes.TrimSpace(rest)) != 0 {
		return nil, ErrTrailingData
	}
	obj, isObj := doc.(map[string]interface{})
	if !isObj || len(obj) != 1 {
		return nil, ErrNotObject
	}
	for name, value := range obj {
		nodes, err := readJSON(name, value)
		if err != nil {
			return nil, err
		}
		if len(nodes) != 1 {
			return nil, ErrNotObject
		}
		return nodes[0], nil
	}
	return nil, ErrNotObject
}

// readJSON converts one object member into zero or more nodes; an
// array produces one node per element.
func readJSON(name string, value interface{}) ([]*Node, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		var nodes []*Node
		for _, item := range v {
			if _, nested := item.([]interface{}); nested {
				return nil, fmt.Errorf("member %q: %w", name, ErrNestedArray)
			}
			more, err := readJSON(name, item)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, more...)
		}
		return nodes, nil
	case map[string]interface{}:
		n := NewBranch(name)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch {
			case strings.HasPrefix(k, "@"):
				n.SetAttr(k[1:], scalarText(v[k]))
			case k == "$":
				if err := n.SetText(scalarText(v[k])); err != nil {
					return nil, err
				}
			default:
				children, err := readJSON(k, v[k])
				if err != nil {
					return nil, err
				}
				for _, c := range children {
					if err := n.AddChild(c); err != nil {
						return nil, fmt.Errorf("member %q: %w", name, err)
					}
				}
			}
		}
		return []*Node{n}, nil
	default:
		return []*Node{NewLeaf(name, scalarText(v))}, nil
	}
}

func scalarText(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	default:
		return fmt.Sprint(s)
	}
}

// Parse reads either XML or JSON, choosing by the first byte that is
// not whitespace.
func Parse(data []byte) (*Node, error) {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return ParseJSON(data)
	case strings.HasPrefix(trimmed, "<"):
		return ParseXML(data)
	default:
		return nil, ErrNoRoot
	}
}
