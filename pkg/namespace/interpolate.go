// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"fmt"
	"strings"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/texttemplate"
)

// ResolveString interpolates s. A string that is exactly one expression
// evaluates to the selected node, keeping its type; otherwise every
// expression is stringified in place.
//
// Without unwrap the result is a Node so that callers can inspect its
// provenance.
func (c *Context) ResolveString(s string, unwrap bool) (interface{}, error) {
	root := texttemplate.Parse(s)

	if root.IsExact() {
		node, err := c.Select(root.Items[0].(*texttemplate.NodeCode).Path)
		if err != nil {
			return nil, err
		}
		if unwrap {
			return node.Raw(), nil
		}
		return node, nil
	}

	var result strings.Builder

	for _, item := range root.Items {
		switch typedItem := item.(type) {
		case *texttemplate.NodeText:
			result.WriteString(typedItem.Content)

		case *texttemplate.NodeCode:
			node, err := c.Select(typedItem.Path)
			if err != nil {
				return nil, err
			}
			str, err := Stringify(node)
			if err != nil {
				return nil, fmt.Errorf("Interpolating '%s' in '%s': %w", typedItem.Content, s, err)
			}
			result.WriteString(str)

		default:
			panic(fmt.Sprintf("Unknown string template piece %T", typedItem))
		}
	}

	str := texttemplate.Unescape(result.String())
	if unwrap {
		return str, nil
	}
	return NewValue(str, Meta{}), nil
}

// Set adds local bindings in order. A key may not shadow an existing one.
// String values must be either a single expression or plain text;
// collections must be flat and may not contain expressions.
func (c *Context) Set(bindings *orderedmap.Map) error {
	return bindings.IterateErr(func(k, v interface{}) error {
		key, ok := k.(string)
		if !ok {
			return nil
		}

		if c.Has(key) {
			return newConflictError(key, "Cannot set '%s', key already exists", key)
		}

		val, err := c.resolveBinding(key, v)
		if err != nil {
			return err
		}

		return c.SetItem(key, val)
	})
}

func (c *Context) resolveBinding(key string, val interface{}) (interface{}, error) {
	switch typedVal := val.(type) {
	case string:
		root := texttemplate.Parse(typedVal)
		if root.HasCode() && !root.IsExact() {
			return nil, newConflictError(key,
				"Cannot set '%s', joining string with interpolated string is not supported", key)
		}
		return c.ResolveString(typedVal, false)

	case *orderedmap.Map:
		err := typedVal.IterateErr(func(_, item interface{}) error {
			return checkFlatItem(key, "dict", item)
		})
		if err != nil {
			return nil, err
		}
		return typedVal, nil

	case map[string]interface{}:
		for _, item := range typedVal {
			if err := checkFlatItem(key, "dict", item); err != nil {
				return nil, err
			}
		}
		return typedVal, nil

	case []interface{}:
		for _, item := range typedVal {
			if err := checkFlatItem(key, "list", item); err != nil {
				return nil, err
			}
		}
		return typedVal, nil

	default:
		return val, nil
	}
}

func checkFlatItem(key, kind string, item interface{}) error {
	switch typedItem := item.(type) {
	case *orderedmap.Map, map[string]interface{}, []interface{}, *Dict, *List:
		return newConflictError(key, "Cannot set '%s', has nested dict/list", key)

	case string:
		if texttemplate.Parse(typedItem).HasCode() {
			return newConflictError(key,
				"Cannot set '%s', having interpolation inside %s is not supported", key, kind)
		}
	}
	return nil
}
