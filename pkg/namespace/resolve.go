// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"carvel.dev/pipetpl/pkg/orderedmap"
)

// Resolve interpolates every string found in src, leaving keys and
// non-string scalars untouched. Containers are copied, not modified.
func Resolve(src interface{}, ctx *Context, unwrap bool) (interface{}, error) {
	switch typedSrc := src.(type) {
	case *orderedmap.Map:
		result := orderedmap.NewMap()
		err := typedSrc.IterateErr(func(k, v interface{}) error {
			val, err := Resolve(v, ctx, unwrap)
			if err != nil {
				return err
			}
			result.Set(k, val)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil

	case map[string]interface{}:
		result := map[string]interface{}{}
		for k, v := range typedSrc {
			val, err := Resolve(v, ctx, unwrap)
			if err != nil {
				return nil, err
			}
			result[k] = val
		}
		return result, nil

	case []interface{}:
		result := make([]interface{}, 0, len(typedSrc))
		for _, item := range typedSrc {
			val, err := Resolve(item, ctx, unwrap)
			if err != nil {
				return nil, err
			}
			result = append(result, val)
		}
		return result, nil

	case string:
		return ctx.ResolveString(typedSrc, unwrap)

	default:
		return src, nil
	}
}

// Unwrap replaces nodes found in val with their plain values.
func Unwrap(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case Node:
		return typedVal.Raw()

	case *orderedmap.Map:
		result := orderedmap.NewMap()
		typedVal.Iterate(func(k, v interface{}) {
			result.Set(k, Unwrap(v))
		})
		return result

	case map[string]interface{}:
		result := map[string]interface{}{}
		for k, v := range typedVal {
			result[k] = Unwrap(v)
		}
		return result

	case []interface{}:
		result := make([]interface{}, 0, len(typedVal))
		for _, item := range typedVal {
			result = append(result, Unwrap(item))
		}
		return result

	default:
		return val
	}
}
