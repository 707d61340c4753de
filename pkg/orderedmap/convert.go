// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"fmt"
	"sort"
)

type Conversion struct {
	Object interface{}
}

// FromUnorderedMaps converts native Go maps (at any depth) into *Map with
// keys sorted by their string form. Input is not modified.
func (c Conversion) FromUnorderedMaps() interface{} {
	return c.fromUnorderedMaps(c.Object)
}

func (c Conversion) fromUnorderedMaps(object interface{}) interface{} {
	switch typedObj := object.(type) {
	case map[interface{}]interface{}:
		result := NewMap()
		for _, key := range c.sortedMapKeys(c.mapKeysFromInterfaceMap(typedObj)) {
			result.Set(key, c.fromUnorderedMaps(typedObj[key]))
		}
		return result

	case map[string]interface{}:
		result := NewMap()
		for _, key := range c.sortedMapKeys(c.mapKeysFromStringMap(typedObj)) {
			result.Set(key, c.fromUnorderedMaps(typedObj[key.(string)]))
		}
		return result

	case *Map:
		result := NewMap()
		typedObj.Iterate(func(k, v interface{}) {
			result.Set(k, c.fromUnorderedMaps(v))
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnorderedMaps(item)
		}
		return result

	case []map[string]interface{}:
		result := make([]interface{}, len(typedObj))
		for i, item := range typedObj {
			result[i] = c.fromUnorderedMaps(item)
		}
		return result

	default:
		return typedObj
	}
}

func (Conversion) mapKeysFromInterfaceMap(m map[interface{}]interface{}) []interface{} {
	var keys []interface{}
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (Conversion) mapKeysFromStringMap(m map[string]interface{}) []interface{} {
	var keys []interface{}
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (Conversion) sortedMapKeys(keys []interface{}) []interface{} {
	sort.Slice(keys, func(i, j int) bool {
		iStr := fmt.Sprintf("%v", keys[i])
		jStr := fmt.Sprintf("%v", keys[j])
		return iStr < jStr
	})
	return keys
}
