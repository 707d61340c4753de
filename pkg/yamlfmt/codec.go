// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlfmt

import (
	"fmt"
	"math"
	"strings"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"github.com/goccy/go-yaml"
)

// Decode parses the first YAML document in data. JSON input is accepted as
// it is a subset of YAML.
func Decode(data []byte) (interface{}, error) {
	var val interface{}
	err := yaml.UnmarshalWithOptions(data, &val, yaml.UseOrderedMap())
	if err != nil {
		return nil, err
	}
	return fromLowYAML(val), nil
}

// DecodeMap is Decode for documents whose top level must be a mapping.
// An empty document decodes into an empty map.
func DecodeMap(data []byte) (*orderedmap.Map, error) {
	val, err := Decode(data)
	if err != nil {
		return nil, err
	}
	switch typedVal := val.(type) {
	case nil:
		return orderedmap.NewMap(), nil
	case *orderedmap.Map:
		return typedVal, nil
	default:
		return nil, fmt.Errorf("Expected top level to be a map, but was %s", TypeName(val))
	}
}

// Encode prints val as block-style YAML.
func Encode(val interface{}) ([]byte, error) {
	return yaml.MarshalWithOptions(toLowYAML(val), yaml.IndentSequence(true))
}

// EncodeJSON prints val as JSON keeping map order.
func EncodeJSON(val interface{}) ([]byte, error) {
	return yaml.MarshalWithOptions(toLowYAML(val), yaml.JSON())
}

// FlowString renders val on a single line (eg {a: 1, b: [2, 3]}).
func FlowString(val interface{}) (string, error) {
	bs, err := yaml.MarshalWithOptions(toLowYAML(val), yaml.Flow(true))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(bs), "\n"), nil
}

func TypeName(val interface{}) string {
	switch val.(type) {
	case nil:
		return "null"
	case *orderedmap.Map:
		return "map"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	default:
		return fmt.Sprintf("%T", val)
	}
}

func fromLowYAML(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case yaml.MapSlice:
		result := orderedmap.NewMap()
		for _, item := range typedVal {
			result.Set(fromLowYAML(item.Key), fromLowYAML(item.Value))
		}
		return result

	case map[string]interface{}, map[interface{}]interface{}:
		return fromLowYAML(orderedmap.Conversion{Object: typedVal}.FromUnorderedMaps())

	case *orderedmap.Map:
		result := orderedmap.NewMap()
		typedVal.Iterate(func(k, v interface{}) {
			result.Set(k, fromLowYAML(v))
		})
		return result

	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = fromLowYAML(item)
		}
		return result

	case uint64:
		if typedVal <= math.MaxInt64 {
			return int64(typedVal)
		}
		return typedVal

	case int:
		return int64(typedVal)

	default:
		return val
	}
}

func toLowYAML(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case map[interface{}]interface{}:
		panic("Expected *orderedmap.Map instead of map[interface{}]interface{} in toLowYAML")

	case map[string]interface{}:
		panic("Expected *orderedmap.Map instead of map[string]interface{} in toLowYAML")

	case *orderedmap.Map:
		result := yaml.MapSlice{}
		typedVal.Iterate(func(k, v interface{}) {
			result = append(result, yaml.MapItem{
				Key:   k,
				Value: toLowYAML(v),
			})
		})
		return result

	case []interface{}:
		result := []interface{}{}
		for _, item := range typedVal {
			result = append(result, toLowYAML(item))
		}
		return result

	default:
		return val
	}
}
