// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"github.com/BurntSushi/toml"
)

// tomlKeyOrder records child key order per parent table path,
// as reported by toml.MetaData.Keys.
type tomlKeyOrder map[string][]string

func newTOMLKeyOrder(md toml.MetaData) tomlKeyOrder {
	result := tomlKeyOrder{}
	seen := map[string]struct{}{}

	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := tomlPath(key[:len(key)-1])
		full := tomlPath(key)
		if _, found := seen[full]; found {
			continue
		}
		seen[full] = struct{}{}
		result[parent] = append(result[parent], key[len(key)-1])
	}
	return result
}

func tomlPath(key []string) string { return strings.Join(key, "\x00") }

func decodeTOML(data []byte) (*orderedmap.Map, error) {
	var raw map[string]interface{}

	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	return newTOMLKeyOrder(md).table(nil, raw), nil
}

func (o tomlKeyOrder) table(path []string, raw map[string]interface{}) *orderedmap.Map {
	result := orderedmap.NewMap()

	for _, key := range o[tomlPath(path)] {
		if val, found := raw[key]; found {
			result.Set(key, o.value(append(append([]string{}, path...), key), val))
		}
	}

	// keys not reported by metadata keep a stable order
	var rest []string
	for key := range raw {
		if !result.Has(key) {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	for _, key := range rest {
		result.Set(key, o.value(append(append([]string{}, path...), key), raw[key]))
	}

	return result
}

func (o tomlKeyOrder) value(path []string, val interface{}) interface{} {
	switch typedVal := val.(type) {
	case map[string]interface{}:
		return o.table(path, typedVal)

	case []map[string]interface{}:
		result := []interface{}{}
		for _, item := range typedVal {
			result = append(result, o.table(path, item))
		}
		return result

	case []interface{}:
		result := []interface{}{}
		for _, item := range typedVal {
			result = append(result, o.value(path, item))
		}
		return result

	case time.Time:
		return typedVal.Format(time.RFC3339Nano)

	case fmt.Stringer:
		// local dates and times
		return typedVal.String()

	default:
		return val
	}
}
