// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"encoding/json"
	"reflect"
)

type Map struct {
	items []MapItem
	// position of items with hashable keys; other keys are found by scanning
	index map[interface{}]int
}

type MapItem struct {
	Key   interface{}
	Value interface{}
}

func NewMap() *Map {
	return &Map{}
}

func NewMapWithItems(items []MapItem) *Map {
	m := &Map{}
	for _, item := range items {
		m.Set(item.Key, item.Value)
	}
	return m
}

func (m *Map) Set(key, value interface{}) {
	if i, found := m.find(key); found {
		m.items[i].Value = value
		return
	}
	m.items = append(m.items, MapItem{key, value})
	if isHashable(key) {
		if m.index == nil {
			m.index = map[interface{}]int{}
		}
		m.index[key] = len(m.items) - 1
	}
}

func (m *Map) Get(key interface{}) (interface{}, bool) {
	if i, found := m.find(key); found {
		return m.items[i].Value, true
	}
	return nil, false
}

func (m *Map) Has(key interface{}) bool {
	_, found := m.find(key)
	return found
}

func (m *Map) Delete(key interface{}) bool {
	i, found := m.find(key)
	if !found {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	m.reindex()
	return true
}

func (m *Map) find(key interface{}) (int, bool) {
	if m == nil {
		return 0, false
	}
	if isHashable(key) {
		i, found := m.index[key]
		return i, found
	}
	for i, item := range m.items {
		if reflect.DeepEqual(item.Key, key) {
			return i, true
		}
	}
	return 0, false
}

func (m *Map) reindex() {
	m.index = nil
	for i, item := range m.items {
		if isHashable(item.Key) {
			if m.index == nil {
				m.index = map[interface{}]int{}
			}
			m.index[item.Key] = i
		}
	}
}

func isHashable(key interface{}) bool {
	if key == nil {
		return true
	}
	return reflect.TypeOf(key).Comparable()
}

func (m *Map) Keys() (keys []interface{}) {
	m.Iterate(func(k, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Items() []MapItem {
	if m == nil {
		return nil
	}
	return append([]MapItem(nil), m.items...)
}

func (m *Map) Iterate(iterFunc func(k, v interface{})) {
	if m == nil {
		return
	}
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) IterateErr(iterFunc func(k, v interface{}) error) error {
	if m == nil {
		return nil
	}
	for _, item := range m.items {
		err := iterFunc(item.Key, item.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// DeepCopy copies nested *Map and []interface{} values; scalars are shared.
func (m *Map) DeepCopy() *Map {
	if m == nil {
		return nil
	}
	result := &Map{items: make([]MapItem, 0, len(m.items))}
	for _, item := range m.items {
		result.items = append(result.items, MapItem{item.Key, DeepCopyValue(item.Value)})
	}
	result.reindex()
	return result
}

func DeepCopyValue(val interface{}) interface{} {
	switch typedVal := val.(type) {
	case *Map:
		return typedVal.DeepCopy()
	case []interface{}:
		result := make([]interface{}, len(typedVal))
		for i, item := range typedVal {
			result[i] = DeepCopyValue(item)
		}
		return result
	default:
		return val
	}
}

// Below methods disallow marshaling of Map directly;
// encoding goes through pkg/yamlfmt which preserves order.
var _ []json.Marshaler = []json.Marshaler{&Map{}}

func (*Map) MarshalYAML() (interface{}, error) { panic("Unexpected marshaling of *orderedmap.Map") }
func (*Map) MarshalJSON() ([]byte, error)      { panic("Unexpected marshaling of *orderedmap.Map") }
