// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"carvel.dev/pipetpl/pkg/orderedmap"
)

// Dict maps string keys to nodes in insertion order.
type Dict struct {
	meta  Meta
	items *orderedmap.Map
}

func NewDict(raw *orderedmap.Map, meta Meta) (*Dict, error) {
	return newDictFromMap(raw, meta)
}

func newDictFromMap(raw *orderedmap.Map, meta Meta) (*Dict, error) {
	d := &Dict{meta: meta, items: orderedmap.NewMap()}
	err := raw.IterateErr(func(k, v interface{}) error {
		return d.Set(k, v)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dict) Meta() Meta { return d.meta }

// Sources is empty; only children of a Dict are attributed.
func (d *Dict) Sources() map[string]string { return map[string]string{} }

func (d *Dict) Len() int { return d.items.Len() }

func (d *Dict) Has(key string) bool { return d.items.Has(key) }

func (d *Dict) Get(key string) (Node, bool) {
	val, found := d.items.Get(key)
	if !found {
		return nil, false
	}
	return val.(Node), true
}

func (d *Dict) Keys() []string {
	var result []string
	d.items.Iterate(func(k, _ interface{}) {
		result = append(result, k.(string))
	})
	return result
}

// Set converts raw and stores it under key. Non-string keys are ignored
// since expressions can only address string keys.
func (d *Dict) Set(key interface{}, raw interface{}) error {
	typedKey, ok := key.(string)
	if !ok {
		return nil
	}
	node, err := convert(d.meta, typedKey, raw)
	if err != nil {
		return err
	}
	d.items.Set(typedKey, node)
	return nil
}

func (d *Dict) Delete(key string) bool { return d.items.Delete(key) }

func (d *Dict) Select(path string) (Node, error) {
	key, rest := splitPath(path)

	node, found := d.Get(key)
	if !found {
		return nil, &NotFoundError{Key: key, Path: path, Content: describe(d)}
	}
	if rest == "" {
		return node, nil
	}

	result, err := node.Select(rest)
	if err != nil {
		return nil, withFullPath(err, path)
	}
	return result, nil
}

func (d *Dict) Raw() interface{} {
	result := orderedmap.NewMap()
	d.items.Iterate(func(k, v interface{}) {
		result.Set(k, v.(Node).Raw())
	})
	return result
}

func (d *Dict) deepCopy() Node { return d.copyWithMeta(d.meta) }

func (d *Dict) copyWithMeta(meta Meta) *Dict {
	result := &Dict{meta: meta, items: orderedmap.NewMap()}
	d.items.Iterate(func(k, v interface{}) {
		result.items.Set(k, v.(Node).deepCopy())
	})
	return result
}

// withFullPath makes nested NotFoundError's report the outermost path.
func withFullPath(err error, path string) error {
	if typedErr, ok := err.(*NotFoundError); ok {
		return &NotFoundError{Key: typedErr.Key, Path: path, Content: typedErr.Content}
	}
	return err
}
