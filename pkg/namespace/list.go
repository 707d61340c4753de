// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"strconv"
)

type List struct {
	meta  Meta
	items []Node
}

func NewList(raw []interface{}, meta Meta) (*List, error) {
	return newListFromSlice(raw, meta)
}

func newListFromSlice(raw []interface{}, meta Meta) (*List, error) {
	l := &List{meta: meta}
	for _, item := range raw {
		if err := l.Append(item); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *List) Meta() Meta { return l.meta }

// Sources reports the list itself, even when one of its items is read.
func (l *List) Sources() map[string]string { return map[string]string{l.meta.source: l.meta.Path()} }

func (l *List) Len() int { return len(l.items) }

func (l *List) Items() []Node { return append([]Node{}, l.items...) }

func (l *List) Append(raw interface{}) error {
	node, err := convert(l.meta, strconv.Itoa(len(l.items)), raw)
	if err != nil {
		return err
	}
	l.items = append(l.items, node)
	return nil
}

// Index supports negative indexes counting from the end.
func (l *List) Index(idx int) (Node, bool) {
	if idx < 0 {
		idx += len(l.items)
	}
	if idx < 0 || idx >= len(l.items) {
		return nil, false
	}
	return l.items[idx], true
}

func (l *List) Select(path string) (Node, error) {
	key, rest := splitPath(path)

	idx, err := strconv.Atoi(key)
	if err != nil {
		return nil, &NotFoundError{Key: key, Path: path, Content: describe(l)}
	}

	node, found := l.Index(idx)
	if !found {
		return nil, &NotFoundError{Key: key, Path: path, Content: describe(l)}
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

func (l *List) Raw() interface{} {
	result := []interface{}{}
	for _, item := range l.items {
		result = append(result, item.Raw())
	}
	return result
}

func (l *List) deepCopy() Node {
	result := &List{meta: l.meta}
	for _, item := range l.items {
		result.items = append(result.items, item.deepCopy())
	}
	return result
}
