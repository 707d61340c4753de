// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"fmt"
	"strings"

	"carvel.dev/pipetpl/pkg/orderedmap"
)

// Loader reads a parameter file into an ordered mapping.
type Loader interface {
	Load(path string) (*orderedmap.Map, error)
}

// TrackedSource lists the distinct keys read from one source file,
// in the order they were first read.
type TrackedSource struct {
	Source string
	Keys   []string
}

// Context is the root of a namespace tree.
// It is not safe for concurrent use; clone it per goroutine.
type Context struct {
	*Dict

	tracking    bool
	tracked     []*TrackedSource
	trackedKeys map[string]map[string]struct{}
}

func NewContext() *Context {
	return newContext(&Dict{meta: Meta{}, items: orderedmap.NewMap()})
}

func NewContextFromMap(raw *orderedmap.Map, meta Meta) (*Context, error) {
	dict, err := newDictFromMap(raw, meta)
	if err != nil {
		return nil, err
	}
	return newContext(dict), nil
}

func newContext(dict *Dict) *Context {
	return &Context{Dict: dict, trackedKeys: map[string]map[string]struct{}{}}
}

// LoadFrom loads path through loader; nodes are attributed to path.
func LoadFrom(loader Loader, path string) (*Context, error) {
	raw, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return NewContextFromMap(raw, NewMeta(path))
}

// Clone copies the node tree so that the result can be mutated freely.
// Nodes keep their provenance; the root and the tracked keys start fresh.
func (c *Context) Clone() *Context {
	return newContext(c.Dict.copyWithMeta(Meta{}))
}

// Pick returns a context holding only the given dotted keys of c.
func (c *Context) Pick(keys ...string) (*Context, error) {
	result := newContext(&Dict{meta: c.meta, items: orderedmap.NewMap()})

	for _, key := range keys {
		node, err := c.Dict.Select(key)
		if err != nil {
			return nil, err
		}

		segments := strings.Split(key, ".")
		parent := result.Dict

		for _, segment := range segments[:len(segments)-1] {
			segment = strings.TrimSpace(segment)
			child, found := parent.Get(segment)
			if !found {
				err := parent.Set(segment, orderedmap.NewMap())
				if err != nil {
					return nil, err
				}
				child, _ = parent.Get(segment)
			}
			childDict, ok := child.(*Dict)
			if !ok {
				return nil, newConflictError(key, "Cannot pick '%s', '%s' is not a map", key, segment)
			}
			parent = childDict
		}

		lastKey := strings.TrimSpace(segments[len(segments)-1])
		if parent.Has(lastKey) {
			return nil, newConflictError(key, "Cannot pick '%s', key already picked", key)
		}
		parent.items.Set(lastKey, node.deepCopy())
	}

	return result, nil
}

// SetItem binds key to raw, replacing any existing binding.
func (c *Context) SetItem(key string, raw interface{}) error {
	return c.Dict.Set(key, raw)
}

// Select looks up a dotted path, recording the read when tracking.
func (c *Context) Select(path string) (Node, error) {
	node, err := c.Dict.Select(path)
	if err != nil {
		return nil, err
	}
	c.track(node)
	return node, nil
}

// Track records every Select made while fn runs.
func (c *Context) Track(fn func() error) error {
	c.tracking = true
	defer func() { c.tracking = false }()
	return fn()
}

func (c *Context) Tracking() bool { return c.tracking }

func (c *Context) track(node Node) {
	if !c.tracking {
		return
	}

	for source, path := range node.Sources() {
		if source == "" {
			continue
		}

		keys, found := c.trackedKeys[source]
		if !found {
			keys = map[string]struct{}{}
			c.trackedKeys[source] = keys
			c.tracked = append(c.tracked, &TrackedSource{Source: source})
		}
		if _, found := keys[path]; found {
			continue
		}
		keys[path] = struct{}{}

		for _, tracked := range c.tracked {
			if tracked.Source == source {
				tracked.Keys = append(tracked.Keys, path)
			}
		}
	}
}

// Tracked returns the reads recorded so far, grouped by source file.
func (c *Context) Tracked() []TrackedSource {
	var result []TrackedSource
	for _, tracked := range c.tracked {
		result = append(result, TrackedSource{
			Source: tracked.Source,
			Keys:   append([]string{}, tracked.Keys...),
		})
	}
	return result
}

// Format interpolates every string in val, returning plain values.
func (c *Context) Format(val interface{}) (interface{}, error) {
	return Resolve(val, c, true)
}

func (c *Context) String() string {
	str, err := Stringify(c.Raw())
	if err != nil {
		return fmt.Sprintf("%v", c.Raw())
	}
	return str
}
