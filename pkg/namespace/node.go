// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"fmt"
	"strings"

	"carvel.dev/pipetpl/pkg/orderedmap"
)

type Node interface {
	Meta() Meta
	// Sources reports which file keys a read of this node depends on,
	// keyed by source file.
	Sources() map[string]string
	Select(path string) (Node, error)
	// Raw returns the plain value, with containers converted to
	// *orderedmap.Map and []interface{}.
	Raw() interface{}

	deepCopy() Node
}

var _ = []Node{&Value{}, &Dict{}, &List{}}

type Value struct {
	value interface{}
	meta  Meta
}

func NewValue(value interface{}, meta Meta) *Value { return &Value{value, meta} }

func (v *Value) Value() interface{}         { return v.value }
func (v *Value) Meta() Meta                 { return v.meta }
func (v *Value) Raw() interface{}           { return v.value }
func (v *Value) Sources() map[string]string { return map[string]string{v.meta.source: v.meta.Path()} }

func (v *Value) Select(path string) (Node, error) {
	key, _ := splitPath(path)
	return nil, &NotFoundError{Key: key, Path: path, Content: describe(v)}
}

func (v *Value) String() string {
	str, err := Stringify(v.value)
	if err != nil {
		return fmt.Sprintf("%v", v.value)
	}
	return str
}

func (v *Value) deepCopy() Node {
	if bs, ok := v.value.([]byte); ok {
		return &Value{append([]byte{}, bs...), v.meta}
	}
	return &Value{v.value, v.meta}
}

// convert places a raw value under key of a container with parentMeta.
func convert(parentMeta Meta, key string, raw interface{}) (Node, error) {
	meta := parentMeta.Child(key)

	switch typedRaw := raw.(type) {
	case nil, bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return &Value{raw, meta}, nil

	case *Value:
		if typedRaw.meta.source == "" {
			return &Value{typedRaw.value, meta}, nil
		}
		return typedRaw.deepCopy(), nil

	case Node:
		return typedRaw.deepCopy(), nil

	case *orderedmap.Map:
		return newDictFromMap(typedRaw, meta)

	case map[string]interface{}:
		ordered := orderedmap.Conversion{Object: typedRaw}.FromUnorderedMaps()
		return newDictFromMap(ordered.(*orderedmap.Map), meta)

	case []interface{}:
		return newListFromSlice(typedRaw, meta)

	default:
		return nil, &TypeError{
			Value:   raw,
			Message: fmt.Sprintf("Unsupported value of type '%T' in '%s'", raw, meta),
		}
	}
}

// splitPath splits off the first path segment.
func splitPath(path string) (string, string) {
	pieces := strings.SplitN(path, ".", 2)
	key := strings.TrimSpace(pieces[0])
	if len(pieces) == 1 {
		return key, ""
	}
	return key, pieces[1]
}

func describe(node Node) string {
	str, err := Stringify(node.Raw())
	if err != nil {
		return fmt.Sprintf("%v", node.Raw())
	}
	return str
}
