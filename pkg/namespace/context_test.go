// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace_test

import (
	"errors"
	"testing"

	"carvel.dev/pipetpl/pkg/files"
	"carvel.dev/pipetpl/pkg/namespace"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMap(t *testing.T, yamlStr string) *orderedmap.Map {
	t.Helper()
	m, err := yamlfmt.DecodeMap([]byte(yamlStr))
	require.NoError(t, err)
	return m
}

func loadContext(t *testing.T, path, yamlStr string) *namespace.Context {
	t.Helper()
	loader := files.NewLoader(files.MemoryTree{path: []byte(yamlStr)})
	ctx, err := namespace.LoadFrom(loader, path)
	require.NoError(t, err)
	return ctx
}

const paramsYAML = `
model:
  lr: 0.01
  layers: [8, 16]
  opt:
    name: adam
models:
- name: a
- name: b
flag: true
epochs: 5
`

func TestMeta(t *testing.T) {
	root := namespace.NewMeta("params.yaml")
	child := root.Child("model").Child("lr")

	assert.Equal(t, "model.lr", child.Path())
	assert.Equal(t, "params.yaml:model.lr", child.String())
	assert.Equal(t, []string{"model", "lr"}, child.DPaths())
	assert.Equal(t, "", root.Path())

	local := namespace.Meta{}.Child("x")
	assert.Equal(t, "<local>:x", local.String())
	assert.Equal(t, "", local.Source())

	// parent is unchanged by deriving children
	sibling := root.Child("epochs")
	assert.Equal(t, "epochs", sibling.Path())
	assert.Equal(t, "model.lr", child.Path())
}

func TestSelect(t *testing.T) {
	ctx := loadContext(t, "params.yaml", paramsYAML)

	node, err := ctx.Select("model.lr")
	require.NoError(t, err)
	assert.Equal(t, 0.01, node.Raw())
	assert.Equal(t, "params.yaml", node.Meta().Source())
	assert.Equal(t, "model.lr", node.Meta().Path())

	node, err = ctx.Select("model.layers.1")
	require.NoError(t, err)
	assert.Equal(t, int64(16), node.Raw())

	node, err = ctx.Select("model.layers.-1")
	require.NoError(t, err)
	assert.Equal(t, int64(16), node.Raw())
	assert.Equal(t, "model.layers.1", node.Meta().Path())

	node, err = ctx.Select(" models . 1 . name ")
	require.NoError(t, err)
	assert.Equal(t, "b", node.Raw())

	node, err = ctx.Select("model.opt")
	require.NoError(t, err)
	assert.IsType(t, &namespace.Dict{}, node)
}

func TestSelectNotFound(t *testing.T) {
	ctx := loadContext(t, "params.yaml", paramsYAML)

	cases := []struct {
		path    string
		key     string
		message string
	}{
		{"missing", "missing", "Could not find 'missing' in {model: "},
		{"model.missing", "missing", "(selecting 'model.missing')"},
		{"model.layers.5", "5", "Could not find '5' in [8, 16] (selecting 'model.layers.5')"},
		{"model.layers.x", "x", "Could not find 'x' in [8, 16]"},
		{"epochs.value", "value", "Could not find 'value' in 5 (selecting 'epochs.value')"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			_, err := ctx.Select(tc.path)
			require.Error(t, err)

			var notFoundErr *namespace.NotFoundError
			require.True(t, errors.As(err, &notFoundErr))
			assert.Equal(t, tc.key, notFoundErr.Key)
			assert.Equal(t, tc.path, notFoundErr.Path)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestConvertDecisionTable(t *testing.T) {
	raw := orderedmap.NewMap()
	raw.Set("null", nil)
	raw.Set("bytes", []byte("abc"))
	raw.Set("int", 3)
	raw.Set("uint8", uint8(3))
	raw.Set("float32", float32(1.5))
	raw.Set("native", map[string]interface{}{"b": 1, "a": 2})
	raw.Set(1, "non-string keys are dropped")
	raw.Set(true, "non-string keys are dropped")

	dict, err := namespace.NewDict(raw, namespace.Meta{})
	require.NoError(t, err)
	assert.Equal(t, []string{"null", "bytes", "int", "uint8", "float32", "native"}, dict.Keys())

	native, found := dict.Get("native")
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, native.(*namespace.Dict).Keys())

	raw = orderedmap.NewMap()
	raw.Set("nested", []interface{}{struct{}{}})

	_, err = namespace.NewDict(raw, namespace.NewMeta("p.yaml"))
	require.Error(t, err)

	var typeErr *namespace.TypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "Unsupported value of type 'struct {}' in 'p.yaml:nested.0'", err.Error())
}

func TestTrackingAsymmetry(t *testing.T) {
	cases := []struct {
		desc     string
		path     string
		expected []namespace.TrackedSource
	}{
		{"list records its own path", "model.layers",
			[]namespace.TrackedSource{{Source: "params.yaml", Keys: []string{"model.layers"}}}},
		{"list item records the item path", "model.layers.0",
			[]namespace.TrackedSource{{Source: "params.yaml", Keys: []string{"model.layers.0"}}}},
		{"dict records nothing", "model.opt", nil},
		{"dict value records its path", "model.opt.name",
			[]namespace.TrackedSource{{Source: "params.yaml", Keys: []string{"model.opt.name"}}}},
		{"dict inside list records nothing", "models.0", nil},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			ctx := loadContext(t, "params.yaml", paramsYAML)

			err := ctx.Track(func() error {
				_, err := ctx.Select(tc.path)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ctx.Tracked())
		})
	}
}

func TestTrackOrderAndScope(t *testing.T) {
	ctx := loadContext(t, "params.yaml", paramsYAML).Clone()
	require.NoError(t, ctx.SetItem("local", "value"))

	_, err := ctx.Select("epochs")
	require.NoError(t, err)
	assert.Nil(t, ctx.Tracked(), "reads outside Track are not recorded")

	err = ctx.Track(func() error {
		for _, path := range []string{"model.lr", "epochs", "model.lr", "local", "flag"} {
			if _, err := ctx.Select(path); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []namespace.TrackedSource{
		{Source: "params.yaml", Keys: []string{"model.lr", "epochs", "flag"}},
	}, ctx.Tracked())

	err = ctx.Track(func() error {
		_, err := ctx.Select("missing")
		return err
	})
	require.Error(t, err)
	assert.False(t, ctx.Tracking(), "tracking ends when fn fails")
}

func TestClone(t *testing.T) {
	ctx := loadContext(t, "params.yaml", paramsYAML)

	clone := ctx.Clone()
	require.NoError(t, clone.SetItem("item", 1))
	require.NoError(t, clone.SetItem("epochs", 10))

	assert.False(t, ctx.Has("item"))
	node, err := ctx.Select("epochs")
	require.NoError(t, err)
	assert.Equal(t, int64(5), node.Raw())

	err = clone.Track(func() error {
		_, err := clone.Select("model.lr")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []namespace.TrackedSource{{Source: "params.yaml", Keys: []string{"model.lr"}}}, clone.Tracked())
	assert.Nil(t, ctx.Tracked())

	sibling := ctx.Clone()
	assert.Nil(t, sibling.Tracked())
	assert.Equal(t, "", clone.Meta().Source())
}

func TestMergeUpdate(t *testing.T) {
	first := loadContext(t, "a.yaml", "lr: 0.1\nmodel:\n  depth: 2\n")
	second := loadContext(t, "b.yaml", "lr: 0.2\n")
	third := loadContext(t, "c.yaml", "model:\n  width: 4\n")

	ctx := namespace.NewContext()
	require.NoError(t, ctx.MergeUpdate(false, first.Dict, third.Dict))
	assert.Equal(t, []string{"lr", "model"}, ctx.Keys())

	width, err := ctx.Select("model.width")
	require.NoError(t, err)
	assert.Equal(t, "c.yaml", width.Meta().Source())

	depth, err := ctx.Select("model.depth")
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", depth.Meta().Source())

	err = ctx.MergeUpdate(false, second.Dict)
	require.Error(t, err)

	var conflictErr *namespace.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, "lr", conflictErr.Key)
	assert.Contains(t, err.Error(), "Cannot overwrite as key 'lr' already exists")

	require.NoError(t, ctx.MergeUpdate(true, second.Dict))
	lr, err := ctx.Select("lr")
	require.NoError(t, err)
	assert.Equal(t, 0.2, lr.Raw())
	assert.Equal(t, "b.yaml", lr.Meta().Source())

	scalar := loadContext(t, "d.yaml", "model: flat\n")
	err = ctx.MergeUpdate(false, scalar.Dict)
	require.Error(t, err)
	assert.True(t, errors.As(err, &conflictErr))
}

func TestPick(t *testing.T) {
	ctx := loadContext(t, "params.yaml", paramsYAML)

	picked, err := ctx.Pick("model.opt.name", "epochs")
	require.NoError(t, err)
	assert.Equal(t, []string{"model", "epochs"}, picked.Keys())
	assert.False(t, picked.Has("flag"))

	node, err := picked.Select("model.opt.name")
	require.NoError(t, err)
	assert.Equal(t, "adam", node.Raw())
	assert.Equal(t, "params.yaml", node.Meta().Source())

	_, err = picked.Select("model.lr")
	require.Error(t, err)

	_, err = ctx.Pick("nope")
	require.Error(t, err)
}
