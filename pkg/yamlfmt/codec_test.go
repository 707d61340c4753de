// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlfmt_test

import (
	"testing"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsOrderAndNormalizesInts(t *testing.T) {
	val, err := yamlfmt.Decode([]byte(`
zeta: 1
alpha:
  lr: 0.01
  layers: [3, -2]
flag: true
name: ~
`))
	require.NoError(t, err)

	m, ok := val.(*orderedmap.Map)
	require.True(t, ok)
	assert.Equal(t, []interface{}{"zeta", "alpha", "flag", "name"}, m.Keys())

	zeta, _ := m.Get("zeta")
	assert.Equal(t, int64(1), zeta)

	alpha, _ := m.Get("alpha")
	layers, _ := alpha.(*orderedmap.Map).Get("layers")
	assert.Equal(t, []interface{}{int64(3), int64(-2)}, layers)

	lr, _ := alpha.(*orderedmap.Map).Get("lr")
	assert.Equal(t, 0.01, lr)

	flag, _ := m.Get("flag")
	assert.Equal(t, true, flag)

	name, found := m.Get("name")
	assert.True(t, found)
	assert.Nil(t, name)
}

func TestDecodeMap(t *testing.T) {
	m, err := yamlfmt.DecodeMap([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	_, err = yamlfmt.DecodeMap([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected top level to be a map, but was array")
}

func TestDecodeJSON(t *testing.T) {
	m, err := yamlfmt.DecodeMap([]byte(`{"b": 1, "a": {"c": [1, 2]}}`))
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b", "a"}, m.Keys())
}

func TestFlowString(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("a", 1)
	m.Set("b", []interface{}{2, 3})

	str, err := yamlfmt.FlowString(m)
	require.NoError(t, err)
	assert.Equal(t, "{a: 1, b: [2, 3]}", str)
}

func TestEncodeRoundTripsOrder(t *testing.T) {
	m := orderedmap.NewMap()
	m.Set("z", "last-first")
	m.Set("a", []interface{}{"x"})

	bs, err := yamlfmt.Encode(m)
	require.NoError(t, err)

	decoded, err := yamlfmt.DecodeMap(bs)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"z", "a"}, decoded.Keys())

	bs, err = yamlfmt.EncodeJSON(m)
	require.NoError(t, err)

	decoded, err = yamlfmt.DecodeMap(bs)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"z", "a"}, decoded.Keys())
}
