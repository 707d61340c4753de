// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/pipetpl/pkg/files"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderPicksFormatByExtension(t *testing.T) {
	tree := files.MemoryTree{
		"params.yaml": []byte("b: 1\na: [x, y]\n"),
		"params.yml":  []byte("c: true\n"),
		"config.json": []byte(`{"z": {"y": 2, "x": 1}}`),
		"config.toml": []byte("title = 'demo'\n[train]\nlr = 0.5\nepochs = 10\n"),
		"noext":       []byte("k: v\n"),
	}
	loader := files.NewLoader(tree)

	m, err := loader.Load("params.yaml")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"b", "a"}, m.Keys())

	m, err = loader.Load("params.yml")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"c"}, m.Keys())

	m, err = loader.Load("config.json")
	require.NoError(t, err)
	z, _ := m.Get("z")
	assert.Equal(t, []interface{}{"y", "x"}, z.(*orderedmap.Map).Keys())

	m, err = loader.Load("config.toml")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"title", "train"}, m.Keys())
	train, _ := m.Get("train")
	assert.Equal(t, []interface{}{"lr", "epochs"}, train.(*orderedmap.Map).Keys())
	epochs, _ := train.(*orderedmap.Map).Get("epochs")
	assert.Equal(t, int64(10), epochs)

	m, err = loader.Load("noext")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"k"}, m.Keys())
}

func TestLoaderTOMLArrayOfTables(t *testing.T) {
	tree := files.MemoryTree{
		"p.toml": []byte("[[models]]\nname = 'a'\nsize = 1\n\n[[models]]\nname = 'b'\nsize = 2\n"),
	}

	m, err := files.NewLoader(tree).Load("p.toml")
	require.NoError(t, err)

	models, _ := m.Get("models")
	require.Len(t, models, 2)

	second := models.([]interface{})[1].(*orderedmap.Map)
	assert.Equal(t, []interface{}{"name", "size"}, second.Keys())
	name, _ := second.Get("name")
	assert.Equal(t, "b", name)
}

func TestLoaderReturnsFreshTrees(t *testing.T) {
	loader := files.NewLoader(files.MemoryTree{"p.yaml": []byte("a: 1\n")})

	first, err := loader.Load("p.yaml")
	require.NoError(t, err)
	first.Set("a", 2)

	second, err := loader.Load("./p.yaml")
	require.NoError(t, err)
	val, _ := second.Get("a")
	assert.Equal(t, int64(1), val)
}

func TestLoaderErrors(t *testing.T) {
	loader := files.NewLoader(files.MemoryTree{
		"list.yaml": []byte("- 1\n"),
		"bad.json":  []byte(`{"a": `),
	})

	_, err := loader.Load("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected file 'missing.yaml' to exist")

	_, err = loader.Load("list.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling file 'list.yaml'")

	_, err = loader.Load("bad.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unmarshaling file 'bad.json'")
}

func TestLocalTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "params.yaml"), []byte("x: 1\n"), 0600))

	tree := files.LocalTree{Root: dir}
	assert.True(t, tree.Exists("sub/params.yaml"))
	assert.False(t, tree.Exists("sub"))
	assert.False(t, tree.Exists("params.yaml"))

	src, err := tree.Open("sub/params.yaml")
	require.NoError(t, err)

	relPath, err := src.RelativePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("sub", "params.yaml"), relPath)

	_, err = tree.Open("sub")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to not be a directory")

	m, err := files.NewLoader(tree).Load("sub/params.yaml")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x"}, m.Keys())
}

type countingSource struct {
	files.Source
	reads int
}

func (s *countingSource) Bytes() ([]byte, error) {
	s.reads++
	return s.Source.Bytes()
}

func TestCachedSourceReadsOnce(t *testing.T) {
	src := &countingSource{Source: files.NewBytesSource("a.yaml", []byte("a: 1"))}
	cached := files.NewCachedSource(src)

	for i := 0; i < 3; i++ {
		bs, err := cached.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "a: 1", string(bs))
	}
	assert.Equal(t, 1, src.reads)
	assert.Equal(t, "file 'a.yaml'", cached.Description())
}
