// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

type Type int

const (
	TypeYAML Type = iota
	TypeJSON
	TypeTOML
)

var (
	jsonExts = []string{".json"}
	tomlExts = []string{".toml"}
)

// TypeOf picks the document format from the path extension.
// Unknown extensions are treated as YAML.
func TypeOf(path string) Type {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case matchesExt(ext, jsonExts):
		return TypeJSON
	case matchesExt(ext, tomlExts):
		return TypeTOML
	default:
		return TypeYAML
	}
}

func matchesExt(ext string, exts []string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Loader reads parameter and pipeline files from a Tree.
// File contents are read once per path; every Load returns a fresh tree.
type Loader struct {
	tree Tree

	sourcesLock sync.Mutex
	sources     map[string]*CachedSource
}

func NewLoader(tree Tree) *Loader {
	return &Loader{tree: tree, sources: map[string]*CachedSource{}}
}

func (l *Loader) Tree() Tree { return l.tree }

func (l *Loader) Load(path string) (*orderedmap.Map, error) {
	src, err := l.source(path)
	if err != nil {
		return nil, err
	}
	return LoadSource(src, TypeOf(path))
}

func (l *Loader) source(path string) (Source, error) {
	l.sourcesLock.Lock()
	defer l.sourcesLock.Unlock()

	key := filepath.Clean(path)
	if src, found := l.sources[key]; found {
		return src, nil
	}

	src, err := l.tree.Open(path)
	if err != nil {
		return nil, err
	}

	cached := NewCachedSource(src)
	l.sources[key] = cached
	return cached, nil
}

// LoadSource decodes src according to typ into an ordered mapping.
func LoadSource(src Source, typ Type) (*orderedmap.Map, error) {
	bs, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %w", src.Description(), err)
	}

	var result *orderedmap.Map

	switch typ {
	case TypeTOML:
		result, err = decodeTOML(bs)
	default:
		// JSON is decoded by the YAML decoder
		result, err = yamlfmt.DecodeMap(bs)
	}
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling %s: %w", src.Description(), err)
	}

	return result, nil
}
