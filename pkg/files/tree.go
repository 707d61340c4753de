// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Tree is the file system view used to resolve a pipeline.
// Paths are slash or OS separated and relative to the tree.
type Tree interface {
	Exists(path string) bool
	Open(path string) (Source, error)
}

var _ []Tree = []Tree{LocalTree{}, MemoryTree{}}

// LocalTree reads files relative to Root. Empty Root uses paths as given.
type LocalTree struct {
	Root string
}

func (t LocalTree) fullPath(path string) string {
	if t.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(t.Root, path)
}

func (t LocalTree) Exists(path string) bool {
	fileInfo, err := os.Stat(t.fullPath(path))
	if err != nil {
		return false
	}
	return !fileInfo.IsDir()
}

func (t LocalTree) Open(path string) (Source, error) {
	fullPath := t.fullPath(path)

	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("Checking file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
	}

	return NewLocalSource(fullPath, t.Root), nil
}

// MemoryTree maps cleaned relative paths to file contents.
type MemoryTree map[string][]byte

func (t MemoryTree) Exists(path string) bool {
	_, found := t[filepath.Clean(path)]
	return found
}

func (t MemoryTree) Open(path string) (Source, error) {
	cleanPath := filepath.Clean(path)
	data, found := t[cleanPath]
	if !found {
		return nil, fmt.Errorf("Expected file '%s' to exist (known files: %v)", path, t.paths())
	}
	return NewBytesSource(cleanPath, data), nil
}

func (t MemoryTree) paths() []string {
	var result []string
	for path := range t {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}
