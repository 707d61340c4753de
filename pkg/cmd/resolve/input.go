// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"path/filepath"

	"carvel.dev/pipetpl/pkg/files"
)

const stdinPath = "-"

// Input reads the pipeline document. Paths inside the document are
// relative to its directory (the current directory for stdin).
func (o *ResolveOptions) Input() (ResolveInput, error) {
	tree := files.LocalTree{}

	if o.File == stdinPath {
		src := files.NewStdinSource()
		doc, err := files.LoadSource(src, files.TypeYAML)
		if err != nil {
			return ResolveInput{}, err
		}
		return ResolveInput{Tree: tree, Path: stdinPath, Doc: doc}, nil
	}

	doc, err := files.NewLoader(tree).Load(o.File)
	if err != nil {
		return ResolveInput{}, err
	}

	return ResolveInput{Tree: tree, Path: o.File, Doc: doc}, nil
}

func documentDir(path string) string {
	if path == stdinPath {
		return "."
	}
	return filepath.Dir(path)
}
