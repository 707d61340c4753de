// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"path/filepath"

	"carvel.dev/pipetpl/pkg/files"
	"carvel.dev/pipetpl/pkg/namespace"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
	"golang.org/x/sync/errgroup"
)

const (
	StagesKwd  = "stages"
	SetKwd     = "set"
	ForeachKwd = "foreach"
	DoKwd      = "do"
	InKwd      = "in"
	UseKwd     = "use"
	VarsKwd    = "vars"
	WdirKwd    = "wdir"
	ParamsKwd  = "params"

	DefaultParamsFile = "params.yaml"
)

type Logger interface {
	Debugf(string, ...interface{})
	Warnf(string, ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Warnf(string, ...interface{})  {}

type Options struct {
	Logger Logger
	// Parallelism above 1 resolves stage entries concurrently.
	Parallelism int
	// DefaultParamsFile is loaded when the document does not declare "use".
	DefaultParamsFile string
}

// DataResolver resolves a single pipeline document.
// Global parameters are loaded once by NewDataResolver.
type DataResolver struct {
	tree   files.Tree
	loader *files.Loader
	wdir   string
	doc    *orderedmap.Map
	opts   Options

	globalCtx       *namespace.Context
	globalCtxSource string
	imports         map[string]*importedFile
}

// NewDataResolver prepares doc for resolution. wdir is the directory of
// the document within tree; all paths in the document are relative to it.
func NewDataResolver(tree files.Tree, wdir string, doc *orderedmap.Map, opts Options) (*DataResolver, error) {
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	if opts.DefaultParamsFile == "" {
		opts.DefaultParamsFile = DefaultParamsFile
	}

	r := &DataResolver{
		tree:    tree,
		loader:  files.NewLoader(tree),
		wdir:    filepath.Clean(wdir),
		doc:     doc,
		opts:    opts,
		imports: map[string]*importedFile{},
	}

	err := r.bootstrap()
	if err != nil {
		return nil, err
	}

	return r, nil
}

// GlobalContext is shared by all stages and must not be modified.
func (r *DataResolver) GlobalContext() *namespace.Context { return r.globalCtx }

type entry struct {
	name string
	def  interface{}
}

type resolvedStage struct {
	name string
	def  *orderedmap.Map
}

// Resolve returns a copy of the document with stages expanded.
// Nothing is returned if any stage fails.
func (r *DataResolver) Resolve() (*orderedmap.Map, error) {
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}

	results := make([][]resolvedStage, len(entries))

	if r.opts.Parallelism > 1 {
		var group errgroup.Group
		group.SetLimit(r.opts.Parallelism)

		for i, e := range entries {
			i, e := i, e
			group.Go(func() error {
				stages, err := r.resolveEntry(e.name, e.def)
				if err != nil {
					return &StageError{Stage: e.name, Err: err}
				}
				results[i] = stages
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, e := range entries {
			stages, err := r.resolveEntry(e.name, e.def)
			if err != nil {
				return nil, &StageError{Stage: e.name, Err: err}
			}
			results[i] = stages
		}
	}

	stages := orderedmap.NewMap()

	for i, result := range results {
		for _, stage := range result {
			if stages.Has(stage.name) {
				return nil, &StageError{Stage: entries[i].name, Err: newDefinitionError(
					"Expected generated stage name '%s' to be unique", stage.name)}
			}
			stages.Set(stage.name, stage.def)
		}
	}

	out := orderedmap.NewMap()
	r.doc.Iterate(func(k, v interface{}) {
		if k == StagesKwd {
			out.Set(k, stages)
		} else {
			out.Set(k, orderedmap.DeepCopyValue(v))
		}
	})

	if bs, err := yamlfmt.Encode(out); err == nil {
		r.opts.Logger.Debugf("Resolved document:\n%s", bs)
	}

	return out, nil
}

func (r *DataResolver) entries() ([]entry, error) {
	val, found := r.doc.Get(StagesKwd)
	if !found || val == nil {
		return nil, nil
	}

	stages, ok := val.(*orderedmap.Map)
	if !ok {
		return nil, newDefinitionError("Expected '%s' to be a map, but was %s", StagesKwd, yamlfmt.TypeName(val))
	}

	var result []entry
	err := stages.IterateErr(func(k, v interface{}) error {
		name, ok := k.(string)
		if !ok {
			return newDefinitionError("Expected stage name to be a string, but was %s", yamlfmt.TypeName(k))
		}
		result = append(result, entry{name, v})
		return nil
	})
	return result, err
}
