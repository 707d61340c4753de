// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"path/filepath"

	"carvel.dev/pipetpl/pkg/namespace"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

func (r *DataResolver) resolveEntry(name string, def interface{}) ([]resolvedStage, error) {
	typedDef, ok := def.(*orderedmap.Map)
	if !ok {
		return nil, newDefinitionError("Expected stage definition to be a map, but was %s", yamlfmt.TypeName(def))
	}

	ctx := r.globalCtx.Clone()

	err := setContextFrom(ctx, typedDef)
	if err != nil {
		return nil, err
	}

	body, hasBody, err := foreachBody(typedDef)
	if err != nil {
		return nil, err
	}

	foreach, hasForeach := typedDef.Get(ForeachKwd)

	switch {
	case hasForeach && hasBody:
		return r.foreach(ctx, name, foreach, body)
	case hasForeach:
		return nil, newDefinitionError("Expected '%s' to be used together with '%s'", ForeachKwd, DoKwd)
	case hasBody:
		return nil, newDefinitionError("Expected '%s' to be used together with '%s'", DoKwd, ForeachKwd)
	}

	stage, err := r.resolveStage(ctx, name, typedDef, false)
	if err != nil {
		return nil, err
	}
	return []resolvedStage{stage}, nil
}

// foreachBody returns the templated stage of a foreach entry.
// "in" is an older name for "do".
func foreachBody(def *orderedmap.Map) (interface{}, bool, error) {
	doBody, hasDo := def.Get(DoKwd)
	inBody, hasIn := def.Get(InKwd)

	switch {
	case hasDo && hasIn:
		return nil, false, newDefinitionError("Expected only one of '%s' or '%s'", DoKwd, InKwd)
	case hasDo:
		return doBody, true, nil
	case hasIn:
		return inBody, true, nil
	default:
		return nil, false, nil
	}
}

func setContextFrom(ctx *namespace.Context, def *orderedmap.Map) error {
	set, found := def.Get(SetKwd)
	if !found || set == nil {
		return nil
	}

	typedSet, ok := set.(*orderedmap.Map)
	if !ok {
		return newDefinitionError("Expected '%s' to be a map, but was %s", SetKwd, yamlfmt.TypeName(set))
	}

	return ctx.Set(typedSet)
}

// resolveStage resolves a concrete stage definition. Its "set" block is
// applied only when applySet is true; it is always dropped from the output.
func (r *DataResolver) resolveStage(ctx *namespace.Context, name string, def *orderedmap.Map, applySet bool) (resolvedStage, error) {
	def = def.DeepCopy()

	if applySet {
		err := setContextFrom(ctx, def)
		if err != nil {
			return resolvedStage{}, err
		}
	}
	def.Delete(SetKwd)

	wdir, err := r.resolveWdir(ctx, def)
	if err != nil {
		return resolvedStage{}, err
	}
	if wdir != r.wdir {
		r.opts.Logger.Debugf("Stage %s has different wdir than dvc.yaml file", name)
	}

	contexts, err := r.stageContexts(name, wdir, def)
	if err != nil {
		return resolvedStage{}, err
	}

	err = ctx.MergeUpdate(false, contexts...)
	if err != nil {
		return resolvedStage{}, err
	}

	r.opts.Logger.Debugf("Context during resolution of stage %s:\n%s", name, ctx)

	var resolved interface{}

	err = ctx.Track(func() error {
		var err error
		resolved, err = namespace.Resolve(def, ctx, true)
		return err
	})
	if err != nil {
		return resolvedStage{}, err
	}

	resolvedDef := resolved.(*orderedmap.Map)

	params, err := paramsList(resolvedDef)
	if err != nil {
		return resolvedStage{}, err
	}

	for _, tracked := range ctx.Tracked() {
		params = appendTracked(params, relativeSource(wdir, tracked.Source), tracked.Keys)
	}

	resolvedDef.Set(ParamsKwd, params)

	return resolvedStage{name: name, def: resolvedDef}, nil
}

// appendTracked adds keys read from file to params. Keys go into an
// existing {file: [keys]} entry for the same file when there is one.
func appendTracked(params []interface{}, file string, keys []string) []interface{} {
	for i, item := range params {
		typedItem, ok := item.(*orderedmap.Map)
		if !ok || typedItem.Len() != 1 {
			continue
		}
		declared, ok := typedItem.Keys()[0].(string)
		if !ok || filepath.Clean(declared) != file {
			continue
		}
		declaredVal, _ := typedItem.Get(declared)
		declaredKeys, ok := declaredVal.([]interface{})
		if !ok {
			continue
		}

		merged := append([]interface{}{}, declaredKeys...)
		for _, key := range keys {
			if !containsValue(merged, key) {
				merged = append(merged, key)
			}
		}
		params[i] = orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: declared, Value: merged}})
		return params
	}

	var newKeys []interface{}
	for _, key := range keys {
		newKeys = append(newKeys, key)
	}
	return append(params, orderedmap.NewMapWithItems([]orderedmap.MapItem{{Key: file, Value: newKeys}}))
}

func containsValue(vals []interface{}, val interface{}) bool {
	for _, v := range vals {
		if v == val {
			return true
		}
	}
	return false
}

func (r *DataResolver) resolveWdir(ctx *namespace.Context, def *orderedmap.Map) (string, error) {
	wdir, found := def.Get(WdirKwd)
	if !found || wdir == nil || wdir == "" {
		return r.wdir, nil
	}

	resolved, err := ctx.Format(wdir)
	if err != nil {
		return "", err
	}

	str, err := namespace.Stringify(resolved)
	if err != nil {
		return "", err
	}

	return r.path(r.wdir, str), nil
}

// stageContexts loads parameter files local to a stage: params.yaml in
// the stage wdir and every file named in a {file: [keys]} params entry.
func (r *DataResolver) stageContexts(name, wdir string, def *orderedmap.Map) ([]*namespace.Dict, error) {
	var result []*namespace.Dict
	loaded := map[string]struct{}{}

	load := func(path string) error {
		if path == r.globalCtxSource {
			return nil
		}
		if _, found := loaded[path]; found {
			return nil
		}
		loaded[path] = struct{}{}

		ctx, err := namespace.LoadFrom(r.loader, path)
		if err != nil {
			return fmt.Errorf("Loading params file '%s': %w", path, err)
		}
		result = append(result, ctx.Dict)
		return nil
	}

	paramsFile := r.path(wdir, r.opts.DefaultParamsFile)
	switch {
	case paramsFile == r.globalCtxSource:
	case r.tree.Exists(paramsFile):
		if err := load(paramsFile); err != nil {
			return nil, err
		}
	default:
		r.opts.Logger.Debugf("%s does not exist for stage %s", paramsFile, name)
	}

	params, err := paramsList(def)
	if err != nil {
		return nil, err
	}

	for _, item := range params {
		typedItem, ok := item.(*orderedmap.Map)
		if !ok || typedItem.Len() == 0 {
			continue
		}

		file, ok := typedItem.Keys()[0].(string)
		if !ok {
			return nil, newDefinitionError("Expected params file name to be a string, but was %s",
				yamlfmt.TypeName(typedItem.Keys()[0]))
		}

		if err := load(r.path(wdir, file)); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func paramsList(def *orderedmap.Map) ([]interface{}, error) {
	params, found := def.Get(ParamsKwd)
	if !found || params == nil {
		return []interface{}{}, nil
	}

	typedParams, ok := params.([]interface{})
	if !ok {
		return nil, newDefinitionError("Expected '%s' to be a list, but was %s", ParamsKwd, yamlfmt.TypeName(params))
	}

	return append([]interface{}{}, typedParams...), nil
}

// relativeSource expresses a tracked file relative to the stage wdir,
// which is how params files are named in a stage.
func relativeSource(wdir, source string) string {
	rel, err := filepath.Rel(wdir, source)
	if err != nil {
		return filepath.ToSlash(source)
	}
	return filepath.ToSlash(rel)
}
