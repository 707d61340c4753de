// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/pipetpl/pkg/namespace"
	"carvel.dev/pipetpl/pkg/orderedmap"
	"carvel.dev/pipetpl/pkg/texttemplate"
	"carvel.dev/pipetpl/pkg/yamlfmt"
)

// importedFile remembers how a vars file was imported.
// Keys is empty when the whole file was imported.
type importedFile struct {
	Keys []string
}

func (f importedFile) Whole() bool { return len(f.Keys) == 0 }

func (r *DataResolver) bootstrap() error {
	r.globalCtx = namespace.NewContext()

	useFile := r.opts.DefaultParamsFile
	if use, found := r.doc.Get(UseKwd); found {
		typedUse, ok := use.(string)
		if !ok {
			return newDefinitionError("Expected '%s' to be a string, but was %s", UseKwd, yamlfmt.TypeName(use))
		}
		useFile = typedUse
	}

	toImport := r.path(r.wdir, useFile)
	if r.tree.Exists(toImport) {
		err := r.importVars(toImport, nil)
		if err != nil {
			return err
		}
		r.globalCtxSource = toImport
	} else {
		r.opts.Logger.Debugf("%s does not exist, it won't be used in parametrization", toImport)
	}

	vars, found := r.doc.Get(VarsKwd)
	if !found || vars == nil {
		return nil
	}

	typedVars, ok := vars.([]interface{})
	if !ok {
		return newDefinitionError("Expected '%s' to be a list, but was %s", VarsKwd, yamlfmt.TypeName(vars))
	}

	for _, item := range typedVars {
		switch typedItem := item.(type) {
		case string:
			if texttemplate.Parse(typedItem).HasCode() {
				return newDefinitionError("Expected '%s' entry '%s' to not contain interpolation", VarsKwd, typedItem)
			}

			path, keys := parseVarsItem(typedItem)
			err := r.importVars(r.path(r.wdir, path), keys)
			if err != nil {
				return fmt.Errorf("Importing vars '%s': %w", typedItem, err)
			}

		case *orderedmap.Map:
			err := checkNoInterpolation(typedItem)
			if err != nil {
				return err
			}

			dict, err := namespace.NewDict(typedItem, namespace.Meta{})
			if err != nil {
				return err
			}

			err = r.globalCtx.MergeUpdate(false, dict)
			if err != nil {
				return err
			}

		default:
			return newDefinitionError("Expected '%s' entry to be a string or a map, but was %s",
				VarsKwd, yamlfmt.TypeName(item))
		}
	}

	return nil
}

// parseVarsItem splits "path:key1,key2".
func parseVarsItem(item string) (string, []string) {
	path, keysStr, _ := strings.Cut(item, ":")

	var keys []string
	for _, key := range strings.Split(keysStr, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return path, keys
}

// importVars merges path (or only the given keys of it) into the global
// context. Importing a whole file again is a no-op.
func (r *DataResolver) importVars(path string, keys []string) error {
	if imported, found := r.imports[path]; found {
		switch {
		case imported.Whole() && len(keys) == 0:
			r.opts.Logger.Debugf("%s is already loaded", path)
			return nil
		case imported.Whole():
			return newDefinitionError("Cannot partially load '%s' as it's already loaded", path)
		case len(keys) == 0:
			return newDefinitionError("Cannot load '%s' as it's partially loaded already", path)
		}
		for _, key := range keys {
			for _, importedKey := range imported.Keys {
				if key == importedKey {
					return newDefinitionError("Cannot load '%s:%s' as it's partially loaded already", path, key)
				}
			}
		}
	}

	ctx, err := namespace.LoadFrom(r.loader, path)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		ctx, err = ctx.Pick(keys...)
		if err != nil {
			return err
		}
	}

	err = r.globalCtx.MergeUpdate(false, ctx.Dict)
	if err != nil {
		return err
	}

	if imported, found := r.imports[path]; found {
		imported.Keys = append(imported.Keys, keys...)
	} else {
		r.imports[path] = &importedFile{Keys: keys}
	}
	return nil
}

func checkNoInterpolation(m *orderedmap.Map) error {
	var check func(val interface{}) error

	check = func(val interface{}) error {
		switch typedVal := val.(type) {
		case string:
			if texttemplate.Parse(typedVal).HasCode() {
				return newDefinitionError("Expected '%s' to not contain interpolation, but found '%s'", VarsKwd, typedVal)
			}
		case *orderedmap.Map:
			return typedVal.IterateErr(func(_, v interface{}) error { return check(v) })
		case []interface{}:
			for _, item := range typedVal {
				if err := check(item); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return check(m)
}

// path joins a document relative path onto dir.
func (r *DataResolver) path(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
