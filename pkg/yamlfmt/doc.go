// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package yamlfmt converts between bytes and the ordered trees
(*orderedmap.Map, []interface{} and scalars) that the rest of the module
operates on.

Parsing and printing are delegated to github.com/goccy/go-yaml. Mappings are
decoded in document order; integers are normalized to int64 where they fit.
*/
package yamlfmt
