// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"strings"
)

const localSource = "<local>:"

// Meta is immutable; Child returns a new Meta.
type Meta struct {
	source string
	dpaths []string
}

func NewMeta(source string) Meta { return Meta{source: source} }

// Source is empty for values that did not come from a file.
func (m Meta) Source() string { return m.source }

func (m Meta) DPaths() []string { return append([]string{}, m.dpaths...) }

func (m Meta) Path() string { return strings.Join(m.dpaths, ".") }

func (m Meta) String() string {
	if m.source == "" {
		return localSource + m.Path()
	}
	return m.source + ":" + m.Path()
}

func (m Meta) Child(segment string) Meta {
	dpaths := make([]string, len(m.dpaths), len(m.dpaths)+1)
	copy(dpaths, m.dpaths)
	return Meta{source: m.source, dpaths: append(dpaths, segment)}
}
