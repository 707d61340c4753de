// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package texttemplate

import (
	"strings"
)

type NodeRoot struct {
	Items []interface{}
}

type NodeText struct {
	Content string
}

type NodeCode struct {
	// Content is the expression as written, eg ${models[0].name}
	Content string
	// Path is the normalized dotted path, eg models.0.name
	Path   string
	Double bool
}

// IsExact is true when the whole string is a single expression.
func (n *NodeRoot) IsExact() bool {
	if len(n.Items) != 1 {
		return false
	}
	_, ok := n.Items[0].(*NodeCode)
	return ok
}

func (n *NodeRoot) HasCode() bool {
	return len(n.Codes()) > 0
}

func (n *NodeRoot) Codes() []*NodeCode {
	var result []*NodeCode
	for _, item := range n.Items {
		if code, ok := item.(*NodeCode); ok {
			result = append(result, code)
		}
	}
	return result
}

// AsString reassembles the original string.
func (n *NodeRoot) AsString() string {
	var result strings.Builder
	for _, item := range n.Items {
		switch typedItem := item.(type) {
		case *NodeText:
			result.WriteString(typedItem.Content)
		case *NodeCode:
			result.WriteString(typedItem.Content)
		}
	}
	return result.String()
}

// Unescape turns escaped \${ sequences back into ${.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\${`, "${")
}
