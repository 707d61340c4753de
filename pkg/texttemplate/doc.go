// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package texttemplate recognizes interpolation expressions embedded in strings.

Parse splits a string into literal text (NodeText) and expressions
(NodeCode). An expression is written as ${path} or ${{path}}, where path is a
word followed by any number of .attr or [index] accessors. Index accessors
are normalized so that ${a[0].b} and ${a.0.b} select the same value.

A "$" preceded by a backslash never starts an expression.
*/
package texttemplate
