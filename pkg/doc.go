// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of pipetpl.

Packages are layered so that each depends on the others only as much as
required. In the inventory below, individual packages are named alongside
their coupling with the other packages in the codebase.

	(# of dependents) => <package name> => (# of dependencies)

From top-down, pipetpl code is layered in this way:

# Entry Point

pipetpl is built into a single command-line tool:

	./cmd/pipetpl

# Commands

The root command and "resolve" are the same command: load a pipeline
document, expand it and print it as YAML or JSON.

	(1) => pkg/cmd => (2)
	(2) => pkg/cmd/resolve => (5)

# Stage Expansion

A pipeline document is turned into concrete stages by a DataResolver.
It loads global parameters ("use", "vars"), then resolves each stage
entry, expanding "foreach" templates and recording the parameters each
stage read.

	(2) => pkg/pipeline => (4)

# Namespace

Parameters are held in a tree of Dict, List and Value nodes. Every node
knows which file it came from and its dotted path within that file. A
Context is the root of such a tree; it selects values for "${...}"
expressions and can track what was selected.

	(3) => pkg/namespace => (3)
	(1) => pkg/texttemplate => (0)

# Files and Formats

Parameter files are read from a Tree (local directory or memory) and
decoded into ordered maps according to their extension.

	(4) => pkg/files => (2)
	(5) => pkg/yamlfmt => (1)
	(6) => pkg/orderedmap => (0)

# Utilities

	(2) => pkg/cmd/ui => (0)
	(2) => pkg/version => (0)

# Dependencies

Each package's dependencies on other packages within this module are as follows
(if a package is not listed, it has no dependencies on other packages within
this module):

	pkg/cmd:
	- pkg/cmd/resolve
	- pkg/version
	pkg/cmd/resolve:
	- pkg/pipeline
	- pkg/files
	- pkg/yamlfmt
	- pkg/orderedmap
	- pkg/cmd/ui
	pkg/pipeline:
	- pkg/namespace
	- pkg/files
	- pkg/yamlfmt
	- pkg/orderedmap
	pkg/namespace:
	- pkg/texttemplate
	- pkg/yamlfmt
	- pkg/orderedmap
	pkg/files:
	- pkg/yamlfmt
	- pkg/orderedmap
	pkg/yamlfmt:
	- pkg/orderedmap
*/
package pkg
