// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides read access to the documents a pipeline refers to.

A Tree answers existence checks and opens paths as Source's; LocalTree reads
from the filesystem and MemoryTree from a fixed set of in-memory files.
Loader turns a path into an ordered mapping, picking the format from the
file extension (.json, .toml, and YAML for everything else).

This keeps path handling and parsing out of the resolution code, which only
ever sees ordered trees.
*/
package files
