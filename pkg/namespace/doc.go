// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package namespace holds the variables that interpolation expressions read.

Raw values (ordered maps, slices and scalars) are converted into a tree of
Node's: Dict, List and Value. Every node carries a Meta recording the file it
came from and its dotted path within that file, so that reads can be
attributed to a parameter file.

A Context is the root Dict of a stage. It selects nodes by dotted path,
optionally recording which file keys were read (see Track), interpolates
strings (see ResolveString and Resolve), and accepts new bindings (see Set,
SetItem and MergeUpdate).
*/
package namespace
