// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

Every mapping read from a pipeline document or a parameters file is held in
this flavor of map, which keeps the order of resolved stages and of tracked
parameters deterministic and equal to the order of the input.
*/
package orderedmap
