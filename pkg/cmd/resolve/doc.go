// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package resolve implements the "resolve" command, the default command of
pipetpl: it reads a pipeline document, expands it and prints the result.
*/
package resolve
