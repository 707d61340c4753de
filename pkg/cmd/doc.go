// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package cmd assembles pipetpl's cobra commands
(not to be confused with ./cmd which contains the main package).

The root command resolves a pipeline document, same as "pipetpl resolve":

	$ pipetpl -f dvc.yaml -o json
*/
package cmd
