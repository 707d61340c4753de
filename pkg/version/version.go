// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the release version, set at build time with
// -ldflags "-X carvel.dev/pipetpl/pkg/version.Version=...".
package version

var (
	Version = "develop"
)
