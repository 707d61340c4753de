// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"carvel.dev/pipetpl/pkg/cmd"
	"carvel.dev/pipetpl/pkg/cmd/ui"
	uierrs "github.com/cppforlife/go-cli-ui/errors"
)

func main() {
	command := cmd.NewDefaultPipetplCmd()

	err := command.Execute()
	if err != nil {
		ui.NewTTY(false).Errorf("pipetpl: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
