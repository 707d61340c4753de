// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"carvel.dev/pipetpl/pkg/cmd/resolve"
	"carvel.dev/pipetpl/pkg/version"
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"
)

type PipetplOptions struct{}

func NewDefaultPipetplOptions() *PipetplOptions {
	return &PipetplOptions{}
}

func NewDefaultPipetplCmd() *cobra.Command {
	return NewPipetplCmd(NewDefaultPipetplOptions())
}

func NewPipetplCmd(o *PipetplOptions) *cobra.Command {
	cmd := resolve.NewCmd(resolve.NewOptions())

	cmd.Use = "pipetpl"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "pipetpl expands templated pipeline definitions"
	cmd.Long = `pipetpl expands templated pipeline definitions.

Interpolates ${...} expressions, imports 'vars', applies 'set' and
expands 'foreach' stages, then appends the parameters each stage
depends on to its 'params' list.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(resolve.NewCmd(resolve.NewOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
