// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"

	"carvel.dev/pipetpl/pkg/version"
	"github.com/spf13/cobra"
)

type VersionOptions struct{}

func NewVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewVersionCmd(o *VersionOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.OutOrStdout()) },
	}
	return cmd
}

func (o *VersionOptions) Run(out io.Writer) error {
	fmt.Fprintf(out, "pipetpl version %s\n", version.Version)

	return nil
}
