// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd_test

import (
	"bytes"
	"testing"

	"carvel.dev/pipetpl/pkg/cmd"
	"carvel.dev/pipetpl/pkg/version"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	root := cmd.NewDefaultPipetplCmd()

	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Equal(t, "pipetpl version "+version.Version+"\n", stdout.String())
}

func TestRootCmdHasResolveFlags(t *testing.T) {
	root := cmd.NewDefaultPipetplCmd()

	for _, name := range []string{"file", "output", "jobs", "debug", "params-file"} {
		require.NotNil(t, root.Flags().Lookup(name), "flag %s", name)
	}

	sub, _, err := root.Find([]string{"resolve"})
	require.NoError(t, err)
	require.Equal(t, "resolve", sub.Name())
	require.NotNil(t, sub.Flags().Lookup("file"))
}

func TestRootCmdRejectsExtraArgs(t *testing.T) {
	root := cmd.NewDefaultPipetplCmd()
	root.SetArgs([]string{"version", "extra"})
	require.Error(t, root.Execute())
}
