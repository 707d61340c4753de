// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package filetests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimTrailingMultilineWhitespace(t *testing.T) {
	for _, testcase := range []struct {
		give, want string
	}{
		{
			give: `we want yaml`,
			want: `we want yaml`,
		},
		{
			give: `we want yaml `,
			want: `we want yaml`,
		},
		{
			give: `we want yaml	`,
			want: `we want yaml`,
		},
		{
			give: `we want yaml
`,
			want: `we want yaml`,
		},
		{
			give: `
we 
want	
yaml  `,
			want: `
we
want
yaml`,
		},
		{
			give: `
we

  want	
	yaml

`,
			want: `
we

  want
	yaml`,
		},
	} {
		assert.Equal(t, testcase.want, TrimTrailingMultilineWhitespace(testcase.give))
	}
}

func TestParseInputFiles(t *testing.T) {
	tree, err := ParseInputFiles(`
#! params.yaml
lr: 0.1
#! ./sub/dvc.yaml
stages: {}
`)
	require.NoError(t, err)
	assert.Equal(t, "lr: 0.1\n", string(tree["params.yaml"]))
	assert.Equal(t, "stages: {}\n\n", string(tree["sub/dvc.yaml"]))

	_, err = ParseInputFiles("stray content\n#! dvc.yaml\n")
	require.Error(t, err)
}
