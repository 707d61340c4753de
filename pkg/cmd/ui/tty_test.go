// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui_test

import (
	"bytes"
	"testing"

	"carvel.dev/pipetpl/pkg/cmd/ui"
	"github.com/stretchr/testify/assert"
)

func TestTTYRoutesOutput(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	tty := ui.NewCustomWriterTTY(false, stdout, stderr)
	tty.Printf("out %d\n", 1)
	tty.Warnf("warn\n")
	tty.Errorf("err\n")
	tty.Debugf("hidden\n")

	assert.Equal(t, "out 1\n", stdout.String())
	assert.Equal(t, "warn\nerr\n", stderr.String())
}

func TestTTYDebug(t *testing.T) {
	stderr := &bytes.Buffer{}

	tty := ui.NewCustomWriterTTY(true, nil, stderr)
	tty.Debugf("shown %s\n", "a")
	tty.Warnf("careful\n")

	assert.Equal(t, "shown a\ncareful\n", stderr.String())
}
