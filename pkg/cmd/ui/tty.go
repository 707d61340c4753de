// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type TTY struct {
	debug  bool
	stdout io.Writer
	stderr io.Writer
	color  bool
}

var _ UI = TTY{}

// NewTTY colors warnings and errors when stderr is a terminal.
func NewTTY(debug bool) TTY {
	fd := os.Stderr.Fd()
	colored := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return TTY{debug, os.Stdout, os.Stderr, colored}
}

func (t TTY) Printf(str string, args ...interface{}) {
	fmt.Fprintf(t.stdout, str, args...)
}

func (t TTY) Warnf(str string, args ...interface{}) {
	t.colorize(color.FgYellow).Fprintf(t.stderr, str, args...)
}

func (t TTY) Errorf(str string, args ...interface{}) {
	t.colorize(color.FgRed).Fprintf(t.stderr, str, args...)
}

func (t TTY) Debugf(str string, args ...interface{}) {
	if t.debug {
		fmt.Fprintf(t.stderr, str, args...)
	}
}

func (t TTY) colorize(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if t.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Used for testing whether TTY writes correct output to stdout/stderr
func NewCustomWriterTTY(debug bool, stdout, stderr io.Writer) TTY {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return TTY{debug, stdout, stderr, false}
}
