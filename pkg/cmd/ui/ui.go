// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

type UI interface {
	Printf(string, ...interface{})
	Debugf(string, ...interface{})
	Warnf(str string, args ...interface{})
	Errorf(str string, args ...interface{})
}
