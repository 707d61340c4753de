// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"fmt"
)

// DefinitionError reports a malformed pipeline document.
type DefinitionError struct {
	Message string
}

func (e *DefinitionError) Error() string { return e.Message }

func newDefinitionError(format string, args ...interface{}) *DefinitionError {
	return &DefinitionError{Message: fmt.Sprintf(format, args...)}
}

// StageError attributes an error to a stage entry.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("Resolving stage '%s': %s", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
