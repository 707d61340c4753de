// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package namespace

import (
	"fmt"
)

// NotFoundError is returned when a dotted path does not select anything.
type NotFoundError struct {
	// Key is the path segment that could not be found
	Key string
	// Path is the full dotted path being selected
	Path string
	// Content describes the node that was searched
	Content string
}

func (e *NotFoundError) Error() string {
	if e.Path == "" || e.Path == e.Key {
		return fmt.Sprintf("Could not find '%s' in %s", e.Key, e.Content)
	}
	return fmt.Sprintf("Could not find '%s' in %s (selecting '%s')", e.Key, e.Content, e.Path)
}

// ConflictError is returned when a binding would overwrite or shadow
// an existing key, or when a set binding is not allowed.
type ConflictError struct {
	Key     string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func newConflictError(key, format string, args ...interface{}) *ConflictError {
	return &ConflictError{Key: key, Message: fmt.Sprintf(format, args...)}
}

// TypeError is returned for values that cannot be placed in the tree.
type TypeError struct {
	Value   interface{}
	Message string
}

func (e *TypeError) Error() string { return e.Message }
