// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
)

// Error is the uniform invocation error. Every rejection and handler
// failure surfaces as an *Error; the original error is available via
// errors.Unwrap.
type Error struct {
	// Message is the human-readable description.
	Message string

	cause error
}

func (e *Error) Error() string {
	return "command: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError creates an invocation error with no underlying cause.
func NewError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// InvocationErrorMapper is implemented by rejections that want control
// over how they become an invocation error. Anything else is converted
// by taking its error string.
type InvocationErrorMapper interface {
	error
	InvocationError() *Error
}

// MissingExtensionError is the rejection returned when a required value
// was never inserted into the message's extension map.
type MissingExtensionError struct {
	// Type is the Go type name of the missing value (e.g.,
	// "command.Body", "config.Config").
	Type string
}

func (e *MissingExtensionError) Error() string {
	return fmt.Sprintf("extension of type %s was not found; insert it into the message before dispatch", e.Type)
}

// ErrExtensionsTaken is returned when a second parameter tries to take
// ownership of the extension map in the same invocation.
var ErrExtensionsTaken = errors.New("extensions already taken by another extractor")

// toInvocationError normalizes err into *Error. Nil stays nil.
func toInvocationError(err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	var mapper InvocationErrorMapper
	if errors.As(err, &mapper) {
		return mapper.InvocationError()
	}
	return &Error{Message: err.Error(), cause: err}
}
