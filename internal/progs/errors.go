// SPDX-License-Identifier: MPL-2.0

package progs

import (
	"errors"
	"fmt"
)

var (
	// ErrProgramNotFound is returned when a tool is found neither through its
	// override nor on the PATH.
	ErrProgramNotFound = errors.New("program not found")
	// ErrVersionMismatch is returned when a tool's version cannot be
	// determined or falls outside the supported range.
	ErrVersionMismatch = errors.New("unsupported program version")
)

type (
	// ResolutionError describes a tool that could not be located.
	ResolutionError struct {
		Tool   Tool
		EnvVar string
		Err    error
	}

	// VersionError describes a tool whose version could not be validated.
	VersionError struct {
		Tool    Tool
		ExePath string
		Range   string
		// Found is the raw version token, empty when none was reported.
		Found string
		// Reason is a short human description of what went wrong.
		Reason string
		Err    error
	}
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not find `%s` in your PATH ($%s is unset): %v", e.Tool, e.EnvVar, e.Err)
	}
	return fmt.Sprintf("could not find `%s` in your PATH ($%s is unset)", e.Tool, e.EnvVar)
}

// Unwrap returns ErrProgramNotFound and the underlying lookup error.
func (e *ResolutionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrProgramNotFound, e.Err}
	}
	return []error{ErrProgramNotFound}
}

// Error implements the error interface.
func (e *VersionError) Error() string {
	msg := fmt.Sprintf("%s (%s): %s", e.Tool, e.ExePath, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrVersionMismatch and the underlying cause.
func (e *VersionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrVersionMismatch, e.Err}
	}
	return []error{ErrVersionMismatch}
}
