// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilesystemPath is the sentinel error wrapped by InvalidFilesystemPathError.
var ErrInvalidFilesystemPath = errors.New("invalid filesystem path")

type (
	// FilesystemPath is a path handed to an external tool (FASTA, GTF,
	// index directory, read files, output directory).
	// A valid path must be non-empty and not whitespace-only.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath value is
	// empty or whitespace-only. Field names the option that carried it.
	InvalidFilesystemPathError struct {
		Field string
		Value FilesystemPath
	}
)

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// Validate returns an error if the path is empty or whitespace-only.
func (p FilesystemPath) Validate() error {
	return p.ValidateField("")
}

// ValidateField is Validate with the option name recorded in the error.
func (p FilesystemPath) ValidateField(field string) error {
	if strings.TrimSpace(string(p)) == "" {
		return &InvalidFilesystemPathError{Field: field, Value: p}
	}
	return nil
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s path %q: must be non-empty", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid filesystem path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }

// JoinPaths renders a list of paths as a single comma-separated argument,
// the form salmon expects for multiple read files.
func JoinPaths(paths []FilesystemPath) string {
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}
