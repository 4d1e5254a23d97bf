// SPDX-License-Identifier: MPL-2.0

// Package progs locates the external programs simpleaf drives (salmon,
// alevin-fry and pyroe) and validates that their reported versions fall
// within the supported ranges.
//
// Each tool is looked up first through an explicit override (environment
// variable or config file), then on the PATH. The resolved executable is run
// with --version and the last whitespace-delimited token of its output is
// parsed as a semantic version.
package progs
