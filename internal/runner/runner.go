// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"strconv"
	"strings"

	"github.com/simpleaf/simpleaf/pkg/types"

	"mvdan.cc/sh/v3/syntax"
)

type (
	// Command is one child-process invocation.
	Command struct {
		// Stage labels the invocation in logs and errors (e.g. "salmon index").
		Stage string
		// Path is the executable, either absolute or a name resolved via PATH.
		Path string
		// Args are passed verbatim; no shell is involved.
		Args []string
		// Dir overrides the working directory when non-empty.
		Dir string
	}

	// Result contains the result of a command execution.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode types.ExitCode
		// Error is set when the process could not be run at all
		// (not found, permission denied) as opposed to exiting non-zero.
		Error error
		// Output contains captured stdout (Capture only).
		Output string
		// ErrOutput contains captured stderr (Capture only).
		ErrOutput string
	}

	// Runner executes commands.
	Runner interface {
		// Run executes cmd with its output streamed to the runner's writers.
		Run(ctx context.Context, cmd Command) *Result
		// Capture executes cmd and returns its stdout/stderr in the Result.
		Capture(ctx context.Context, cmd Command) *Result
	}
)

// Success returns true if the command executed successfully.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// Argv returns the full argument vector including the executable.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Path)
	return append(argv, c.Args...)
}

// String renders the command as a shell-quoted line suitable for copy/paste.
func (c Command) String() string {
	argv := c.Argv()
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = quote(a)
	}
	return strings.Join(quoted, " ")
}

// quote shell-quotes a single word, leaving plain words untouched.
func quote(word string) string {
	q, err := syntax.Quote(word, syntax.LangBash)
	if err != nil {
		// Only NUL bytes fail to quote; show them Go-escaped instead.
		return strconv.Quote(word)
	}
	return q
}
