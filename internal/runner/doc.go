// SPDX-License-Identifier: MPL-2.0

// Package runner starts the external programs simpleaf drives.
//
// Every child process (salmon, alevin-fry, pyroe, wget and the --version
// checks) goes through the Runner interface so the pipeline can be exercised
// against a recording fake in tests. ExecRunner is the os/exec implementation.
// Commands are executed directly, never through a shell; Command.String only
// renders a shell-quoted form for logs and dry runs.
package runner
