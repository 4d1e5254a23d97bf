// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/simpleaf/simpleaf/pkg/types"
)

type (
	// ExecRunner executes commands on the local host using os/exec.
	ExecRunner struct {
		stdout io.Writer
		stderr io.Writer
	}

	// ExecOption configures an ExecRunner during construction.
	ExecOption func(*ExecRunner)

	// executeOutput configures where command output is directed during execution.
	// It abstracts the difference between streaming (to the runner's writers) and
	// capturing (to bytes.Buffer) execution modes.
	executeOutput struct {
		stdout io.Writer
		stderr io.Writer
	}

	// capturedOutput holds the captured stdout and stderr buffers when capture mode is used.
	capturedOutput struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
	}
)

// WithOutput sets the writers that streamed child output is copied to.
func WithOutput(stdout, stderr io.Writer) ExecOption {
	return func(r *ExecRunner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewExecRunner creates an ExecRunner streaming to os.Stdout/os.Stderr.
func NewExecRunner(opts ...ExecOption) *ExecRunner {
	r := &ExecRunner{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd, streaming its output.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) *Result {
	return r.execute(ctx, cmd, &executeOutput{stdout: r.stdout, stderr: r.stderr}, nil)
}

// Capture executes cmd and returns its output in the Result.
func (r *ExecRunner) Capture(ctx context.Context, cmd Command) *Result {
	out, captured := newCapturingOutput()
	return r.execute(ctx, cmd, out, captured)
}

func (r *ExecRunner) execute(ctx context.Context, cmd Command, out *executeOutput, captured *capturedOutput) *Result {
	if cmd.Path == "" {
		return &Result{ExitCode: types.ExitCodeFailure, Error: fmt.Errorf("%s: no executable given", cmd.Stage)}
	}

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Stdout = out.stdout
	c.Stderr = out.stderr

	return extractExitCode(c.Run(), captured)
}

// newCapturingOutput creates an output configuration that captures to internal buffers.
func newCapturingOutput() (*executeOutput, *capturedOutput) {
	captured := &capturedOutput{}
	return &executeOutput{
		stdout: &captured.stdout,
		stderr: &captured.stderr,
	}, captured
}

// extractExitCode determines the exit code from a command execution error.
// Returns a Result with exit code, output strings (if captured), and any error.
func extractExitCode(err error, captured *capturedOutput) *Result {
	result := &Result{}

	if captured != nil {
		result.Output = captured.stdout.String()
		result.ErrOutput = captured.stderr.String()
	}

	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Command executed but returned non-zero exit code. A signal-terminated
		// child reports -1, which we surface as a generic failure.
		exitCode := types.ExitCode(exitErr.ExitCode())
		if validateErr := exitCode.Validate(); validateErr != nil {
			result.ExitCode = types.ExitCodeFailure
			result.Error = fmt.Errorf("%w: %w", validateErr, err)
			return result
		}
		result.ExitCode = exitCode
		return result
	}

	// Some other error (e.g., command not found, permission denied)
	result.ExitCode = types.ExitCodeFailure
	var execErr *exec.Error
	if errors.As(err, &execErr) || errors.Is(err, os.ErrNotExist) {
		result.ExitCode = types.ExitCodeNotFound
	}
	result.Error = err
	return result
}
