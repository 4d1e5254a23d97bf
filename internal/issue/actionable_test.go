// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "resolve programs"},
			want: "failed to resolve programs",
		},
		{
			name: "operation and resource",
			err:  &ActionableError{Operation: "load configuration", Resource: "/home/u/.config/simpleaf/config.cue"},
			want: "failed to load configuration: /home/u/.config/simpleaf/config.cue",
		},
		{
			name: "operation and cause",
			err:  &ActionableError{Operation: "download permit list", Cause: errors.New("connection refused")},
			want: "failed to download permit list: connection refused",
		},
		{
			name: "everything",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "config.cue",
				Cause:     errors.New("threads: invalid value 0"),
			},
			want: "failed to load configuration: config.cue: threads: invalid value 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_UnwrapChain(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("no such file")
	err := error(&ActionableError{Operation: "load configuration", Cause: fmt.Errorf("reading: %w", sentinel)})

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped cause")
	}
	var ae *ActionableError
	if !errors.As(err, &ae) || ae.Operation != "load configuration" {
		t.Errorf("errors.As failed: %+v", ae)
	}
	if (&ActionableError{Operation: "x"}).Unwrap() != nil {
		t.Error("Unwrap() without a cause should be nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("exit status 8")
	err := &ActionableError{
		Operation:   "download permit list",
		Resource:    "https://example.org/3M-february-2018.txt",
		Suggestions: []string{"Check your network connection", "Try the http downloader"},
		Cause:       fmt.Errorf("wget: %w", inner),
	}

	short := err.Format(false)
	for _, want := range []string{
		"failed to download permit list",
		"• Check your network connection",
		"• Try the http downloader",
	} {
		if !strings.Contains(short, want) {
			t.Errorf("Format(false) missing %q:\n%s", want, short)
		}
	}
	if strings.Contains(short, "Error chain:") {
		t.Errorf("Format(false) should not include the chain:\n%s", short)
	}

	verbose := err.Format(true)
	for _, want := range []string{"Error chain:", "1. wget: exit status 8", "2. exit status 8"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestErrorContext_BuildError(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := NewErrorContext().
		WithOperation("run pipeline").
		WithResource("out/af_quant").
		WithSuggestion("Preview with --dry-run").
		WithSuggestions("Check disk space", "Re-run with --verbose").
		Wrap(cause).
		BuildError()

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("BuildError() = %T, want *ActionableError", err)
	}
	if ae.Operation != "run pipeline" || ae.Resource != "out/af_quant" {
		t.Errorf("unexpected fields: %+v", ae)
	}
	want := []string{"Preview with --dry-run", "Check disk space", "Re-run with --verbose"}
	if !slices.Equal(ae.Suggestions, want) {
		t.Errorf("Suggestions = %v, want %v", ae.Suggestions, want)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should be wrapped")
	}
}

func TestErrorContext_BuildErrorCopiesSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("resolve programs").WithSuggestion("first")
	first := ctx.BuildError().(*ActionableError)
	ctx.WithSuggestion("second")

	if len(first.Suggestions) != 1 {
		t.Errorf("built error changed after the context grew: %v", first.Suggestions)
	}
}

func TestErrorContext_BuildErrorWithoutOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").Wrap(errors.New("y")).BuildError(); err != nil {
		t.Errorf("BuildError() without an operation = %v, want nil", err)
	}
}
