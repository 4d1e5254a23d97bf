// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/issue"
	"github.com/simpleaf/simpleaf/internal/permitlist"
	"github.com/simpleaf/simpleaf/internal/pipeline"
	"github.com/simpleaf/simpleaf/internal/progs"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"not found", &progs.ResolutionError{Tool: progs.ToolSalmon, EnvVar: "SALMON"}, issue.ProgramNotFoundId},
		{"version", &progs.VersionError{Tool: progs.ToolPyroe}, issue.VersionMismatchId},
		{"missing", &progs.MissingProgramError{Tool: progs.ToolAlevinFry}, issue.MissingProgramId},
		{"cache root", &permitlist.ConfigError{EnvVar: permitlist.EnvVar, Key: permitlist.ConfigKey}, issue.PermitListConfigId},
		{"chemistry", &pipeline.ChemistryError{Chemistry: "dropseq"}, issue.UnregisteredChemistryId},
		{"download", &permitlist.DownloadError{URL: "https://x", ExitCode: 8}, issue.DownloadFailedId},
		{"stage", &pipeline.StageFailure{Stage: pipeline.StageQuant, ExitCode: 2}, issue.StageFailedId},
		{"options", &pipeline.InvalidOptionsError{Workflow: "index"}, issue.InvalidOptionsId},
		{"filter", fmt.Errorf("quant: %w", alevin.ErrNoFilterMethod), issue.InvalidOptionsId},
		{"unknown", errors.New("disk full"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWorkflowError_StageFailure(t *testing.T) {
	t.Parallel()

	err := workflowError(&pipeline.StageFailure{Stage: pipeline.StageSalmonAlevin, ExitCode: 137})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 137 {
		t.Fatalf("expected exit code 137, got %v", err)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatal("expected a ServiceError inside the ExitError")
	}
	if !strings.Contains(svcErr.StyledMessage, pipeline.StageSalmonAlevin) || !strings.Contains(svcErr.StyledMessage, "137") {
		t.Errorf("styled message = %q", svcErr.StyledMessage)
	}
}

func TestWorkflowError_KeepsExistingServiceError(t *testing.T) {
	t.Parallel()

	original := newServiceError(errors.New("x"), issue.ConfigLoadFailedId, "")
	if got := workflowError(original); got != error(original) {
		t.Errorf("workflowError re-wrapped a ServiceError: %v", got)
	}
}

func TestNewServiceError_PanicsOnNil(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil error")
		}
	}()
	newServiceError(nil, 0, "")
}

func TestHandleError_RendersIssueAndSuggestions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	err := workflowError(programError(&progs.ResolutionError{
		Tool:   progs.ToolAlevinFry,
		EnvVar: "ALEVIN_FRY",
		Err:    errors.New("not found"),
	}))

	var buf bytes.Buffer
	env.app.handleError(&buf, fang.Styles{}, err)

	printed := buf.String()
	for _, want := range []string{"could not be found", "Set $ALEVIN_FRY to the alevin-fry executable"} {
		if !strings.Contains(printed, want) {
			t.Errorf("output missing %q:\n%s", want, printed)
		}
	}
}
