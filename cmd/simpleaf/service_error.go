// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/issue"
	"github.com/simpleaf/simpleaf/internal/permitlist"
	"github.com/simpleaf/simpleaf/internal/pipeline"
	"github.com/simpleaf/simpleaf/internal/progs"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before formatting the underlying error.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a workflow error to its issue catalog entry, or 0.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, progs.ErrProgramNotFound):
		return issue.ProgramNotFoundId
	case errors.Is(err, progs.ErrVersionMismatch):
		return issue.VersionMismatchId
	case errors.Is(err, progs.ErrMissingProgram):
		return issue.MissingProgramId
	case errors.Is(err, permitlist.ErrConfig):
		return issue.PermitListConfigId
	case errors.Is(err, pipeline.ErrUnregisteredChemistry):
		return issue.UnregisteredChemistryId
	case errors.Is(err, permitlist.ErrDownloadFailed):
		return issue.DownloadFailedId
	case errors.Is(err, pipeline.ErrStageFailed):
		return issue.StageFailedId
	case errors.Is(err, pipeline.ErrInvalidOptions),
		errors.Is(err, alevin.ErrNoFilterMethod),
		errors.Is(err, alevin.ErrMultipleFilterMethods):
		return issue.InvalidOptionsId
	default:
		return 0
	}
}

// workflowError turns an error from a workflow into what RunE returns: a
// ServiceError, wrapped in an ExitError carrying the child's exit status
// when a stage failed.
func workflowError(err error) error {
	var existing *ServiceError
	if errors.As(err, &existing) {
		return err
	}

	var sf *pipeline.StageFailure
	if errors.As(err, &sf) {
		svcErr := newServiceError(err, issue.StageFailedId, renderStageFailure(sf))
		if sf.ExitCode != 0 {
			return &ExitError{Code: sf.ExitCode, Err: svcErr}
		}
		return svcErr
	}
	return newServiceError(err, classifyError(err), "")
}

// renderStageFailure creates a styled card for a failed pipeline stage.
func renderStageFailure(sf *pipeline.StageFailure) string {
	var sb strings.Builder
	sb.WriteString(renderHeaderStyle.Render("✗ Pipeline stage failed!"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Stage %s did not complete; no later stage was started.\n\n",
		renderCommandStyle.Render("'"+sf.Stage+"'"))
	sb.WriteString(renderLabelStyle.Render("Exit status:"))
	sb.WriteString(renderValueStyle.Render(fmt.Sprintf(" %d", sf.ExitCode)))
	sb.WriteString("\n")
	sb.WriteString(renderHintStyle.Render("Re-run with --dry-run to print every stage command line."))
	sb.WriteString("\n")
	return sb.String()
}

// renderServiceError prints any styled message first, then the optional
// issue help section.
func (a *App) renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(a.issueStyle)
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// handleError is the fang error handler: catalogued help first, then the
// error itself (with suggestions for actionable errors).
func (a *App) handleError(w io.Writer, styles fang.Styles, err error) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		a.renderServiceError(w, svcErr)
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		err = errors.New(formatErrorForDisplay(ae, a.flags.verbose))
	}
	fang.DefaultErrorHandler(w, styles, err)
}
