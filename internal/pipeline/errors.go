// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/pkg/types"
)

var (
	// ErrStageFailed is returned when a pipeline stage exits non-zero.
	ErrStageFailed = errors.New("pipeline stage failed")
	// ErrUnregisteredChemistry is returned when an unfiltered permit list is
	// requested for a chemistry without a known list.
	ErrUnregisteredChemistry = errors.New("unregistered chemistry")
	// ErrInvalidOptions is returned when workflow options fail validation.
	ErrInvalidOptions = errors.New("invalid workflow options")
)

type (
	// StageFailure identifies the stage that stopped a workflow.
	StageFailure struct {
		Stage    string
		ExitCode types.ExitCode
		// Err is set when the stage could not be started at all.
		Err error
	}

	// ChemistryError is returned for --unfiltered-pl with an unregistered chemistry.
	ChemistryError struct {
		Chemistry alevin.Chemistry
		// Registered lists the chemistries that do have a permit list.
		Registered []alevin.Chemistry
	}

	// InvalidOptionsError collects every field-level validation failure.
	InvalidOptionsError struct {
		Workflow    string
		FieldErrors []error
	}
)

// Error implements the error interface.
func (e *StageFailure) Error() string {
	msg := fmt.Sprintf("%s failed with exit status %d", e.Stage, e.ExitCode)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns ErrStageFailed and the start error, if any.
func (e *StageFailure) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrStageFailed, e.Err}
	}
	return []error{ErrStageFailed}
}

// Error implements the error interface.
func (e *ChemistryError) Error() string {
	msg := fmt.Sprintf("cannot use unrecognized chemistry %s with unfiltered permit list", e.Chemistry)
	if len(e.Registered) > 0 {
		names := make([]string, len(e.Registered))
		for i, c := range e.Registered {
			names[i] = c.String()
		}
		msg += " (registered: " + strings.Join(names, ", ") + ")"
	}
	return msg
}

// Unwrap returns ErrUnregisteredChemistry for errors.Is() compatibility.
func (e *ChemistryError) Unwrap() error { return ErrUnregisteredChemistry }

// Error implements the error interface.
func (e *InvalidOptionsError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid %s options: %v", e.Workflow, e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid %s options: %v", e.Workflow, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidOptions and every field error.
func (e *InvalidOptionsError) Unwrap() []error {
	return append([]error{ErrInvalidOptions}, e.FieldErrors...)
}
