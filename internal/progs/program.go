// SPDX-License-Identifier: MPL-2.0

package progs

import (
	"errors"
	"fmt"
)

// ErrMissingProgram is returned when a workflow needs a program that was not resolved.
var ErrMissingProgram = errors.New("required program not resolved")

type (
	// ProgramInfo describes one resolved and version-checked executable.
	ProgramInfo struct {
		ExePath string `json:"exe_path"`
		Version string `json:"version"`
	}

	// RequiredPrograms holds the resolution result for every tool.
	// A nil entry means the tool was not resolved.
	RequiredPrograms struct {
		Salmon    *ProgramInfo `json:"salmon"`
		AlevinFry *ProgramInfo `json:"alevin_fry"`
		Pyroe     *ProgramInfo `json:"pyroe"`
	}

	// MissingProgramError is returned by the RequiredPrograms accessors.
	MissingProgramError struct {
		Tool Tool
	}
)

// Error implements the error interface.
func (e *MissingProgramError) Error() string {
	return fmt.Sprintf("%s is required but was not resolved", e.Tool)
}

// Unwrap returns ErrMissingProgram for errors.Is() compatibility.
func (e *MissingProgramError) Unwrap() error { return ErrMissingProgram }

// Get returns the ProgramInfo for tool, or nil when it is unresolved.
func (rp *RequiredPrograms) Get(tool Tool) *ProgramInfo {
	if rp == nil {
		return nil
	}
	switch tool {
	case ToolSalmon:
		return rp.Salmon
	case ToolAlevinFry:
		return rp.AlevinFry
	case ToolPyroe:
		return rp.Pyroe
	default:
		return nil
	}
}

// Require returns the ProgramInfo for tool or a MissingProgramError.
func (rp *RequiredPrograms) Require(tool Tool) (*ProgramInfo, error) {
	if info := rp.Get(tool); info != nil {
		return info, nil
	}
	return nil, &MissingProgramError{Tool: tool}
}

// SalmonInfo returns the resolved salmon executable.
func (rp *RequiredPrograms) SalmonInfo() (*ProgramInfo, error) { return rp.Require(ToolSalmon) }

// AlevinFryInfo returns the resolved alevin-fry executable.
func (rp *RequiredPrograms) AlevinFryInfo() (*ProgramInfo, error) { return rp.Require(ToolAlevinFry) }

// PyroeInfo returns the resolved pyroe executable.
func (rp *RequiredPrograms) PyroeInfo() (*ProgramInfo, error) { return rp.Require(ToolPyroe) }

func (rp *RequiredPrograms) set(tool Tool, info *ProgramInfo) {
	switch tool {
	case ToolSalmon:
		rp.Salmon = info
	case ToolAlevinFry:
		rp.AlevinFry = info
	case ToolPyroe:
		rp.Pyroe = info
	}
}
