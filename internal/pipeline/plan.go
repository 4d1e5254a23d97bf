// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/runner"
)

// Stage labels, used in logs and StageFailure.
const (
	StageMakeSplici         = "pyroe make-splici"
	StageSalmonIndex        = "salmon index"
	StageSalmonAlevin       = "salmon alevin"
	StageGeneratePermitList = "alevin-fry generate-permit-list"
	StageCollate            = "alevin-fry collate"
	StageQuant              = "alevin-fry quant"
)

type (
	// Plan is a fully resolved workflow: the directories and files it writes
	// and the stage commands it runs, in order.
	Plan struct {
		Workflow string
		// Dirs are created before any stage runs.
		Dirs []string
		// InfoFile and Info are set for the index workflow.
		InfoFile string
		Info     *IndexInfo
		// PermitList is set when the quant workflow uses an external permit list.
		PermitList *PermitListStep
		// Threads is the thread count passed to the stages; ThreadsClamped
		// reports whether it was lowered from the requested value.
		Threads        int
		ThreadsClamped bool
		Filter         alevin.CellFilterMethod
		Stages         []runner.Command
	}

	// PermitListStep describes the permit list a quant run uses.
	PermitListStep struct {
		Chemistry alevin.Chemistry
		Path      string
		// Present is false when the list still has to be downloaded.
		Present bool
	}
)

// Stage returns the command with the given label.
func (p *Plan) Stage(name string) (runner.Command, bool) {
	for _, s := range p.Stages {
		if s.Stage == name {
			return s, true
		}
	}
	return runner.Command{}, false
}
