// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/permitlist"
	"github.com/simpleaf/simpleaf/internal/progs"
	"github.com/simpleaf/simpleaf/internal/runner"
	"github.com/simpleaf/simpleaf/pkg/types"
)

var errNoFetcher = errors.New("no permit list fetcher configured")

// PlanQuant resolves the quant workflow without downloading anything. A
// permit list that is not cached yet is reported with Present false.
func (o *Orchestrator) PlanQuant(rp *progs.RequiredPrograms, opts QuantOptions) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var step *PermitListStep
	if opts.Filter.Unfiltered {
		if o.fetcher == nil {
			return nil, errNoFetcher
		}
		if !opts.Chemistry.IsRegistered() {
			return nil, newChemistryError(opts.Chemistry)
		}
		path, present, err := o.fetcher.Locate(opts.Chemistry)
		if err != nil {
			return nil, err
		}
		step = &PermitListStep{Chemistry: opts.Chemistry, Path: path, Present: present}
	}
	return o.quantPlan(rp, opts, step)
}

// Quant maps and quantifies a sample. With --unfiltered-pl the permit list is
// fetched first; each stage then runs only if the previous one succeeded.
func (o *Orchestrator) Quant(ctx context.Context, rp *progs.RequiredPrograms, opts QuantOptions) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	o.logger.Info("quantifying sample", "index", opts.Index)

	var step *PermitListStep
	if opts.Filter.Unfiltered {
		if o.fetcher == nil {
			return nil, errNoFetcher
		}
		res, err := o.fetcher.Fetch(ctx, opts.Chemistry)
		if err != nil {
			return nil, err
		}
		if res.Status == permitlist.StatusUnregisteredChemistry {
			return nil, newChemistryError(opts.Chemistry)
		}
		o.logger.Info("permit list ready", "status", res.Status, "path", res.Path)
		step = &PermitListStep{Chemistry: opts.Chemistry, Path: res.Path, Present: true}
	}

	plan, err := o.quantPlan(rp, opts, step)
	if err != nil {
		return nil, err
	}
	return plan, o.execute(ctx, plan)
}

func (o *Orchestrator) quantPlan(rp *progs.RequiredPrograms, opts QuantOptions, step *PermitListStep) (*Plan, error) {
	salmon, err := rp.SalmonInfo()
	if err != nil {
		return nil, err
	}
	fry, err := rp.AlevinFryInfo()
	if err != nil {
		return nil, err
	}

	req := opts.Filter
	if step != nil {
		req.ExternalList = types.FilesystemPath(step.Path)
	}
	method, err := req.Method()
	if err != nil {
		return nil, err
	}

	out := opts.Output.String()
	mapDir := filepath.Join(out, "af_map")
	quantDir := filepath.Join(out, "af_quant")
	threads := strconv.Itoa(opts.Threads)

	mapArgs := []string{
		"alevin",
		"--index", opts.Index.String(),
		"-l", "A",
		"-1", types.JoinPaths(opts.Reads1),
		"-2", types.JoinPaths(opts.Reads2),
		"--threads", threads,
		"-o", mapDir,
		"--sketch",
		opts.Chemistry.AlignerFlag(),
	}

	gplArgs := []string{"generate-permit-list", "-i", mapDir, "-d", "fw"}
	gplArgs = append(gplArgs, method.Args()...)
	gplArgs = append(gplArgs, "-o", quantDir)

	return &Plan{
		Workflow:   "quant",
		PermitList: step,
		Threads:    opts.Threads,
		Filter:     method,
		Stages: []runner.Command{
			{Stage: StageSalmonAlevin, Path: salmon.ExePath, Args: mapArgs},
			{Stage: StageGeneratePermitList, Path: fry.ExePath, Args: gplArgs},
			{Stage: StageCollate, Path: fry.ExePath, Args: []string{"collate", "-i", quantDir, "-r", mapDir, "-t", threads}},
			{Stage: StageQuant, Path: fry.ExePath, Args: []string{
				"quant", "-i", quantDir, "-o", quantDir, "-t", threads,
				"-m", opts.T2GMap.String(), "-r", opts.Resolution,
			}},
		},
	}, nil
}

func newChemistryError(chem alevin.Chemistry) *ChemistryError {
	return &ChemistryError{Chemistry: chem, Registered: permitlist.RegisteredChemistries()}
}

var _ PermitListFetcher = (*permitlist.Fetcher)(nil)
