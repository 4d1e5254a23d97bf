// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/simpleaf/simpleaf/internal/progs"
	"github.com/simpleaf/simpleaf/internal/runner"
)

// PlanIndex resolves the index workflow without touching the filesystem.
func (o *Orchestrator) PlanIndex(rp *progs.RequiredPrograms, opts IndexOptions) (*Plan, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pyroe, err := rp.PyroeInfo()
	if err != nil {
		return nil, err
	}
	salmon, err := rp.SalmonInfo()
	if err != nil {
		return nil, err
	}

	out := opts.Output.String()
	ref := filepath.Join(out, "ref")
	prefix := fmt.Sprintf("splici_fl%d", opts.ReadLength-5)
	t2g := filepath.Join(ref, prefix+"_t2g_3col.tsv")

	splici := []string{"make-splici"}
	if opts.Dedup {
		splici = append(splici, "--dedup-seqs")
	}
	if opts.Spliced != "" {
		splici = append(splici, "--extra-spliced", opts.Spliced.String())
	}
	if opts.Unspliced != "" {
		splici = append(splici, "--extra-unspliced", opts.Unspliced.String())
	}
	splici = append(splici, opts.Fasta.String(), opts.GTF.String(), strconv.Itoa(opts.ReadLength), ref)

	threads, clamped := o.clampThreads(opts.Threads)

	index := []string{"index", "-i", filepath.Join(out, "index"), "-t", filepath.Join(ref, prefix+".fa")}
	if opts.Sparse {
		index = append(index, "--sparse")
	}
	index = append(index, "--threads", strconv.Itoa(threads))

	return &Plan{
		Workflow:       "index",
		Dirs:           []string{out, ref},
		InfoFile:       filepath.Join(out, IndexInfoFileName),
		Info:           newIndexInfo(rp, opts, t2g),
		Threads:        threads,
		ThreadsClamped: clamped,
		Stages: []runner.Command{
			{Stage: StageMakeSplici, Path: pyroe.ExePath, Args: splici},
			{Stage: StageSalmonIndex, Path: salmon.ExePath, Args: index},
		},
	}, nil
}

// Index builds the splici reference and its salmon index. index_info.json is
// written before any stage runs.
func (o *Orchestrator) Index(ctx context.Context, rp *progs.RequiredPrograms, opts IndexOptions) (*Plan, error) {
	plan, err := o.PlanIndex(rp, opts)
	if err != nil {
		return nil, err
	}

	for _, dir := range plan.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return plan, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := WriteIndexInfo(plan.InfoFile, plan.Info); err != nil {
		return plan, err
	}
	o.logger.Debug("wrote index info", "path", plan.InfoFile)

	return plan, o.execute(ctx, plan)
}
