// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simpleaf/simpleaf/internal/config"
	"github.com/simpleaf/simpleaf/internal/pipeline"
	"github.com/simpleaf/simpleaf/pkg/types"
)

type indexFlags struct {
	fasta     string
	gtf       string
	rlen      int
	output    string
	spliced   string
	unspliced string
	dedup     bool
	sparse    bool
	threads   int
	dryRun    bool
}

// newIndexCommand creates the `simpleaf index` command.
func newIndexCommand(app *App) *cobra.Command {
	var flags indexFlags

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Build a splici reference and index it with salmon",
		Long: `Build a splici reference with pyroe make-splici and index it with salmon.

The reference is written to <output>/ref, the index to <output>/index, and a
provenance record (program versions and arguments) to <output>/index_info.json
before any stage runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd, app, flags)
		},
	}

	f := indexCmd.Flags()
	f.StringVarP(&flags.fasta, "fasta", "f", "", "reference genome FASTA")
	f.StringVarP(&flags.gtf, "gtf", "g", "", "reference GTF annotation")
	f.IntVarP(&flags.rlen, "rlen", "r", 0, "target read length (must be greater than 5)")
	f.StringVarP(&flags.output, "output", "o", "", "output directory")
	f.StringVarP(&flags.spliced, "spliced", "s", "", "extra spliced sequences FASTA")
	f.StringVarP(&flags.unspliced, "unspliced", "u", "", "extra unspliced sequences FASTA")
	f.BoolVarP(&flags.dedup, "dedup", "d", false, "deduplicate identical sequences")
	f.BoolVarP(&flags.sparse, "sparse", "p", false, "build a sparse salmon index")
	f.IntVarP(&flags.threads, "threads", "t", config.DefaultThreads, "number of threads (default from config)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the stage commands without running them")

	for _, name := range []string{"fasta", "gtf", "rlen", "output"} {
		_ = indexCmd.MarkFlagRequired(name)
	}
	_ = indexCmd.MarkFlagFilename("fasta")
	_ = indexCmd.MarkFlagFilename("gtf")
	_ = indexCmd.MarkFlagDirname("output")

	return indexCmd
}

func runIndex(cmd *cobra.Command, app *App, flags indexFlags) error {
	ctx := cmd.Context()

	sess, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	opts := pipeline.IndexOptions{
		Fasta:      types.FilesystemPath(flags.fasta),
		GTF:        types.FilesystemPath(flags.gtf),
		ReadLength: flags.rlen,
		Output:     types.FilesystemPath(flags.output),
		Spliced:    types.FilesystemPath(flags.spliced),
		Unspliced:  types.FilesystemPath(flags.unspliced),
		Dedup:      flags.dedup,
		Sparse:     flags.sparse,
		Threads:    flags.threads,
	}
	if !cmd.Flags().Changed("threads") {
		opts.Threads = sess.cfg.Threads
	}
	if err := opts.Validate(); err != nil {
		return workflowError(err)
	}

	rp, err := sess.resolvePrograms(ctx)
	if err != nil {
		return workflowError(err)
	}

	if flags.dryRun {
		plan, err := sess.orchestrator.PlanIndex(rp, opts)
		if err != nil {
			return workflowError(err)
		}
		renderDryRun(app.stdout, plan)
		return nil
	}

	plan, err := sess.orchestrator.Index(ctx, rp, opts)
	if err != nil {
		return workflowError(err)
	}

	fmt.Fprintf(app.stdout, "%s Index built in %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(flags.output))
	fmt.Fprintf(app.stdout, "  %s %s\n", VerboseStyle.Render("t2g map:"), plan.Info.T2GFile)
	return nil
}
