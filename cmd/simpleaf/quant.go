// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/config"
	"github.com/simpleaf/simpleaf/internal/pipeline"
	"github.com/simpleaf/simpleaf/pkg/types"
)

// filterFlags are the mutually exclusive cell filtering flags; exactly one is required.
var filterFlags = []string{"knee", "unfiltered-pl", "forced-cells", "expect-cells"}

type quantFlags struct {
	index       string
	reads1      []string
	reads2      []string
	threads     int
	knee        bool
	unfiltered  bool
	forcedCells int
	expectCells int
	minReads    int
	resolution  string
	chemistry   string
	t2gMap      string
	output      string
	dryRun      bool
}

// newQuantCommand creates the `simpleaf quant` command.
func newQuantCommand(app *App) *cobra.Command {
	var flags quantFlags

	quantCmd := &cobra.Command{
		Use:   "quant",
		Short: "Map reads with salmon alevin and quantify them with alevin-fry",
		Long: `Map a sample with salmon alevin, then run alevin-fry generate-permit-list,
collate and quant. Mapping output goes to <output>/af_map, quantification
output to <output>/af_quant.

Exactly one cell filtering method must be chosen:
  --knee             knee-finding on the observed barcodes
  --unfiltered-pl    the registered permit list of --chemistry (10xv2, 10xv3),
                     downloaded into $ALEVIN_FRY_HOME/plist when missing
  --forced-cells N   keep the top N barcodes
  --expect-cells N   expect roughly N cells`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuant(cmd, app, flags)
		},
	}

	f := quantCmd.Flags()
	f.StringVarP(&flags.index, "index", "i", "", "salmon index directory")
	f.StringSliceVarP(&flags.reads1, "reads1", "1", nil, "comma-separated barcode read files")
	f.StringSliceVarP(&flags.reads2, "reads2", "2", nil, "comma-separated biological read files")
	f.IntVarP(&flags.threads, "threads", "t", config.DefaultThreads, "number of threads (default from config)")
	f.BoolVarP(&flags.knee, "knee", "k", false, "use knee-finding cell filtering")
	f.BoolVarP(&flags.unfiltered, "unfiltered-pl", "u", false, "use the chemistry's unfiltered permit list")
	f.IntVarP(&flags.forcedCells, "forced-cells", "f", 0, "keep exactly this many cells")
	f.IntVarP(&flags.expectCells, "expect-cells", "e", 0, "expect this many cells")
	f.IntVar(&flags.minReads, "min-reads", alevin.DefaultMinReads, "minimum reads for a permit-listed barcode (with --unfiltered-pl)")
	f.StringVarP(&flags.resolution, "resolution", "r", "", "UMI resolution strategy (e.g. cr-like, parsimony)")
	f.StringVarP(&flags.chemistry, "chemistry", "c", "", "sequencing chemistry (10xv2, 10xv3 or a salmon chemistry name)")
	f.StringVarP(&flags.t2gMap, "t2g-map", "m", "", "transcript-to-gene map")
	f.StringVarP(&flags.output, "output", "o", "", "output directory")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the stage commands without running them")

	for _, name := range []string{"index", "reads1", "reads2", "resolution", "chemistry", "t2g-map", "output"} {
		_ = quantCmd.MarkFlagRequired(name)
	}
	quantCmd.MarkFlagsOneRequired(filterFlags...)
	quantCmd.MarkFlagsMutuallyExclusive(filterFlags...)
	_ = quantCmd.MarkFlagDirname("index")
	_ = quantCmd.MarkFlagDirname("output")

	return quantCmd
}

func runQuant(cmd *cobra.Command, app *App, flags quantFlags) error {
	ctx := cmd.Context()

	sess, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	opts := pipeline.QuantOptions{
		Index:   types.FilesystemPath(flags.index),
		Reads1:  toPaths(flags.reads1),
		Reads2:  toPaths(flags.reads2),
		Threads: flags.threads,
		Filter: alevin.FilterRequest{
			Knee:       flags.knee,
			Unfiltered: flags.unfiltered,
			MinReads:   flags.minReads,
		},
		Resolution: flags.resolution,
		Chemistry:  alevin.ParseChemistry(flags.chemistry),
		T2GMap:     types.FilesystemPath(flags.t2gMap),
		Output:     types.FilesystemPath(flags.output),
	}
	if cmd.Flags().Changed("forced-cells") {
		opts.Filter.ForcedCells = &flags.forcedCells
	}
	if cmd.Flags().Changed("expect-cells") {
		opts.Filter.ExpectCells = &flags.expectCells
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
		plan, err := sess.orchestrator.PlanQuant(rp, opts)
		if err != nil {
			return workflowError(err)
		}
		renderDryRun(app.stdout, plan)
		return nil
	}

	if _, err := sess.orchestrator.Quant(ctx, rp, opts); err != nil {
		return workflowError(err)
	}

	fmt.Fprintf(app.stdout, "%s Quantification written to %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(flags.output))
	return nil
}

func toPaths(values []string) []types.FilesystemPath {
	paths := make([]types.FilesystemPath, 0, len(values))
	for _, v := range values {
		paths = append(paths, types.FilesystemPath(v))
	}
	return paths
}
