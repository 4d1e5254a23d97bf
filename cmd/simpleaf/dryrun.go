// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/simpleaf/simpleaf/internal/pipeline"
)

// renderDryRun prints a resolved workflow without executing it: the
// directories and files it would write, the permit list it would use and
// every stage command line, in order.
func renderDryRun(w io.Writer, plan *pipeline.Plan) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Workflow:"), plan.Workflow)

	threads := fmt.Sprintf("%d", plan.Threads)
	if plan.ThreadsClamped {
		threads += " " + WarningStyle.Render("(clamped to available parallelism)")
	}
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Threads:"), threads)

	if plan.Filter != nil {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Cell filter:"), plan.Filter.String())
	}

	if pl := plan.PermitList; pl != nil {
		state := SuccessStyle.Render("(cached)")
		if !pl.Present {
			state = WarningStyle.Render("(would download)")
		}
		fmt.Fprintf(w, "  %s %s %s\n", VerboseHighlightStyle.Render("Permit list:"), pl.Path, state)
	}

	if len(plan.Dirs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, VerboseHighlightStyle.Render("  Directories:"))
		for _, dir := range plan.Dirs {
			fmt.Fprintf(w, "    %s\n", dir)
		}
	}

	if plan.InfoFile != "" {
		fmt.Fprintf(w, "\n  %s %s\n", VerboseHighlightStyle.Render("Writes:"), plan.InfoFile)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Stages:"))
	for i, stage := range plan.Stages {
		fmt.Fprintf(w, "    %d. %s\n", i+1, CmdStyle.Render(stage.String()))
	}
	fmt.Fprintln(w)
}
