// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/simpleaf/simpleaf/internal/progs"
)

// programRow is one line of the programs table.
type programRow struct {
	tool progs.Tool
	info *progs.ProgramInfo
	err  error
}

// newProgramsCommand creates the `simpleaf programs` command.
func newProgramsCommand(app *App) *cobra.Command {
	var asJSON bool

	programsCmd := &cobra.Command{
		Use:   "programs",
		Short: "Show the salmon, alevin-fry and pyroe executables simpleaf would use",
		Long: `Locate salmon, alevin-fry and pyroe, run each with --version and check the
result against the supported version range. Every program is checked, even
when an earlier one fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrograms(cmd.Context(), app, asJSON)
		},
	}
	programsCmd.Flags().BoolVar(&asJSON, "json", false, "print the resolved programs as JSON")

	return programsCmd
}

func runPrograms(ctx context.Context, app *App, asJSON bool) error {
	sess, err := app.newSession(ctx)
	if err != nil {
		return err
	}

	rp, errs := sess.resolver.ResolveEach(ctx)

	rows := make([]programRow, 0, len(progs.AllTools()))
	var firstErr error
	for _, tool := range progs.AllTools() {
		resolveErr := errs[tool]
		rows = append(rows, programRow{tool: tool, info: rp.Get(tool), err: resolveErr})
		if resolveErr != nil && firstErr == nil {
			firstErr = resolveErr
		}
	}

	if asJSON {
		enc := json.NewEncoder(app.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rp); err != nil {
			return fmt.Errorf("encoding programs: %w", err)
		}
	} else {
		renderProgramsTable(app.stdout, rows)
	}

	if firstErr != nil {
		return workflowError(programError(firstErr))
	}
	return nil
}

// renderProgramsTable prints one aligned row per tool.
func renderProgramsTable(w io.Writer, rows []programRow) {
	header := []string{"PROGRAM", "VERSION", "PATH", "STATUS"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		version, path := "-", "-"
		status := SuccessStyle.Render("ok")
		if row.info != nil {
			version, path = row.info.Version, row.info.ExePath
		}
		if row.err != nil {
			status = ErrorStyle.Render(row.err.Error())
		}
		cells = append(cells, []string{row.tool.String(), version, path, status})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, line := range cells {
		for i, c := range line {
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}

	var sb strings.Builder
	for i, h := range header {
		sb.WriteString(tableHeaderStyle.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")
	for _, line := range cells {
		for i, c := range line {
			if i == len(line)-1 {
				sb.WriteString(c)
				continue
			}
			sb.WriteString(tableCellStyle.Width(widths[i] + 2).Render(c))
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}
