// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/simpleaf/simpleaf/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the simpleaf command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "simpleaf",
		Short: "A simple workflow manager for alevin-fry",
		Long: TitleStyle.Render("simpleaf") + SubtitleStyle.Render(" - A simple workflow manager for alevin-fry") + `

simpleaf drives pyroe, salmon and alevin-fry through the two steps of a
single-cell RNA-seq analysis: building a splici index and quantifying a sample.

` + SubtitleStyle.Render("Programs:") + `
  Each program is taken from its environment variable ($SALMON, $ALEVIN_FRY,
  $PYROE), then from the config file, then from your PATH.

` + SubtitleStyle.Render("Examples:") + `
  simpleaf programs                      Show the programs simpleaf will use
  simpleaf index -f genome.fa -g genes.gtf -r 91 -o idx
  simpleaf quant -i idx/index -1 r1.fq.gz -2 r2.fq.gz -c 10xv3 --knee \
      -m idx/ref/splici_fl86_t2g_3col.tsv -r cr-like -o quant
  simpleaf config show                   Show current configuration`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/simpleaf/config.cue)")

	rootCmd.AddCommand(newIndexCommand(app))
	rootCmd.AddCommand(newQuantCommand(app))
	rootCmd.AddCommand(newProgramsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the command line.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
