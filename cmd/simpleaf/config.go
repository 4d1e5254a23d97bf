// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simpleaf/simpleaf/internal/config"
)

const (
	dumpFormatCUE  = "cue"
	dumpFormatTOML = "toml"
)

// newConfigCommand creates the `simpleaf config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage simpleaf configuration",
		Long: `Manage simpleaf configuration.

Configuration is stored in:
  - Linux: ~/.config/simpleaf/config.cue
  - macOS: ~/Library/Application Support/simpleaf/config.cue
  - Windows: %APPDATA%\simpleaf\config.cue

The environment variables SALMON, ALEVIN_FRY, PYROE, ALEVIN_FRY_HOME and
SIMPLEAF_LOG_LEVEL override the file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	var format string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), app, format)
		},
	}
	dumpCmd.Flags().StringVar(&format, "format", dumpFormatCUE, "output format (cue, toml)")
	cfgCmd.AddCommand(dumpCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	unset := SubtitleStyle.Render("(unset)")
	show := func(indent, key, value string) {
		rendered := unset
		if value != "" {
			rendered = valueStyle.Render(value)
		}
		fmt.Fprintf(app.stdout, "%s%s: %s\n", indent, keyStyle.Render(key), rendered)
	}

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	path, exists, err := app.Config.Path(app.loadOptions())
	if err != nil || !exists {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("tools"))
	show("  ", "salmon", cfg.Tools.Salmon)
	show("  ", "alevin_fry", cfg.Tools.AlevinFry)
	show("  ", "pyroe", cfg.Tools.Pyroe)
	fmt.Fprintln(app.stdout)

	show("", "alevin_fry_home", cfg.AlevinFryHome)
	show("", "threads", strconv.Itoa(cfg.Threads))
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("permit_list"))
	show("  ", "downloader", cfg.PermitList.Downloader.String())
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("log"))
	show("  ", "level", cfg.Log.Level.String())

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig("")
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	path, exists, err := app.Config.Path(app.loadOptions())
	if err != nil {
		return err
	}

	state := SubtitleStyle.Render("(not created yet, run 'simpleaf config init')")
	if exists {
		state = SuccessStyle.Render("(exists)")
	}
	fmt.Fprintf(app.stdout, "%s %s\n", path, state)
	return nil
}

func dumpConfig(ctx context.Context, app *App, format string) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	switch format {
	case dumpFormatCUE:
		fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	case dumpFormatTOML:
		out, err := config.GenerateTOML(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(app.stdout, out)
	default:
		return fmt.Errorf("unknown format %q (valid: %s, %s)", format, dumpFormatCUE, dumpFormatTOML)
	}
	return nil
}
