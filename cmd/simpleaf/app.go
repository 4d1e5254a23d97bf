// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/simpleaf/simpleaf/internal/config"
	"github.com/simpleaf/simpleaf/internal/issue"
	"github.com/simpleaf/simpleaf/internal/permitlist"
	"github.com/simpleaf/simpleaf/internal/pipeline"
	"github.com/simpleaf/simpleaf/internal/progs"
	"github.com/simpleaf/simpleaf/internal/runner"
	"github.com/simpleaf/simpleaf/pkg/types"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
		Path(opts config.LoadOptions) (string, bool, error)
	}

	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and gets its
	// logger, resolver and orchestrator from a per-invocation session.
	App struct {
		Config     ConfigProvider
		runner     runner.Runner
		lookPath   func(string) (string, error)
		maxThreads int
		issueStyle string
		stdout     io.Writer
		stderr     io.Writer
		flags      globalFlags
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		// Runner starts every child process; defaults to an exec runner
		// streaming to Stdout and Stderr.
		Runner runner.Runner
		// LookPath replaces the PATH search of the program resolver.
		LookPath func(string) (string, error)
		// MaxThreads overrides the available parallelism used to clamp index threads.
		MaxThreads int
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// globalFlags holds the persistent root flags.
	globalFlags struct {
		verbose    bool
		configPath string
	}

	// session holds the services built for one command invocation.
	session struct {
		cfg          *config.Config
		logger       *log.Logger
		resolver     *progs.Resolver
		orchestrator *pipeline.Orchestrator
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config:     deps.Config,
		runner:     deps.Runner,
		lookPath:   deps.LookPath,
		maxThreads: deps.MaxThreads,
		issueStyle: issueStyleFromEnv(),
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}, nil
}

// issueStyleFromEnv picks the glamour style for issue help.
func issueStyleFromEnv() string {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return "notty"
	}
	return "dark"
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.configPath)}
}

// loadConfig loads the configuration honoring --config.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId, "")
	}
	return cfg, nil
}

// newLogger builds the stderr logger. --verbose forces debug level; otherwise
// the configured level applies.
func (a *App) newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: "simpleaf",
	})
	level, err := log.ParseLevel(cfg.Log.Level.String())
	if err != nil {
		level = log.InfoLevel
	}
	if a.flags.verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// newSession loads configuration and builds the services for one command.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	logger := a.newLogger(cfg)
	if path, exists, pathErr := a.Config.Path(a.loadOptions()); pathErr == nil && exists {
		logger.Debug("loaded configuration", "path", path)
	}

	run := a.runner
	if run == nil {
		run = runner.NewExecRunner(runner.WithOutput(a.stdout, a.stderr))
	}

	resolverOpts := make([]progs.ResolverOption, 0, len(progs.AllTools())+1)
	for _, tool := range progs.AllTools() {
		resolverOpts = append(resolverOpts, progs.WithOverride(tool, cfg.ToolOverride(tool.String())))
	}
	if a.lookPath != nil {
		resolverOpts = append(resolverOpts, progs.WithLookPath(a.lookPath))
	}

	downloader, err := permitlist.NewDownloader(cfg.PermitList.Downloader.String(), run)
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId, "")
	}
	fetcher := permitlist.NewFetcher(cfg.AlevinFryHome, downloader, permitlist.WithLogger(logger))

	orchOpts := []pipeline.Option{
		pipeline.WithFetcher(fetcher),
		pipeline.WithLogger(logger),
	}
	if a.maxThreads > 0 {
		orchOpts = append(orchOpts, pipeline.WithMaxThreads(a.maxThreads))
	}

	return &session{
		cfg:          cfg,
		logger:       logger,
		resolver:     progs.NewResolver(run, logger, resolverOpts...),
		orchestrator: pipeline.NewOrchestrator(run, orchOpts...),
	}, nil
}

// resolvePrograms locates and validates salmon, alevin-fry and pyroe.
// All three are resolved up front, whichever workflow runs.
func (s *session) resolvePrograms(ctx context.Context) (*progs.RequiredPrograms, error) {
	rp, err := s.resolver.ResolveAll(ctx)
	if err != nil {
		return nil, programError(err)
	}
	return rp, nil
}

// programError attaches remediation hints to a resolver error.
func programError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("resolve programs")

	var resErr *progs.ResolutionError
	var verErr *progs.VersionError
	switch {
	case errors.As(err, &resErr):
		ctx.WithResource(resErr.Tool.String()).WithSuggestions(
			fmt.Sprintf("Set $%s to the %s executable", resErr.EnvVar, resErr.Tool),
			fmt.Sprintf("Or install %s somewhere on your PATH", resErr.Tool),
		)
	case errors.As(err, &verErr):
		ctx.WithResource(verErr.ExePath).WithSuggestions(
			fmt.Sprintf("Install a %s version satisfying %s", verErr.Tool, verErr.Range),
			fmt.Sprintf("Or point $%s at a supported installation", verErr.Tool.EnvVar()),
		)
	}
	return ctx.Wrap(err).BuildError()
}
