// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"io"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/simpleaf/simpleaf/internal/alevin"
	"github.com/simpleaf/simpleaf/internal/permitlist"
	"github.com/simpleaf/simpleaf/internal/runner"
)

type (
	// PermitListFetcher resolves cached permit lists. *permitlist.Fetcher
	// implements it.
	PermitListFetcher interface {
		Fetch(ctx context.Context, chem alevin.Chemistry) (*permitlist.Result, error)
		Locate(chem alevin.Chemistry) (path string, present bool, err error)
	}

	// Orchestrator runs the index and quant workflows.
	Orchestrator struct {
		runner     runner.Runner
		fetcher    PermitListFetcher
		logger     *log.Logger
		maxThreads int
	}

	// Option configures an Orchestrator.
	Option func(*Orchestrator)
)

// WithFetcher sets the permit list fetcher used by --unfiltered-pl.
func WithFetcher(f PermitListFetcher) Option {
	return func(o *Orchestrator) {
		o.fetcher = f
	}
}

// WithLogger sets the logger stage command lines are reported to.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxThreads overrides the available parallelism used to clamp
// index thread counts (runtime.NumCPU by default).
func WithMaxThreads(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxThreads = n
		}
	}
}

// NewOrchestrator creates an Orchestrator that starts stages through run.
func NewOrchestrator(run runner.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		runner:     run,
		logger:     log.New(io.Discard),
		maxThreads: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// execute runs the stages of plan in order and stops at the first failure.
func (o *Orchestrator) execute(ctx context.Context, plan *Plan) error {
	for _, stage := range plan.Stages {
		o.logger.Info("running stage", "stage", stage.Stage, "cmd", stage.String())
		res := o.runner.Run(ctx, stage)
		if !res.Success() {
			o.logger.Error("stage failed", "stage", stage.Stage, "exit_code", res.ExitCode)
			return &StageFailure{Stage: stage.Stage, ExitCode: res.ExitCode, Err: res.Error}
		}
	}
	return nil
}

// clampThreads limits requested to the available parallelism.
func (o *Orchestrator) clampThreads(requested int) (int, bool) {
	if requested > o.maxThreads {
		o.logger.Warn("requested threads exceed available parallelism",
			"requested", requested, "available", o.maxThreads)
		o.logger.Warn("setting number of threads", "threads", o.maxThreads)
		return o.maxThreads, true
	}
	return requested, false
}
