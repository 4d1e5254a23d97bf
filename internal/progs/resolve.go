// SPDX-License-Identifier: MPL-2.0

package progs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/simpleaf/simpleaf/internal/runner"
)

const (
	// ToolSalmon is the aligner/indexer.
	ToolSalmon Tool = "salmon"
	// ToolAlevinFry is the single-cell quantifier.
	ToolAlevinFry Tool = "alevin-fry"
	// ToolPyroe is the splici reference builder.
	ToolPyroe Tool = "pyroe"
)

type (
	// Tool is the canonical executable name of an external program.
	Tool string

	// Requirement pairs a tool with the version range it must satisfy.
	Requirement struct {
		Tool  Tool
		Range string
	}

	// Resolver locates tools and validates their versions.
	Resolver struct {
		runner    runner.Runner
		logger    *log.Logger
		lookPath  func(string) (string, error)
		overrides map[Tool]string
		ranges    map[Tool]string
	}

	// ResolverOption configures a Resolver.
	ResolverOption func(*Resolver)
)

// AllTools lists every tool in resolution order.
func AllTools() []Tool {
	return []Tool{ToolSalmon, ToolAlevinFry, ToolPyroe}
}

// DefaultRequirements returns the supported version range of every tool.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{Tool: ToolSalmon, Range: ">=1.5.1, <2.0.0"},
		{Tool: ToolAlevinFry, Range: ">=0.4.1, <1.0.0"},
		{Tool: ToolPyroe, Range: ">=0.6.2, <1.0.0"},
	}
}

// String returns the executable name.
func (t Tool) String() string { return string(t) }

// EnvVar returns the environment variable that overrides the tool's location.
func (t Tool) EnvVar() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "-", "_"))
}

// WithOverride uses path for tool instead of searching the PATH.
// An empty path is ignored.
func WithOverride(tool Tool, path string) ResolverOption {
	return func(r *Resolver) {
		if path != "" {
			r.overrides[tool] = path
		}
	}
}

// withRange replaces the supported version range of tool.
func withRange(tool Tool, rng string) ResolverOption {
	return func(r *Resolver) {
		r.ranges[tool] = rng
	}
}

// WithLookPath replaces the PATH search function (exec.LookPath by default).
func WithLookPath(fn func(string) (string, error)) ResolverOption {
	return func(r *Resolver) {
		r.lookPath = fn
	}
}

// NewResolver creates a Resolver that runs version checks through run.
func NewResolver(run runner.Runner, logger *log.Logger, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		runner:    run,
		logger:    logger,
		lookPath:  exec.LookPath,
		overrides: make(map[Tool]string),
		ranges:    make(map[Tool]string),
	}
	for _, req := range DefaultRequirements() {
		r.ranges[req.Tool] = req.Range
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Locate returns the executable path for tool without checking its version.
func (r *Resolver) Locate(tool Tool) (string, error) {
	if p, ok := r.overrides[tool]; ok {
		r.logger.Debug("using configured executable", "tool", tool, "path", p)
		return p, nil
	}

	env := tool.EnvVar()
	r.logger.Warn("override unset, trying default path", "env", "$"+env)
	r.logger.Info("if a satisfactory version is not found, consider setting the variable", "env", "$"+env)

	p, err := r.lookPath(tool.String())
	if err != nil {
		return "", &ResolutionError{Tool: tool, EnvVar: env, Err: err}
	}
	r.logger.Info("found program in PATH", "tool", tool, "path", p)
	return p, nil
}

// Resolve locates tool, runs `<exe> --version` and validates the result.
func (r *Resolver) Resolve(ctx context.Context, tool Tool) (*ProgramInfo, error) {
	rng, ok := r.ranges[tool]
	if !ok {
		return nil, fmt.Errorf("no version requirement registered for %q", tool)
	}

	exe, err := r.Locate(tool)
	if err != nil {
		return nil, err
	}

	res := r.runner.Capture(ctx, runner.Command{
		Stage: tool.String() + " --version",
		Path:  exe,
		Args:  []string{"--version"},
	})
	if !res.Success() {
		reason := fmt.Sprintf("could not run --version (exit code %d)", res.ExitCode)
		if res.ExitCode.IsNotFound() {
			reason = "executable could not be started"
		}
		return nil, &VersionError{Tool: tool, ExePath: exe, Range: rng, Reason: reason, Err: res.Error}
	}

	v, err := CheckVersionConstraints(rng, res.Output)
	if err != nil {
		verr := &VersionError{Tool: tool, ExePath: exe, Range: rng}
		populateVersionError(verr, err)
		return nil, verr
	}

	r.logger.Debug("resolved program", "tool", tool, "path", exe, "version", v)
	return &ProgramInfo{ExePath: exe, Version: v.Original()}, nil
}

// ResolveAll resolves tools in order and stops at the first failure.
// With no tools given, every tool is resolved.
func (r *Resolver) ResolveAll(ctx context.Context, tools ...Tool) (*RequiredPrograms, error) {
	if len(tools) == 0 {
		tools = AllTools()
	}
	rp := &RequiredPrograms{}
	for _, tool := range tools {
		info, err := r.Resolve(ctx, tool)
		if err != nil {
			return nil, err
		}
		rp.set(tool, info)
	}
	return rp, nil
}

// ResolveEach resolves every tool, continuing past failures. Failed tools
// are left nil in the result and their errors are keyed by tool. With no
// tools given, every tool is resolved.
func (r *Resolver) ResolveEach(ctx context.Context, tools ...Tool) (*RequiredPrograms, map[Tool]error) {
	if len(tools) == 0 {
		tools = AllTools()
	}
	rp := &RequiredPrograms{}
	errs := make(map[Tool]error)
	for _, tool := range tools {
		info, err := r.Resolve(ctx, tool)
		if err != nil {
			errs[tool] = err
			continue
		}
		rp.set(tool, info)
	}
	return rp, errs
}

// CheckVersionConstraints takes the last whitespace-delimited token of
// output as a version and checks it against rng.
func CheckVersionConstraints(rng, output string) (*Version, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return nil, &versionCheckError{reason: "no version reported"}
	}
	token := fields[len(fields)-1]

	req, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	v, err := ParseVersion(token)
	if err != nil {
		return nil, &versionCheckError{found: token, reason: fmt.Sprintf("could not parse version %q", token), err: err}
	}
	if !req.Matches(v) {
		return nil, &versionCheckError{found: token, reason: fmt.Sprintf("parsed version %q does not satisfy constraints %q", token, req)}
	}
	return v, nil
}

// versionCheckError carries the details CheckVersionConstraints found so the
// resolver can fold them into a VersionError.
type versionCheckError struct {
	found  string
	reason string
	err    error
}

func (e *versionCheckError) Error() string {
	if e.err != nil {
		return e.reason + ": " + e.err.Error()
	}
	return e.reason
}

func (e *versionCheckError) Unwrap() []error {
	if e.err != nil {
		return []error{ErrVersionMismatch, e.err}
	}
	return []error{ErrVersionMismatch}
}

func populateVersionError(verr *VersionError, err error) {
	var vce *versionCheckError
	if errors.As(err, &vce) {
		verr.Found = vce.found
		verr.Reason = vce.reason
		verr.Err = vce.err
		return
	}
	verr.Reason = "invalid version requirement"
	verr.Err = err
}
