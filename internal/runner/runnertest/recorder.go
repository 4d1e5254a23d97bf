// SPDX-License-Identifier: MPL-2.0

// Package runnertest provides a recording runner.Runner for tests that need
// to assert on the exact commands a component starts without running them.
package runnertest

import (
	"context"
	"sync"

	"github.com/simpleaf/simpleaf/internal/runner"
	"github.com/simpleaf/simpleaf/pkg/types"
)

// Recorder implements runner.Runner by recording every command.
// Unless told otherwise each command succeeds with empty output.
type Recorder struct {
	mu       sync.Mutex
	commands []runner.Command
	results  map[string]*runner.Result
	outputs  map[string]string
	hook     func(runner.Command)
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		results: make(map[string]*runner.Result),
		outputs: make(map[string]string),
	}
}

// FailStage makes every command with the given stage label exit with code.
func (r *Recorder) FailStage(stage string, code types.ExitCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[stage] = &runner.Result{ExitCode: code}
}

// SetResult makes every command with the given stage label return res.
func (r *Recorder) SetResult(stage string, res *runner.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[stage] = res
}

// SetOutput sets the stdout returned by Capture for commands on path.
func (r *Recorder) SetOutput(path, stdout string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[path] = stdout
}

// OnRun registers fn to be called for every recorded command, before the
// result is returned. Tests use it to emulate side effects such as a
// downloader creating its output file.
func (r *Recorder) OnRun(fn func(runner.Command)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook = fn
}

// Run records cmd and returns its scripted result.
func (r *Recorder) Run(_ context.Context, cmd runner.Command) *runner.Result {
	return r.record(cmd, false)
}

// Capture records cmd and returns its scripted result with captured output.
func (r *Recorder) Capture(_ context.Context, cmd runner.Command) *runner.Result {
	return r.record(cmd, true)
}

// Commands returns a copy of every recorded command in call order.
func (r *Recorder) Commands() []runner.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]runner.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Stages returns the stage labels of the recorded commands in call order.
func (r *Recorder) Stages() []string {
	cmds := r.Commands()
	stages := make([]string, len(cmds))
	for i, c := range cmds {
		stages[i] = c.Stage
	}
	return stages
}

// Find returns the first recorded command with the given stage label.
func (r *Recorder) Find(stage string) (runner.Command, bool) {
	for _, c := range r.Commands() {
		if c.Stage == stage {
			return c, true
		}
	}
	return runner.Command{}, false
}

func (r *Recorder) record(cmd runner.Command, capture bool) *runner.Result {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	hook := r.hook
	res := &runner.Result{}
	if scripted, ok := r.results[cmd.Stage]; ok {
		copied := *scripted
		res = &copied
	}
	if capture && res.Output == "" {
		res.Output = r.outputs[cmd.Path]
	}
	r.mu.Unlock()

	if hook != nil {
		hook(cmd)
	}
	return res
}
