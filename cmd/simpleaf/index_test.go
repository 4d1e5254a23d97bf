// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/simpleaf/simpleaf/internal/config"
	"github.com/simpleaf/simpleaf/internal/pipeline"
)

func TestIndex_DryRun(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	out := filepath.Join(t.TempDir(), "idx")

	err := env.run("index", "-f", "genome.fa", "-g", "genes.gtf", "-r", "91", "-o", out, "-t", "32", "--dry-run")
	if err != nil {
		t.Fatalf("index --dry-run: %v", err)
	}

	printed := env.stdout.String()
	for _, want := range []string{
		"Dry Run",
		"clamped",
		"/opt/bin/pyroe make-splici genome.fa genes.gtf 91 " + filepath.Join(out, "ref"),
		"/opt/bin/salmon index -i " + filepath.Join(out, "index"),
		"--threads 4",
		filepath.Join(out, pipeline.IndexInfoFileName),
	} {
		if !strings.Contains(printed, want) {
			t.Errorf("dry run output missing %q:\n%s", want, printed)
		}
	}

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("dry run must not create %s", out)
	}
	for _, stage := range env.rec.Stages() {
		if !strings.HasSuffix(stage, "--version") {
			t.Errorf("dry run started stage %q", stage)
		}
	}
}

func TestIndex_Runs(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	out := filepath.Join(t.TempDir(), "idx")

	err := env.run("index", "-f", "genome.fa", "-g", "genes.gtf", "-r", "101", "-o", out, "-d", "-p", "-t", "2")
	if err != nil {
		t.Fatalf("index: %v", err)
	}

	stages := env.rec.Stages()
	for _, want := range []string{"salmon --version", "alevin-fry --version", "pyroe --version"} {
		if !slices.Contains(stages, want) {
			t.Errorf("all programs should be resolved, missing %q in %v", want, stages)
		}
	}
	if got := stages[len(stages)-2:]; !slices.Equal(got, []string{pipeline.StageMakeSplici, pipeline.StageSalmonIndex}) {
		t.Errorf("last stages = %v", got)
	}

	splici, _ := env.rec.Find(pipeline.StageMakeSplici)
	if !slices.Contains(splici.Args, "--dedup-seqs") {
		t.Errorf("make-splici args missing --dedup-seqs: %v", splici.Args)
	}
	index, _ := env.rec.Find(pipeline.StageSalmonIndex)
	if !slices.Contains(index.Args, "--sparse") {
		t.Errorf("salmon index args missing --sparse: %v", index.Args)
	}

	data, err := os.ReadFile(filepath.Join(out, pipeline.IndexInfoFileName))
	if err != nil {
		t.Fatalf("reading index info: %v", err)
	}
	var info pipeline.IndexInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("decoding index info: %v", err)
	}
	if info.VersionInfo == nil || info.VersionInfo.Pyroe == nil || info.VersionInfo.Pyroe.Version != "0.9.3" {
		t.Errorf("version_info = %+v", info.VersionInfo)
	}
	if !strings.Contains(env.stdout.String(), "Index built") {
		t.Errorf("missing success line:\n%s", env.stdout.String())
	}
}

func TestIndex_ThreadsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Threads = 3
	env := newTestEnv(t, cfg)

	err := env.run("index", "-f", "g.fa", "-g", "g.gtf", "-r", "91", "-o", filepath.Join(t.TempDir(), "o"), "--dry-run")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(env.stdout.String(), "--threads 3") {
		t.Errorf("config threads not applied:\n%s", env.stdout.String())
	}
}

func TestIndex_ShortReadLengthRejectedBeforeAnyProcess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	err := env.run("index", "-f", "g.fa", "-g", "g.gtf", "-r", "5", "-o", filepath.Join(t.TempDir(), "o"))
	if err == nil {
		t.Fatal("expected rlen 5 to be rejected")
	}
	if n := len(env.rec.Commands()); n != 0 {
		t.Errorf("no process should start, got %v", env.rec.Stages())
	}
}

func TestIndex_RequiredFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	err := env.run("index", "-f", "g.fa")
	if err == nil || !strings.Contains(err.Error(), "required flag") {
		t.Fatalf("expected a required flag error, got %v", err)
	}
}
