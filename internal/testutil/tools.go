// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// FakeTool describes a shell script standing in for an external program.
type FakeTool struct {
	// Name is the executable file name (e.g. "salmon").
	Name string
	// Version is printed as "<Name> <Version>" for --version.
	Version string
	// ExitCode is returned for every invocation other than --version, unless
	// the variable named by ExitEnvVar is set.
	ExitCode int
	// LogFile, when set, receives one line per invocation: the script name
	// followed by its arguments.
	LogFile string
}

// ExitEnvVar returns the variable that overrides the tool's exit code at run
// time, e.g. FAKE_ALEVIN_FRY_EXIT for alevin-fry.
func (f FakeTool) ExitEnvVar() string {
	return "FAKE_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")) + "_EXIT"
}

// Script returns the POSIX shell script implementing the tool.
func (f FakeTool) Script() string {
	logLine := ":"
	if f.LogFile != "" {
		logLine = fmt.Sprintf(`echo "%s $*" >> '%s'`, f.Name, f.LogFile)
	}

	return fmt.Sprintf(`#!/bin/sh
if [ "$1" = "--version" ]; then
	echo "%s %s"
	exit 0
fi
%s
exit ${%s:-%d}
`, f.Name, f.Version, logLine, f.ExitEnvVar(), f.ExitCode)
}

// WriteFakeTool writes tool into dir as an executable POSIX shell script and
// returns its path. Tests using it are skipped on Windows.
func WriteFakeTool(t testing.TB, dir string, tool FakeTool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are POSIX shell scripts")
	}

	path := filepath.Join(dir, tool.Name)
	MustWriteFile(t, path, []byte(tool.Script()), 0o755)
	return path
}

// MustReadFile returns the contents of path, failing the test on error.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
