// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// ToolEnvVars lists every environment variable simpleaf reads.
var ToolEnvVars = []string{"SALMON", "ALEVIN_FRY", "PYROE", "ALEVIN_FRY_HOME", "SIMPLEAF_LOG_LEVEL"}

// ClearToolEnv unsets every variable in ToolEnvVars for the duration of the
// test so the host environment cannot leak into it.
func ClearToolEnv(t testing.TB) {
	t.Helper()
	for _, key := range ToolEnvVars {
		t.Cleanup(MustUnsetenv(t, key))
	}
}

// SetConfigHome points the platform config directory at dir for the duration
// of the test: XDG_CONFIG_HOME on Linux, APPDATA on Windows and HOME on macOS
// (where the config lives under ~/Library/Application Support).
func SetConfigHome(t testing.TB, dir string) {
	t.Helper()
	switch runtime.GOOS {
	case "windows":
		t.Cleanup(MustSetenv(t, "APPDATA", dir))
	case "darwin":
		t.Cleanup(MustSetenv(t, "HOME", dir))
	default:
		t.Cleanup(MustSetenv(t, "XDG_CONFIG_HOME", dir))
	}
}
