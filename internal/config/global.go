// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride lets tests point ConfigDir at a temp directory. It exists
// because os.UserHomeDir() doesn't reliably respect the HOME environment
// variable on all platforms (e.g., macOS in CI), so t.Setenv alone is not
// enough to isolate the gotask config directory.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup so later tests see the
// real platform config directory again.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride redirects ConfigDir (and everything layered on it:
// loading, CreateDefaultConfig, Save) to dir. Intended for tests only.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
