// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/simpleaf/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/simpleaf/config.cue on macOS, %APPDATA%\simpleaf\config.cue
// on Windows), falling back to ./config.cue. Environment variables override file values:
// SALMON, ALEVIN_FRY and PYROE select tool executables, ALEVIN_FRY_HOME sets the permit
// list cache root and SIMPLEAF_LOG_LEVEL sets the log level.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
