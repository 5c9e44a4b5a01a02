// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/gotask/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/gotask/config.cue on macOS, %APPDATA%\gotask\config.cue
// on Windows). The package provides type-safe configuration access covering the task
// directory name, the build tool binary, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
