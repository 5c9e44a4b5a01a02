// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"gotask-cli/internal/registry"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTaskDirName is returned when a task_dir value cannot name a
	// single directory entry.
	ErrInvalidTaskDirName = errors.New("invalid task dir name")
	// ErrInvalidGoTool is returned when a go_tool value is whitespace-only.
	ErrInvalidGoTool = errors.New("invalid go tool")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config is the top-level application configuration.
	Config struct {
		// TaskDir is the name of the per-project task directory.
		TaskDir string `json:"task_dir" mapstructure:"task_dir"`
		// GoTool is the build tool binary used to compile and run tasks.
		GoTool string `json:"go_tool" mapstructure:"go_tool"`
		// UI holds terminal output settings.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// InvalidConfigError is returned when one or more Config fields fail
	// validation. It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		TaskDir: registry.TaskDirName,
		GoTool:  "go",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// IsValid returns whether the ColorScheme is one of the recognized values.
func (s ColorScheme) IsValid() (bool, []error) {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: s}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (must be auto, dark, or light)", string(e.Value))
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the Config has valid fields. It checks constraints
// the CUE schema cannot express: task_dir must be a single path element and
// go_tool must not be whitespace-only.
func (c Config) IsValid() (bool, []error) {
	var errs []error

	if strings.TrimSpace(c.TaskDir) == "" || strings.ContainsAny(c.TaskDir, `/\`) {
		errs = append(errs, fmt.Errorf("%w: %q must be a single directory name", ErrInvalidTaskDirName, c.TaskDir))
	}
	if strings.TrimSpace(c.GoTool) == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidGoTool, c.GoTool))
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
