// SPDX-License-Identifier: MPL-2.0

package taskfile

import (
	"fmt"
	"strconv"
	"strings"

	"gotask-cli/pkg/atat"
)

// Directive keys recognized by gotask. Any other key is ignored.
const (
	// KeyDefault marks a task as part of the default run set.
	KeyDefault = "gt-default"
	// KeyBootstrap marks a task as a bootstrap task.
	KeyBootstrap = "gt-bootstrap"
	// KeyModDeps lists module requirements for the task's build manifest.
	KeyModDeps = "gt-mod-deps"
	// KeyTaskDeps lists tasks that must complete before this one.
	KeyTaskDeps = "gt-task-deps"
	// KeyMinVersion declares a minimum gotask version for the task.
	KeyMinVersion = "gt-min-version"
)

// Metadata is the configuration of one discovered task unit.
type Metadata struct {
	// Name uniquely identifies the task within a registry (case-sensitive).
	// It is derived from the task's file or directory name.
	Name string
	// Path is the crate root: the script file for single-file tasks, or the
	// directory containing the build manifest for directory tasks.
	Path string
	// Dir reports whether the task is a directory unit with its own manifest.
	Dir bool
	// Default marks the task for the run set used when no task names are
	// requested.
	Default bool
	// Bootstrap marks the task for execution before every main phase.
	Bootstrap bool
	// ModDeps holds module requirement tokens from gt-mod-deps directives,
	// in declaration order. Tokens pair up as `module/path version` and are
	// written verbatim into the generated manifest of a single-file task.
	ModDeps []string
	// TaskDeps holds the names of tasks that must complete successfully
	// before this task runs. Order carries no ranking weight.
	TaskDeps []string
	// MinVersion is the declared semantic-version lower bound on the running
	// gotask, in canonical `major.minor.patch` form. Empty means no bound.
	MinVersion string
}

// InvalidVersionStringError is returned when a gt-min-version value is not a
// three-component semantic version.
type InvalidVersionStringError struct {
	// Task is the task whose directive was malformed.
	Task string
	// Value is the rejected version string.
	Value string
}

// Error implements the error interface.
func (e *InvalidVersionStringError) Error() string {
	return fmt.Sprintf("task %q: invalid version string %q (want major.minor.patch)", e.Task, e.Value)
}

// FromDirectives interprets parsed directives into a Metadata for the task
// named name rooted at path.
//
// Interpretation rules:
//   - unrecognized keys are ignored
//   - boolean keys are true only for the literal string "true"
//   - list keys split their value into whitespace-delimited tokens across
//     all lines, discard blank tokens, and accumulate across duplicate
//     directives in file order
//   - other duplicate keys are last-wins
func FromDirectives(name, path string, dir bool, directives []atat.Directive) (*Metadata, error) {
	meta := &Metadata{
		Name: name,
		Path: path,
		Dir:  dir,
	}

	for _, d := range directives {
		switch d.Key {
		case KeyDefault:
			meta.Default = d.Value == "true"
		case KeyBootstrap:
			meta.Bootstrap = d.Value == "true"
		case KeyModDeps:
			meta.ModDeps = append(meta.ModDeps, strings.Fields(d.Value)...)
		case KeyTaskDeps:
			meta.TaskDeps = append(meta.TaskDeps, strings.Fields(d.Value)...)
		case KeyMinVersion:
			version, err := ParseVersion(d.Value)
			if err != nil {
				return nil, &InvalidVersionStringError{Task: name, Value: d.Value}
			}
			meta.MinVersion = version
		}
	}

	return meta, nil
}

// DependsOn reports whether the task declares a dependency on name.
func (m *Metadata) DependsOn(name string) bool {
	for _, dep := range m.TaskDeps {
		if dep == name {
			return true
		}
	}
	return false
}

// ParseVersion validates a strict three-component `major.minor.patch` version
// string and returns it in canonical form (no leading zeros, no prefix).
func ParseVersion(s string) (string, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("version %q does not have three components", s)
	}

	nums := make([]string, 3)
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return "", fmt.Errorf("version %q component %q is not numeric", s, part)
		}
		nums[i] = strconv.FormatUint(n, 10)
	}

	return strings.Join(nums, "."), nil
}
