// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// BuildRunner is the contract with the external build tool. The engine hands
// it a crate root (a directory containing a build manifest) and the complete
// environment overrides for the child process, and only ever inspects the
// returned exit status, never the tool's output streams.
type BuildRunner interface {
	BuildAndRun(ctx context.Context, crateRoot string, env map[string]string) (int, error)
}

// GoToolRunner drives the Go toolchain as the build tool, compiling and
// running a task in one step with `go run`.
type GoToolRunner struct {
	// GoTool is the toolchain binary to invoke. Empty means "go" from PATH.
	GoTool string
	// Stdout, Stderr, and Stdin are the streams handed to the task process.
	// Nil values fall back to the gotask process's own streams.
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// BuildAndRun compiles and runs the task rooted at crateRoot. The returned
// int is the task's exit status; a non-nil error means the tool could not be
// spawned at all.
func (r *GoToolRunner) BuildAndRun(ctx context.Context, crateRoot string, env map[string]string) (int, error) {
	tool := r.GoTool
	if tool == "" {
		tool = "go"
	}

	cmd := exec.CommandContext(ctx, tool, "run", ".")
	cmd.Dir = crateRoot
	cmd.Env = append(os.Environ(), envToSlice(env)...)

	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Stdin = r.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("failed to run build tool: %w", err)
	}

	return 0, nil
}

// envToSlice converts an environment map to KEY=VALUE form. Appended after
// os.Environ, these entries win for duplicate keys.
func envToSlice(env map[string]string) []string {
	entries := make([]string, 0, len(env))
	for key, value := range env {
		entries = append(entries, key+"="+value)
	}
	return entries
}
