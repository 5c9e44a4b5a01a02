// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/mod/semver"

	"gotask-cli/internal/envbridge"
	"gotask-cli/internal/registry"
	"gotask-cli/internal/resolver"
	"gotask-cli/pkg/taskenv"
	"gotask-cli/pkg/taskfile"
)

// TaskFailedError is returned when a task's build-and-run step exits
// non-zero. No further tasks run after it.
type TaskFailedError struct {
	Name     string
	ExitCode int
}

// Error implements the error interface.
func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %q failed with exit code %d", e.Name, e.ExitCode)
}

// VersionTooLowError is returned when a task declares a gt-min-version above
// the running gotask version. It is raised before any task executes.
type VersionTooLowError struct {
	Task     string
	Required string
	Current  string
}

// Error implements the error interface.
func (e *VersionTooLowError) Error() string {
	return fmt.Sprintf("task %q requires gotask >= %s, running %s", e.Task, e.Required, e.Current)
}

// Engine drives one invocation end to end.
type Engine struct {
	// ProjectRoot is the directory the invocation operates on.
	ProjectRoot string
	// TaskDir is the task directory inside ProjectRoot.
	TaskDir string
	// Version is the running tool's own semantic version. Development
	// builds without an embedded version pass every gate.
	Version string
	// Runner is the external build tool.
	Runner BuildRunner
	// Bridge carries environment exports between tasks.
	Bridge *envbridge.Bridge
	// Logger reports run progress. Nil falls back to the default logger.
	Logger *log.Logger
}

// Run executes one invocation for the requested task names:
//
//  1. scan and resolve, then gate every task about to run on gt-min-version
//  2. run all bootstrap tasks in discovery order
//  3. rescan the task directory (bootstraps may have installed new units)
//     and re-resolve the original request
//  4. run the resolved main order
//
// The first failure aborts the invocation; completed tasks' side effects,
// including bridge exports, stay in effect.
func (e *Engine) Run(ctx context.Context, requested []string) error {
	reg, err := registry.Scan(e.TaskDir)
	if err != nil {
		return err
	}
	bootstraps := reg.Bootstraps()

	// A requested task may not exist yet when a bootstrap is about to
	// install it, so an UnknownTask result is deferred until after the
	// reload when bootstraps are present. Every other resolution error is
	// final right away.
	order, err := resolver.Resolve(reg, requested)
	if err != nil {
		var unknown *resolver.UnknownTaskError
		if !errors.As(err, &unknown) || len(bootstraps) == 0 {
			return err
		}
		order = nil
	}

	if err := e.versionGate(append(bootstraps, order...)); err != nil {
		return err
	}

	if len(bootstraps) > 0 {
		e.logger().Debug("bootstrap phase", "tasks", len(bootstraps))
		for _, meta := range bootstraps {
			if err := e.runTask(ctx, meta); err != nil {
				return err
			}
		}

		// Bootstraps may have created task units, so the main graph is
		// rebuilt from a fresh scan against the original request.
		reg, err = registry.Scan(e.TaskDir)
		if err != nil {
			return err
		}
		order, err = resolver.Resolve(reg, requested)
		if err != nil {
			return err
		}
		if err := e.versionGate(order); err != nil {
			return err
		}
	}

	if len(order) == 0 {
		e.logger().Warn("no tasks to run")
		return nil
	}

	e.logger().Debug("main phase", "tasks", len(order))
	for _, meta := range order {
		if err := e.runTask(ctx, meta); err != nil {
			return err
		}
	}

	return nil
}

// versionGate rejects the run when any listed task requires a newer gotask
// than the one executing. Development builds ("dev" or any non-semver
// version string) are treated as unbounded.
func (e *Engine) versionGate(tasks []*taskfile.Metadata) error {
	current := "v" + e.Version
	if !semver.IsValid(current) {
		return nil
	}

	for _, meta := range tasks {
		if meta.MinVersion == "" {
			continue
		}
		if semver.Compare("v"+meta.MinVersion, current) > 0 {
			return &VersionTooLowError{
				Task:     meta.Name,
				Required: meta.MinVersion,
				Current:  e.Version,
			}
		}
	}
	return nil
}

// runTask executes a single task: merge bridge state into its environment,
// build and run it, then persist whatever it exported.
func (e *Engine) runTask(ctx context.Context, meta *taskfile.Metadata) error {
	env, err := e.taskEnv(meta)
	if err != nil {
		return err
	}

	crateRoot, err := materialize(e.TaskDir, meta)
	if err != nil {
		return err
	}

	e.logger().Info("running task", "task", meta.Name)
	code, err := e.Runner.BuildAndRun(ctx, crateRoot, env)
	if err != nil {
		return fmt.Errorf("task %q: %w", meta.Name, err)
	}
	if code != 0 {
		return &TaskFailedError{Name: meta.Name, ExitCode: code}
	}

	// The task may have appended exports to the bridge file; reload and
	// rewrite it in canonical form so the next task sees a clean snapshot.
	exports, err := e.Bridge.Load()
	if err != nil {
		return err
	}
	if err := e.Bridge.Store(exports); err != nil {
		return err
	}

	e.logger().Info("task succeeded", "task", meta.Name)
	return nil
}

// taskEnv builds the environment overrides for one task: current bridge
// state first, then the well-known GOTASK_* variables, which always win.
func (e *Engine) taskEnv(meta *taskfile.Metadata) (map[string]string, error) {
	env, err := e.Bridge.Load()
	if err != nil {
		return nil, err
	}

	env[taskenv.EnvProjectRoot] = e.ProjectRoot
	env[taskenv.EnvTaskDir] = e.TaskDir
	env[taskenv.EnvTaskName] = meta.Name
	env[taskenv.EnvBridgeFile] = e.Bridge.Path()
	return env, nil
}

func (e *Engine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}
