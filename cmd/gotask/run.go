// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gotask-cli/internal/envbridge"
	"gotask-cli/internal/executor"
)

// runCmd executes tasks with their dependencies.
var runCmd = &cobra.Command{
	Use:   "run [task...]",
	Short: "Run tasks and their dependencies",
	Long: `Run the named tasks along with their transitive dependencies,
in dependency order. With no arguments, the project's default task set runs.

Bootstrap tasks always run first; the task directory is rescanned after
they complete so tasks they install become runnable in the same invocation.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(ctx)

	projectRoot, err := findProjectRoot(cfg.TaskDir)
	if err != nil {
		return err
	}

	bridge, err := envbridge.CreateTemp()
	if err != nil {
		return err
	}
	defer bridge.Remove() //nolint:errcheck // best-effort temp cleanup

	engine := &executor.Engine{
		ProjectRoot: projectRoot,
		TaskDir:     filepath.Join(projectRoot, cfg.TaskDir),
		Version:     Version,
		Runner:      &executor.GoToolRunner{GoTool: cfg.GoTool},
		Bridge:      bridge,
		Logger:      newRunLogger(),
	}

	if err := engine.Run(ctx, args); err != nil {
		// A failing task already wrote its own output; propagate its exit
		// code instead of wrapping it in another error message.
		var failed *executor.TaskFailedError
		if errors.As(err, &failed) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+failed.Error())
			return &ExitError{Code: failed.ExitCode, Err: failed}
		}
		return err
	}

	return nil
}

// newRunLogger builds the engine logger honoring the verbose flag.
func newRunLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "gotask",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// findProjectRoot walks up from the working directory looking for a directory
// that contains the task directory. When none is found the working directory
// itself is the project root, and the scan simply reports no tasks.
func findProjectRoot(taskDirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}

	dir := cwd
	for {
		info, err := os.Stat(filepath.Join(dir, taskDirName))
		if err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}
