// SPDX-License-Identifier: MPL-2.0

package taskenv

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"gotask-cli/internal/envbridge"
)

// Well-known environment variables set by gotask for every task process.
const (
	// EnvProjectRoot is the absolute path of the project being built.
	EnvProjectRoot = "GOTASK_PATH"
	// EnvTaskDir is the absolute path of the project's task directory.
	EnvTaskDir = "GOTASK_TASK_DIR"
	// EnvTaskName is the name of the currently running task.
	EnvTaskName = "GOTASK_TASK_NAME"
	// EnvBridgeFile is the path of the invocation's environment bridge file.
	EnvBridgeFile = envbridge.EnvVar
)

// ProjectRoot returns the project root the invocation was started from, or
// empty when not running under gotask.
func ProjectRoot() string {
	return os.Getenv(EnvProjectRoot)
}

// TaskDir returns the task directory path, or empty when not running under
// gotask.
func TaskDir() string {
	return os.Getenv(EnvTaskDir)
}

// TaskName returns the running task's name, or empty when not running under
// gotask.
func TaskName() string {
	return os.Getenv(EnvTaskName)
}

// Export durably sets an environment variable for every task that runs after
// the current one in the same invocation. It fails when the process is not
// running under gotask.
func Export(key, value string) error {
	path := os.Getenv(EnvBridgeFile)
	if path == "" {
		return fmt.Errorf("%s is not set: not running under gotask", EnvBridgeFile)
	}
	return envbridge.AppendExport(path, key, value)
}

// Exports returns the bridge state as the task currently sees it: everything
// exported by earlier tasks plus this task's own exports so far.
func Exports() (map[string]string, error) {
	path := os.Getenv(EnvBridgeFile)
	if path == "" {
		return nil, fmt.Errorf("%s is not set: not running under gotask", EnvBridgeFile)
	}
	return envbridge.New(path).Load()
}

// Logger returns a logger prefixed with the task name, writing to stderr so
// task output on stdout stays clean.
func Logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if name := TaskName(); name != "" {
		logger.SetPrefix(name)
	}
	return logger
}
