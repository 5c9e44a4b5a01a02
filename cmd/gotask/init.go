// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gotask-cli/internal/registry"
)

var (
	initForce bool

	// initCmd scaffolds a task directory
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Scaffold a task directory in the current project",
		Long: `Create the task directory with an example task to get started.

The generated task is marked as the project default, so 'gotask run'
works immediately after init.`,
		RunE: runScaffold,
	}
)

// exampleTask is the starter task written by init.
const exampleTask = `/*
@gt-default@ true @@
*/

package main

import "fmt"

func main() {
	fmt.Println("Hello from gotask!")
}
`

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing example task")
}

func runScaffold(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd.Context())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	taskDir, err := scaffoldTaskDir(cwd, cfg.TaskDir, initForce)
	if err != nil {
		return err
	}

	cmd.Printf("%s Created %s\n\n", SuccessStyle.Render("✓"), taskDir)
	cmd.Println(SubtitleStyle.Render("Next steps:"))
	cmd.Println("  1. Edit " + filepath.Join(cfg.TaskDir, "hello"+registry.ScriptSuffix))
	cmd.Println("  2. Run 'gotask list' to see available tasks")
	cmd.Println("  3. Run 'gotask run' to execute the default task")

	return nil
}

// scaffoldTaskDir creates the task directory under root with an example task
// and a .gitignore covering the build area. It refuses to overwrite an
// existing example task unless force is set.
func scaffoldTaskDir(root, taskDirName string, force bool) (string, error) {
	taskDir := filepath.Join(root, taskDirName)
	if err := os.MkdirAll(taskDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create task directory: %w", err)
	}

	examplePath := filepath.Join(taskDir, "hello"+registry.ScriptSuffix)
	if _, err := os.Stat(examplePath); err == nil && !force {
		return "", fmt.Errorf("task '%s' already exists. Use --force to overwrite", examplePath)
	}
	if err := os.WriteFile(examplePath, []byte(exampleTask), 0o644); err != nil {
		return "", fmt.Errorf("failed to write example task: %w", err)
	}

	// Keep materialized build output out of version control.
	gitignorePath := filepath.Join(taskDir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitignorePath, []byte(".build/\n"), 0o644); err != nil {
			return "", fmt.Errorf("failed to write .gitignore: %w", err)
		}
	}

	return taskDir, nil
}
