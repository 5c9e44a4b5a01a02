// SPDX-License-Identifier: MPL-2.0

package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gotask-cli/pkg/taskfile"
)

// buildDirName is the dot-prefixed directory inside the task directory that
// holds materialized single-file task crates. The registry scan skips dot
// entries, so build output never becomes a task unit.
const buildDirName = ".build"

// materialize prepares the crate root for a task. Directory tasks already
// are crates and are returned as-is. A single-file task is staged under
// <taskdir>/.build/<name>/ as a main package with a generated manifest that
// carries the task's gt-mod-deps requirements verbatim.
func materialize(taskDir string, meta *taskfile.Metadata) (string, error) {
	if meta.Dir {
		return meta.Path, nil
	}

	crateRoot := filepath.Join(taskDir, buildDirName, meta.Name)
	if err := os.MkdirAll(crateRoot, 0o755); err != nil {
		return "", fmt.Errorf("failed to create build dir for task %q: %w", meta.Name, err)
	}

	src, err := os.ReadFile(meta.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read task script %s: %w", meta.Path, err)
	}
	if err := os.WriteFile(filepath.Join(crateRoot, "main.go"), src, 0o644); err != nil {
		return "", fmt.Errorf("failed to stage task %q: %w", meta.Name, err)
	}

	manifest, err := generateManifest(meta)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(crateRoot, "go.mod"), []byte(manifest), 0o644); err != nil {
		return "", fmt.Errorf("failed to write manifest for task %q: %w", meta.Name, err)
	}

	return crateRoot, nil
}

// generateManifest renders the go.mod for a staged single-file task.
// gt-mod-deps tokens pair up as `module/path version` and are written into
// the require block exactly as declared.
func generateManifest(meta *taskfile.Metadata) (string, error) {
	if len(meta.ModDeps)%2 != 0 {
		return "", fmt.Errorf("task %q: gt-mod-deps must pair each module path with a version, got %d tokens", meta.Name, len(meta.ModDeps))
	}

	var sb strings.Builder
	sb.WriteString("module ")
	sb.WriteString(meta.Name)
	sb.WriteString("\n\ngo 1.25\n")

	if len(meta.ModDeps) > 0 {
		sb.WriteString("\nrequire (\n")
		for i := 0; i < len(meta.ModDeps); i += 2 {
			sb.WriteString("\t")
			sb.WriteString(meta.ModDeps[i])
			sb.WriteString(" ")
			sb.WriteString(meta.ModDeps[i+1])
			sb.WriteString("\n")
		}
		sb.WriteString(")\n")
	}

	return sb.String(), nil
}
