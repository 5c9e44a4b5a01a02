// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"gotask-cli/internal/registry"
)

// metaCmd dumps the discovered task metadata as TOML, for editor and CI
// integrations that want to inspect the task graph without running it.
var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Dump discovered task metadata as TOML",
	RunE:  runMeta,
}

type (
	// metaDocument is the TOML rendering of a scanned task directory.
	metaDocument struct {
		TaskDir string     `toml:"task_dir"`
		Tasks   []metaTask `toml:"tasks,omitempty"`
	}

	// metaTask is one task's directive-derived metadata.
	metaTask struct {
		Name       string   `toml:"name"`
		Kind       string   `toml:"kind"`
		Path       string   `toml:"path"`
		Default    bool     `toml:"default,omitempty"`
		Bootstrap  bool     `toml:"bootstrap,omitempty"`
		TaskDeps   []string `toml:"task_deps,omitempty"`
		ModDeps    []string `toml:"mod_deps,omitempty"`
		MinVersion string   `toml:"min_version,omitempty"`
	}
)

func runMeta(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd.Context())

	projectRoot, err := findProjectRoot(cfg.TaskDir)
	if err != nil {
		return err
	}
	taskDir := filepath.Join(projectRoot, cfg.TaskDir)

	reg, err := registry.Scan(taskDir)
	if err != nil {
		return err
	}

	out, err := renderMeta(taskDir, reg)
	if err != nil {
		return err
	}

	cmd.Print(out)
	return nil
}

// renderMeta marshals the registry to TOML in discovery order.
func renderMeta(taskDir string, reg *registry.Registry) (string, error) {
	doc := metaDocument{TaskDir: taskDir}

	for _, meta := range reg.Tasks() {
		kind := "script"
		if meta.Dir {
			kind = "directory"
		}
		doc.Tasks = append(doc.Tasks, metaTask{
			Name:       meta.Name,
			Kind:       kind,
			Path:       meta.Path,
			Default:    meta.Default,
			Bootstrap:  meta.Bootstrap,
			TaskDeps:   meta.TaskDeps,
			ModDeps:    meta.ModDeps,
			MinVersion: meta.MinVersion,
		})
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render task metadata: %w", err)
	}
	return string(out), nil
}
