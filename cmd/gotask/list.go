// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gotask-cli/internal/registry"
)

// listCmd lists the tasks discovered in the project's task directory.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered tasks",
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd.Context())

	projectRoot, err := findProjectRoot(cfg.TaskDir)
	if err != nil {
		return err
	}

	reg, err := registry.Scan(filepath.Join(projectRoot, cfg.TaskDir))
	if err != nil {
		return err
	}

	cmd.Print(renderTaskList(reg))
	return nil
}

// renderTaskList formats the registry for terminal output, one task per line
// in discovery order with default/bootstrap markers and dependency lists.
func renderTaskList(reg *registry.Registry) string {
	if reg.Len() == 0 {
		return SubtitleStyle.Render("No tasks found. Run 'gotask init' to scaffold a task directory.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Tasks"))
	sb.WriteString("\n")

	for _, meta := range reg.Tasks() {
		sb.WriteString("  ")
		sb.WriteString(TaskStyle.Render(meta.Name))

		var markers []string
		if meta.Default {
			markers = append(markers, "default")
		}
		if meta.Bootstrap {
			markers = append(markers, "bootstrap")
		}
		if len(markers) > 0 {
			sb.WriteString(" ")
			sb.WriteString(WarningStyle.Render("[" + strings.Join(markers, ", ") + "]"))
		}

		if len(meta.TaskDeps) > 0 {
			sb.WriteString(SubtitleStyle.Render(fmt.Sprintf("  (deps: %s)", strings.Join(meta.TaskDeps, ", "))))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
