// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gotask-cli/pkg/atat"
	"gotask-cli/pkg/taskfile"
)

const (
	// TaskDirName is the default name of the task directory at the project
	// root. The effective name comes from configuration (task_dir), which
	// defaults to this constant.
	TaskDirName = ".gotask"
	// ScriptSuffix distinguishes single-file task scripts inside the task
	// directory.
	ScriptSuffix = ".task.go"
	// ManifestName is the build manifest that marks a subdirectory as a
	// directory task unit.
	ManifestName = "go.mod"
	// dirSourceName is the crate-root source file of a directory task unit,
	// the file its directives are scanned from.
	dirSourceName = "main.go"
)

// DuplicateTaskNameError is returned when two discovered units resolve to the
// same task name.
type DuplicateTaskNameError struct {
	Name   string
	First  string
	Second string
}

// Error implements the error interface.
func (e *DuplicateTaskNameError) Error() string {
	return fmt.Sprintf("duplicate task name %q: defined by both %s and %s", e.Name, e.First, e.Second)
}

// InvalidTaskUnitError is returned when a unit's crate-root source cannot be
// located or read.
type InvalidTaskUnitError struct {
	Name string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InvalidTaskUnitError) Error() string {
	return fmt.Sprintf("invalid task unit %q at %s: %v", e.Name, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *InvalidTaskUnitError) Unwrap() error {
	return e.Err
}

// Registry maps task names to their metadata while preserving the order in
// which the units were discovered.
type Registry struct {
	tasks map[string]*taskfile.Metadata
	order []string
}

// Scan reads the task directory at root and builds a fresh registry. A
// missing task directory yields an empty registry rather than an error, so
// projects without tasks behave like projects with zero tasks.
func Scan(root string) (*Registry, error) {
	reg := &Registry{tasks: make(map[string]*taskfile.Metadata)}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, fmt.Errorf("failed to read task directory %s: %w", root, err)
	}

	for _, entry := range entries {
		// Dotfiles (.gitignore, build output) are not task units.
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		var meta *taskfile.Metadata
		switch {
		case entry.IsDir():
			meta, err = scanDirUnit(root, entry.Name())
		case strings.HasSuffix(entry.Name(), ScriptSuffix):
			meta, err = scanScriptUnit(root, entry.Name())
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if meta == nil {
			continue
		}

		if prior, exists := reg.tasks[meta.Name]; exists {
			return nil, &DuplicateTaskNameError{
				Name:   meta.Name,
				First:  prior.Path,
				Second: meta.Path,
			}
		}
		reg.tasks[meta.Name] = meta
		reg.order = append(reg.order, meta.Name)
	}

	return reg, nil
}

// scanScriptUnit loads a single-file task whose crate root is the script
// itself.
func scanScriptUnit(root, fileName string) (*taskfile.Metadata, error) {
	name := strings.TrimSuffix(fileName, ScriptSuffix)
	path := filepath.Join(root, fileName)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &InvalidTaskUnitError{Name: name, Path: path, Err: err}
	}

	return parseUnit(name, path, false, src)
}

// scanDirUnit loads a directory task. Subdirectories without a build manifest
// are not task units and are skipped; a manifest-bearing directory without a
// readable crate-root source is a hard error.
func scanDirUnit(root, dirName string) (*taskfile.Metadata, error) {
	path := filepath.Join(root, dirName)

	if _, err := os.Stat(filepath.Join(path, ManifestName)); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &InvalidTaskUnitError{Name: dirName, Path: path, Err: err}
	}

	srcPath := filepath.Join(path, dirSourceName)
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, &InvalidTaskUnitError{Name: dirName, Path: path, Err: err}
	}

	return parseUnit(dirName, path, true, src)
}

func parseUnit(name, path string, dir bool, src []byte) (*taskfile.Metadata, error) {
	directives, err := atat.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("task %q: %w", name, err)
	}
	return taskfile.FromDirectives(name, path, dir, directives)
}

// Get returns the metadata for name, or nil when absent.
func (r *Registry) Get(name string) *taskfile.Metadata {
	return r.tasks[name]
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns all task names in discovery order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Tasks returns all task metadata in discovery order.
func (r *Registry) Tasks() []*taskfile.Metadata {
	tasks := make([]*taskfile.Metadata, 0, len(r.order))
	for _, name := range r.order {
		tasks = append(tasks, r.tasks[name])
	}
	return tasks
}

// Defaults returns the tasks marked gt-default, in discovery order.
func (r *Registry) Defaults() []*taskfile.Metadata {
	var defaults []*taskfile.Metadata
	for _, meta := range r.Tasks() {
		if meta.Default {
			defaults = append(defaults, meta)
		}
	}
	return defaults
}

// Bootstraps returns the tasks marked gt-bootstrap, in discovery order.
func (r *Registry) Bootstraps() []*taskfile.Metadata {
	var bootstraps []*taskfile.Metadata
	for _, meta := range r.Tasks() {
		if meta.Bootstrap {
			bootstraps = append(bootstraps, meta)
		}
	}
	return bootstraps
}

// Index returns the discovery position of name, or -1 when absent. It is the
// deterministic tie-break key used by the dependency resolver.
func (r *Registry) Index(name string) int {
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}
