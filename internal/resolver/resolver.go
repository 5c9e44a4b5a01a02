// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"strings"

	"gotask-cli/internal/registry"
	"gotask-cli/pkg/taskfile"
)

// UnknownTaskError is returned when a task name, requested explicitly or
// reached through gt-task-deps, is absent from the registry.
type UnknownTaskError struct {
	// Name is the missing task.
	Name string
	// RequiredBy is the task whose gt-task-deps named it, or empty when the
	// name came from the request itself.
	RequiredBy string
}

// Error implements the error interface.
func (e *UnknownTaskError) Error() string {
	if e.RequiredBy != "" {
		return fmt.Sprintf("unknown task %q (required by %q)", e.Name, e.RequiredBy)
	}
	return fmt.Sprintf("unknown task %q", e.Name)
}

// CyclicDependencyError is returned when the transitive closure of
// gt-task-deps contains a cycle. Tasks lists the members of one witness
// cycle in dependency order.
type CyclicDependencyError struct {
	Tasks []string
}

// Error implements the error interface.
func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic task dependency: %s", strings.Join(e.Tasks, " -> "))
}

// DFS colors for cycle detection.
const (
	white = iota // unvisited
	gray         // on the visiting stack
	black        // fully visited
)

// Resolve computes the main-phase execution order for the requested task
// names against reg. An empty request substitutes the set of all tasks
// marked gt-default. The returned order contains each task exactly once,
// every task after all of its dependencies, with ties broken by registry
// discovery order. Bootstrap tasks are excluded from the order entirely.
func Resolve(reg *registry.Registry, requested []string) ([]*taskfile.Metadata, error) {
	roots, err := rootSet(reg, requested)
	if err != nil {
		return nil, err
	}

	closure, err := dependencyClosure(reg, roots)
	if err != nil {
		return nil, err
	}

	return topologicalOrder(reg, closure), nil
}

// rootSet validates the requested names and returns the traversal roots.
// Bootstrap tasks named in the request are legal but dropped here: they run
// in the bootstrap phase and must not be duplicated in the main order.
func rootSet(reg *registry.Registry, requested []string) ([]*taskfile.Metadata, error) {
	if len(requested) == 0 {
		return reg.Defaults(), nil
	}

	var roots []*taskfile.Metadata
	for _, name := range requested {
		meta := reg.Get(name)
		if meta == nil {
			return nil, &UnknownTaskError{Name: name}
		}
		if meta.Bootstrap {
			continue
		}
		roots = append(roots, meta)
	}
	return roots, nil
}

// dependencyClosure walks gt-task-deps depth-first from the roots, returning
// the set of reachable non-bootstrap tasks. A gray node reached again while
// still on the stack signals a cycle, which is reported whole rather than
// yielding a partial order.
func dependencyClosure(reg *registry.Registry, roots []*taskfile.Metadata) (map[string]*taskfile.Metadata, error) {
	closure := make(map[string]*taskfile.Metadata)
	colors := make(map[string]int)
	var stack []string

	var visit func(meta *taskfile.Metadata) error
	visit = func(meta *taskfile.Metadata) error {
		colors[meta.Name] = gray
		stack = append(stack, meta.Name)

		for _, dep := range meta.TaskDeps {
			depMeta := reg.Get(dep)
			if depMeta == nil {
				return &UnknownTaskError{Name: dep, RequiredBy: meta.Name}
			}
			// Bootstrap dependencies are satisfied by construction: every
			// bootstrap task completes before the main phase starts.
			if depMeta.Bootstrap {
				continue
			}

			switch colors[dep] {
			case white:
				if err := visit(depMeta); err != nil {
					return err
				}
			case gray:
				return &CyclicDependencyError{Tasks: cycleWitness(stack, dep)}
			}
		}

		stack = stack[:len(stack)-1]
		colors[meta.Name] = black
		closure[meta.Name] = meta
		return nil
	}

	for _, root := range roots {
		if colors[root.Name] == white {
			if err := visit(root); err != nil {
				return nil, err
			}
		}
	}

	return closure, nil
}

// cycleWitness extracts the cycle members from the visiting stack, starting
// at the back-edge target and closing the loop.
func cycleWitness(stack []string, target string) []string {
	start := 0
	for i, name := range stack {
		if name == target {
			start = i
			break
		}
	}
	witness := make([]string, 0, len(stack)-start+1)
	witness = append(witness, stack[start:]...)
	witness = append(witness, target)
	return witness
}

// topologicalOrder emits the closure in dependency order. Among tasks whose
// dependencies are all emitted, the one discovered earliest in the registry
// scan goes first; name order is never used.
func topologicalOrder(reg *registry.Registry, closure map[string]*taskfile.Metadata) []*taskfile.Metadata {
	// gt-task-deps is a membership set; duplicate entries must not be
	// double-counted.
	deps := make(map[string]map[string]bool, len(closure))
	indegree := make(map[string]int, len(closure))
	for name, meta := range closure {
		deps[name] = make(map[string]bool)
		for _, dep := range meta.TaskDeps {
			if _, inClosure := closure[dep]; inClosure {
				deps[name][dep] = true
			}
		}
		indegree[name] = len(deps[name])
	}

	order := make([]*taskfile.Metadata, 0, len(closure))
	emitted := make(map[string]bool, len(closure))

	for len(order) < len(closure) {
		next := ""
		nextIdx := -1
		for name, deg := range indegree {
			if deg != 0 || emitted[name] {
				continue
			}
			if idx := reg.Index(name); nextIdx == -1 || idx < nextIdx {
				next = name
				nextIdx = idx
			}
		}

		emitted[next] = true
		order = append(order, closure[next])
		for name := range closure {
			if !emitted[name] && deps[name][next] {
				indegree[name]--
			}
		}
	}

	return order
}
