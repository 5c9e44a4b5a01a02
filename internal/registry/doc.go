// SPDX-License-Identifier: MPL-2.0

// Package registry scans a project's task directory for task units and
// exposes them as a name-keyed, discovery-ordered collection.
//
// Two unit shapes are recognized, both immediate children of the task
// directory:
//   - a single `<name>.task.go` script file, whose crate root is the file
//   - a `<name>/` subdirectory containing a go.mod manifest, whose crate
//     root is the directory and whose directives live in its main.go
//
// The scan never descends further than one level and a rescan fully replaces
// the previous registry. Directory read order is preserved because it is the
// tie-break order used by dependency resolution.
package registry
