// SPDX-License-Identifier: MPL-2.0

// Package taskfile defines the typed metadata of a single gotask task unit
// and its construction from AtAt directives.
//
// Recognized directive keys:
//   - gt-default: run the task when no explicit task names are requested
//   - gt-bootstrap: always run the task before the main phase
//   - gt-mod-deps: module requirements for the generated build manifest
//   - gt-task-deps: names of tasks that must complete first
//   - gt-min-version: minimum gotask version required to run the task
//
// Unrecognized keys are ignored so that newer directives do not break older
// gotask versions.
package taskfile
