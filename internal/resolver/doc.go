// SPDX-License-Identifier: MPL-2.0

// Package resolver computes a valid linear execution order for a requested
// set of tasks, honoring declared task-to-task dependencies.
//
// Resolution works in two passes over the registry: a depth-first traversal
// that computes the transitive dependency closure and detects cycles (a node
// reached while still on the visiting stack is a cycle witness), then a
// Kahn-style topological emit whose ready-set ties are broken by registry
// discovery order so the result is stable across runs.
//
// Bootstrap tasks are never part of the computed order. They are scheduled by
// the execution engine ahead of the main phase, and a dependency edge that
// points at a bootstrap task is treated as already satisfied.
package resolver
