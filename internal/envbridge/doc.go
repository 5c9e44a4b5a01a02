// SPDX-License-Identifier: MPL-2.0

// Package envbridge implements the invocation-scoped key/value store through
// which one task's exported environment variables become visible to later
// tasks in the same run.
//
// Tasks execute as separate processes, so mutating the process environment
// does not propagate. The bridge is an explicit channel instead: a dotenv
// file created per invocation whose path every task receives via
// GOTASK_ENV_BRIDGE. A task exports a variable by appending a KEY=VALUE line
// to that file; the runner reads the file back after each task completes and
// merges the pairs into the environment of every subsequent task.
//
// The file is read fully before a task starts and rewritten fully after it
// ends; under gotask's strictly sequential execution model no further locking
// is needed. Separate invocations use separate files, so exports never leak
// between unrelated runs.
package envbridge
