// SPDX-License-Identifier: MPL-2.0

// Package executor orchestrates one gotask invocation: version gating,
// bootstrap-phase execution, registry reload, and main-phase execution of
// the resolved task order.
//
// Tasks run strictly sequentially as child processes of the external build
// tool (the Go toolchain behind the BuildRunner interface). Between tasks
// the engine propagates the environment bridge: bridge state is merged into
// a task's environment before it starts and reloaded after it exits, so
// exports made by one task reach every later task of the same invocation.
//
// The first error aborts the whole invocation. There is no retry, no
// timeout, and no rollback of side effects from tasks that already
// completed.
package executor
