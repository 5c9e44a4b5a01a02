// SPDX-License-Identifier: MPL-2.0

// Package taskenv is the helper library for programs that run as gotask
// tasks.
//
// gotask hands every task a small, well-known environment: the project root,
// the task directory, the task's own name, and the path of the invocation's
// environment bridge file. This package wraps those variables and the bridge
// write primitive so a task can read its context and durably export
// variables to the tasks that run after it:
//
//	func main() {
//		logger := taskenv.Logger()
//		logger.Info("preparing toolchain", "root", taskenv.ProjectRoot())
//
//		if err := taskenv.Export("TOOLCHAIN_READY", "1"); err != nil {
//			logger.Fatal("export failed", "err", err)
//		}
//	}
//
// A plain os.Setenv only affects the task's own process; Export is the only
// way to make a variable visible to later tasks in the same invocation.
package taskenv
