// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// This package defines an error type that carries the failed operation, the
// resource involved, and remediation suggestions, so CLI errors tell the user
// what to do next instead of only what went wrong.
package issue
