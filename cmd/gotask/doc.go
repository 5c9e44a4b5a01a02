// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gotask.
//
// This package implements the Cobra command hierarchy for the gotask CLI,
// including the root command and subcommands for running, listing, and
// inspecting tasks.
package cmd
