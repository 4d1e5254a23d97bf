// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for simpleaf.
//
// The App type is the composition root: it loads configuration, builds the
// logger, process runner, program resolver and pipeline orchestrator, and hands
// them to the index, quant, programs and config command handlers.
package cmd
