// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. The Issue catalog holds Markdown guidance (rendered with glamour)
// for each failure class simpleaf reports: unresolved programs, unsupported
// versions, permit list problems, failed pipeline stages and invalid config.
package issue
