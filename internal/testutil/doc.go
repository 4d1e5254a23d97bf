// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv,
// ClearToolEnv, SetConfigHome), filesystem operations (MustMkdirAll, MustWriteFile)
// and fake external programs (WriteFakeTool) that stand in for salmon, alevin-fry
// and pyroe.
package testutil
