// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [WriteFile] and [ReadFile] stage input files for command tests in a
// per-test temporary directory.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it when a test model needs GUIDs that must not
// collide.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
