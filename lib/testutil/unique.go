// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use this instead of time.Now() when
// tests need unique identifiers for GUIDs or other
// entity identifiers that must not collide within one model.
//
//	guid := testutil.UniqueID("edge")     // "edge-1", "edge-2", ...
//	anchor := testutil.UniqueID("anchor") // "anchor-3", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
