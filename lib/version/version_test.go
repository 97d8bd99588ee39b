// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime
	})

	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-10-14T00:00:00Z"
	want := Version + " (abc1234-dirty, 2026-10-14T00:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "false"
	if strings.Contains(Info(), "-dirty") {
		t.Errorf("Info() = %q, want no dirty marker", Info())
	}
	if !strings.HasPrefix(Full(), Info()+"\n  Go: ") {
		t.Errorf("Full() = %q", Full())
	}
}

func TestFormats(t *testing.T) {
	if got := Formats(); got != "layout 80, bridge 16, slot 3 (physics 1)" {
		t.Errorf("Formats() = %q", got)
	}
}
