// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func plainRenderer() *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(&bytes.Buffer{})
	renderer.SetColorProfile(termenv.Ascii)
	return renderer
}

func TestSummaryRenderAlignsLabels(t *testing.T) {
	summary := Summary{
		Title: "level.layout",
		Sections: []Section{
			{Heading: "bridge", Rows: []Row{
				{Label: "a", Value: "1"},
				{Label: "bbb", Value: "2"},
			}},
			{Heading: "empty"},
			{Heading: "diagnostics", Rows: []Row{
				{Label: "warning", Value: "newer version", Warning: true},
			}},
		},
	}

	got := summary.Render(plainRenderer(), DefaultTheme)
	want := strings.Join([]string{
		"level.layout",
		"",
		"bridge",
		"  a    1",
		"  bbb  2",
		"",
		"diagnostics",
		"  warning  newer version",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryRenderTitleOnly(t *testing.T) {
	got := Summary{Title: "empty"}.Render(plainRenderer(), DefaultTheme)
	if got != "empty\n" {
		t.Errorf("Render() = %q, want %q", got, "empty\n")
	}
}

func TestSummaryRenderColorProfile(t *testing.T) {
	renderer := lipgloss.NewRenderer(&bytes.Buffer{})
	renderer.SetColorProfile(termenv.ANSI256)
	got := Summary{Title: "styled"}.Render(renderer, DefaultTheme)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Render() with ANSI256 profile = %q, want escape sequences", got)
	}
}
