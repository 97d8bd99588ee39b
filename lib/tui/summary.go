// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Summary is a titled list of key/value sections.
type Summary struct {
	Title    string
	Sections []Section
}

// Section is a headed group of rows. Labels within a section are
// aligned to the longest one.
type Section struct {
	Heading string
	Rows    []Row
}

// Row is one labelled value. Warning rows use the theme's warning
// color.
type Row struct {
	Label   string
	Value   string
	Warning bool
}

// Render lays the summary out as lines of text ending in a newline.
// Sections without rows are left out.
func (s Summary) Render(renderer *lipgloss.Renderer, theme Theme) string {
	titleStyle := renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	headingStyle := renderer.NewStyle().Foreground(theme.BorderColor)
	valueStyle := renderer.NewStyle().Foreground(theme.NormalText)
	warningStyle := renderer.NewStyle().Foreground(theme.WarningText)

	lines := []string{titleStyle.Render(s.Title)}
	for _, section := range s.Sections {
		if len(section.Rows) == 0 {
			continue
		}
		width := 0
		for _, row := range section.Rows {
			width = max(width, lipgloss.Width(row.Label))
		}
		labelStyle := renderer.NewStyle().Foreground(theme.FaintText).Width(width + 2)

		lines = append(lines, "", headingStyle.Render(section.Heading))
		for _, row := range section.Rows {
			style := valueStyle
			if row.Warning {
				style = warningStyle
			}
			lines = append(lines, "  "+labelStyle.Render(row.Label)+style.Render(row.Value))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
