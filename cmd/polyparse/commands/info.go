// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/binhash"
	"github.com/bureau-foundation/polyparse/lib/compress"
	"github.com/bureau-foundation/polyparse/lib/diagnostic"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
	"github.com/bureau-foundation/polyparse/lib/tui"
)

type infoParams struct {
	cli.Options
	CheckRefs bool `flag:"check-refs" desc:"report joints, phases and checkpoints that refer to missing identifiers"`
}

func infoCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a file",
		Description: `Print the format versions, section sizes, digest and diagnostics of
a file without dumping the whole model.`,
		Subcommands: perKind(infoKindCommand(stdout)),
	}
}

func infoKindCommand(stdout io.Writer) func(kind) *cli.Command {
	return func(k kind) *cli.Command {
		var params infoParams
		return &cli.Command{
			Summary: fmt.Sprintf("Summarize a .%s file", k),
			Args:    []string{"FILE"},
			Examples: []cli.Example{
				{
					Description: "Check a file for dangling references",
					Command:     fmt.Sprintf("polyparse info %s --check-refs FILE", k),
				},
			},
			Flags: func() *pflag.FlagSet {
				return cli.FlagsFromParams("info "+string(k), &params)
			},
			Run: func(args []string) error {
				cfg, err := params.Config()
				if err != nil {
					return err
				}
				logger := cli.NewCommandLogger(params.Verbose).With("command", "info "+string(k), "file", args[0])

				input, compression, err := readInput(args[0])
				if err != nil {
					return err
				}
				file := fileSection(input, compression)

				var summary tui.Summary
				switch k {
				case kindLayout:
					result, err := decodeLayout(input, cfg, logger)
					if err != nil {
						return err
					}
					diagnostics := result.Diagnostics
					if params.CheckRefs {
						diagnostics = append(diagnostics, layout.CheckReferences(result.Layout)...)
					}
					summary = layoutSummary(result.Layout, file, diagnostics)
				case kindSlot:
					document, err := decodeSlot(input, cfg, logger)
					if err != nil {
						return err
					}
					diagnostics := document.Diagnostics
					if params.CheckRefs {
						diagnostics = append(diagnostics, layout.CheckReferences(&layout.Layout{Bridge: document.Slot.Bridge})...)
					}
					summary = slotSummary(document.Slot, file, diagnostics)
				}
				summary.Title = filepath.Base(args[0])

				renderer := lipgloss.NewRenderer(stdout)
				renderer.SetColorProfile(cli.ColorProfile(cfg.Output.Color, stdout))
				_, err = io.WriteString(stdout, summary.Render(renderer, tui.DefaultTheme))
				return err
			},
		}
	}
}

func fileSection(input []byte, compression compress.Format) tui.Section {
	return tui.Section{Heading: "file", Rows: []tui.Row{
		{Label: "size", Value: fmt.Sprintf("%d bytes", len(input))},
		{Label: "compression", Value: compression.String()},
		{Label: "blake3", Value: binhash.Sum(input).Short()},
	}}
}

func layoutSummary(l *layout.Layout, file tui.Section, diagnostics diagnostic.List) tui.Summary {
	version := strconv.Itoa(int(l.Version))
	if l.IsModded {
		version += " (modded)"
	}
	level := tui.Section{Heading: "layout", Rows: []tui.Row{
		{Label: "version", Value: version},
		{Label: "theme", Value: l.ThemeStubKey},
	}}
	if l.Title != "" {
		level.Rows = append(level.Rows, tui.Row{Label: "title", Value: l.Title})
	}
	level.Rows = append(level.Rows,
		count("anchors", len(l.Anchors)),
		count("vehicles", len(l.Vehicles)+len(l.ZedAxisVehicles)),
		count("checkpoints", len(l.Checkpoints)),
		count("terrain stretches", len(l.TerrainStretches)),
		count("custom shapes", len(l.CustomShapes)),
		count("pillars", len(l.Pillars)+len(l.SupportPillars)),
		count("build zones", len(l.BuildZones)),
		count("decors", len(l.Decors)),
		count("mods", len(l.ModData.Mods)),
	)
	return tui.Summary{Sections: []tui.Section{file, level, bridgeSection(&l.Bridge), diagnosticSection(diagnostics)}}
}

func slotSummary(s *slot.Slot, file tui.Section, diagnostics diagnostic.List) tui.Summary {
	save := tui.Section{Heading: "slot", Rows: []tui.Row{
		{Label: "version", Value: fmt.Sprintf("%d (physics %d)", s.Version, s.PhysicsVersion)},
		{Label: "name", Value: s.DisplayName},
		{Label: "file", Value: s.SlotFilename},
		{Label: "id", Value: strconv.Itoa(int(s.SlotID))},
		{Label: "budget", Value: strconv.Itoa(int(s.Budget))},
		{Label: "last write", Value: s.LastWriteTime().Format(time.RFC3339)},
		{Label: "thumbnail", Value: fmt.Sprintf("%d bytes", len(s.Thumbnail))},
	}}
	return tui.Summary{Sections: []tui.Section{file, save, bridgeSection(&s.Bridge), diagnosticSection(diagnostics)}}
}

func bridgeSection(b *layout.Bridge) tui.Section {
	return tui.Section{Heading: "bridge", Rows: []tui.Row{
		{Label: "version", Value: strconv.Itoa(int(b.Version))},
		count("joints", len(b.Joints)),
		count("edges", len(b.Edges)),
		count("springs", len(b.Springs)),
		count("pistons", len(b.Pistons)),
		count("phases", len(b.Phases)),
		count("pillars", len(b.Pillars)),
	}}
}

func diagnosticSection(diagnostics diagnostic.List) tui.Section {
	section := tui.Section{Heading: "diagnostics"}
	for _, d := range diagnostics {
		label := string(d.Kind)
		if d.Offset != diagnostic.NoOffset {
			label = fmt.Sprintf("%s @%d", d.Kind, d.Offset)
		}
		section.Rows = append(section.Rows, tui.Row{Label: label, Value: d.Message, Warning: true})
	}
	return section
}

func count(label string, n int) tui.Row {
	return tui.Row{Label: label, Value: strconv.Itoa(n)}
}
