// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the polyparse CLI command tree.
package commands

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/version"
)

// Root builds and returns the complete CLI command tree. Models, digests
// and summaries are written to stdout.
func Root(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "polyparse",
		Description: `polyparse: Poly Bridge 2 layout and slot codec.

Decode .layout and .slot files into JSON, YAML or CBOR, encode edited
models back into game files, and verify that a file survives a decode
and re-encode unchanged. Inputs compressed with zstd or lz4 are
detected and decompressed automatically.`,
		Subcommands: []*cli.Command{
			layoutCommand(stdout),
			slotCommand(stdout),
			encodeCommand(stdout),
			roundtripCommand(stdout),
			infoCommand(stdout),
			newCommand(stdout),
			{
				Name:    "version",
				Summary: "Print version information",
				Args:    []string{},
				Run: func(args []string) error {
					fmt.Fprintf(stdout, "polyparse %s\n", version.Full())
					fmt.Fprintf(stdout, "formats: %s\n", version.Formats())
					return nil
				},
			},
		},
	}
}

// kind selects the layout or slot codec for commands that handle both.
type kind string

const (
	kindLayout kind = "layout"
	kindSlot   kind = "slot"
)

var kinds = []kind{kindLayout, kindSlot}

// perKind builds one subcommand per codec, so that "encode layout FILE"
// and "encode slot FILE" share flags and help text.
func perKind(build func(kind) *cli.Command) []*cli.Command {
	commands := make([]*cli.Command, len(kinds))
	for i, k := range kinds {
		command := build(k)
		command.Name = string(k)
		commands[i] = command
	}
	return commands
}
