// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/config"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
)

type decodeParams struct {
	cli.Options
}

func layoutCommand(stdout io.Writer) *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "layout",
		Summary: "Decode a .layout file",
		Description: `Decode a .layout file and print the model.

Versions newer than the configured maximum and unknown records are
reported as warnings on stderr; decoding continues.`,
		Args: []string{"FILE"},
		Examples: []cli.Example{
			{Description: "Print a level as JSON", Command: "polyparse layout level.layout"},
			{Description: "Print a level as YAML", Command: "polyparse layout --format yaml level.layout"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("layout", &params)
		},
		Run: func(args []string) error {
			cfg, err := params.Config()
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger(params.Verbose).With("command", "layout", "file", args[0])

			data, _, err := readInput(args[0])
			if err != nil {
				return err
			}
			result, err := decodeLayout(data, cfg, logger)
			if err != nil {
				return err
			}
			return cli.Print(stdout, cfg, result.Layout)
		},
	}
}

func slotCommand(stdout io.Writer) *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "slot",
		Summary: "Decode a .slot save file",
		Description: `Decode a .slot save file and print its node tree, with the
embedded bridge decoded in place of the raw m_Bridge bytes.`,
		Args: []string{"FILE"},
		Examples: []cli.Example{
			{Description: "Print a save slot", Command: "polyparse slot 'Slot 1.slot'"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("slot", &params)
		},
		Run: func(args []string) error {
			cfg, err := params.Config()
			if err != nil {
				return err
			}
			logger := cli.NewCommandLogger(params.Verbose).With("command", "slot", "file", args[0])

			data, _, err := readInput(args[0])
			if err != nil {
				return err
			}
			document, err := decodeSlot(data, cfg, logger)
			if err != nil {
				return err
			}
			return cli.Print(stdout, cfg, document)
		},
	}
}

func decodeLayout(data []byte, cfg *config.Config, logger *slog.Logger) (*layout.Result, error) {
	codec := cfg.LayoutCodec()
	codec.Logger = logger
	return layout.Decode(data, codec)
}

// decodeSlot logs diagnostics once through the slot codec, leaving the
// embedded bridge codec without a logger.
func decodeSlot(data []byte, cfg *config.Config, logger *slog.Logger) (*slot.Document, error) {
	codec := cfg.SlotCodec()
	codec.Logger = logger
	return slot.Decode(data, codec)
}
