// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/codec"
	"github.com/bureau-foundation/polyparse/lib/compress"
	"github.com/bureau-foundation/polyparse/lib/config"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
)

type encodeParams struct {
	cli.Options
	Output    string `flag:"output,o" desc:"output file (default stdout)"`
	Compress  string `flag:"compress" desc:"compress the output: none, zstd, lz4 (default from config)"`
	FillGUIDs bool   `flag:"fill-guids" desc:"assign identifiers to edges that have none"`
}

// outputCompression resolves a --compress value against the
// configuration.
func outputCompression(flag string, cfg *config.Config) (compress.Format, error) {
	if flag == "" {
		flag = cfg.Output.Compress
	}
	return compress.ParseFormat(flag)
}

func encodeCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a JSON model into a game file",
		Description: `Encode a JSON model, as printed by the layout and slot commands,
into a binary game file. Comments and trailing commas are allowed in the
input; unknown keys are rejected. Files are written at the newest
configured format versions.`,
		Subcommands: perKind(encodeKindCommand(stdout)),
	}
}

func encodeKindCommand(stdout io.Writer) func(kind) *cli.Command {
	return func(k kind) *cli.Command {
		var params encodeParams
		return &cli.Command{
			Summary: fmt.Sprintf("Encode a JSON model into a .%s file", k),
			Args:    []string{"FILE"},
			Examples: []cli.Example{
				{
					Description: fmt.Sprintf("Encode an edited model to a new .%s file", k),
					Command:     fmt.Sprintf("polyparse encode %s -o edited.%s model.json", k, k),
				},
			},
			Flags: func() *pflag.FlagSet {
				return cli.FlagsFromParams("encode "+string(k), &params)
			},
			Run: func(args []string) error {
				cfg, err := params.Config()
				if err != nil {
					return err
				}
				if params.FillGUIDs {
					cfg.Layout.FillMissingEdgeGUIDs = true
				}
				compression, err := outputCompression(params.Compress, cfg)
				if err != nil {
					return err
				}
				logger := cli.NewCommandLogger(params.Verbose).With("command", "encode "+string(k), "file", args[0])

				input, _, err := readInput(args[0])
				if err != nil {
					return err
				}
				data, err := encodeModel(k, input, cfg)
				if err != nil {
					return fmt.Errorf("encoding %s: %w", args[0], err)
				}

				output := cfg.OutputPath(params.Output)
				if err := writeOutput(stdout, output, data, compression); err != nil {
					return err
				}
				logger.Debug("encoded", "bytes", len(data), "compression", compression.String(), "output", output)
				return nil
			},
		}
	}
}

// encodeModel parses a JSONC model of the given kind and encodes it.
func encodeModel(k kind, input []byte, cfg *config.Config) ([]byte, error) {
	switch k {
	case kindLayout:
		var l layout.Layout
		if err := codec.UnmarshalJSONC(input, &l); err != nil {
			return nil, fmt.Errorf("parsing layout model: %w", err)
		}
		return layout.Encode(&l, cfg.LayoutCodec())
	case kindSlot:
		var s slot.Slot
		if err := codec.UnmarshalJSONC(input, &s); err != nil {
			return nil, fmt.Errorf("parsing slot model: %w", err)
		}
		return slot.Encode(&s, cfg.SlotCodec())
	default:
		return nil, fmt.Errorf("unknown model kind %q", k)
	}
}
