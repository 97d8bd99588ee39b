// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/binhash"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
)

func roundtripCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "roundtrip",
		Summary: "Check that a file re-encodes to identical bytes",
		Description: `Decode a file, encode the model again, and compare the two buffers.
Prints the BLAKE3 digest and size of each and exits with status 1 when
they differ.

Files below the configured maximum versions are re-encoded at the
maximum and are expected to differ.`,
		Subcommands: perKind(roundtripKindCommand(stdout)),
	}
}

func roundtripKindCommand(stdout io.Writer) func(kind) *cli.Command {
	return func(k kind) *cli.Command {
		var params decodeParams
		return &cli.Command{
			Summary: fmt.Sprintf("Decode and re-encode a .%s file", k),
			Args:    []string{"FILE"},
			Flags: func() *pflag.FlagSet {
				return cli.FlagsFromParams("roundtrip "+string(k), &params)
			},
			Run: func(args []string) error {
				cfg, err := params.Config()
				if err != nil {
					return err
				}
				logger := cli.NewCommandLogger(params.Verbose).With("command", "roundtrip "+string(k), "file", args[0])

				input, _, err := readInput(args[0])
				if err != nil {
					return err
				}
				var reencoded []byte
				switch k {
				case kindLayout:
					result, err := decodeLayout(input, cfg, logger)
					if err != nil {
						return err
					}
					reencoded, err = layout.Encode(result.Layout, cfg.LayoutCodec())
					if err != nil {
						return err
					}
				case kindSlot:
					document, err := decodeSlot(input, cfg, logger)
					if err != nil {
						return err
					}
					reencoded, err = slot.Encode(document.Slot, cfg.SlotCodec())
					if err != nil {
						return err
					}
				}

				comparison := compareBuffers(input, reencoded)
				comparison.write(stdout)
				if !comparison.match() {
					return &cli.ExitError{Code: 1}
				}
				return nil
			},
		}
	}
}

// comparison is the outcome of comparing an input buffer with its
// re-encoding.
type comparison struct {
	input, reencoded         binhash.Digest
	inputSize, reencodedSize int

	// firstDifference is the offset of the first differing byte, or -1.
	firstDifference int
}

func compareBuffers(input, reencoded []byte) comparison {
	result := comparison{
		input:           binhash.Sum(input),
		reencoded:       binhash.Sum(reencoded),
		inputSize:       len(input),
		reencodedSize:   len(reencoded),
		firstDifference: -1,
	}
	for i := range min(len(input), len(reencoded)) {
		if input[i] != reencoded[i] {
			result.firstDifference = i
			return result
		}
	}
	if len(input) != len(reencoded) {
		result.firstDifference = min(len(input), len(reencoded))
	}
	return result
}

func (c comparison) match() bool {
	return c.firstDifference < 0
}

func (c comparison) write(w io.Writer) {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "input\t%s\t%d bytes\n", c.input, c.inputSize)
	fmt.Fprintf(tw, "re-encoded\t%s\t%d bytes\n", c.reencoded, c.reencodedSize)
	tw.Flush()
	if c.match() {
		fmt.Fprintln(w, "identical")
	} else {
		fmt.Fprintf(w, "differ at offset %d\n", c.firstDifference)
	}
}
