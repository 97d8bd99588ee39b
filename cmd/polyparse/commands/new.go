// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/layout"
)

type newParams struct {
	cli.Options
	Output   string `flag:"output,o" desc:"output file (default stdout)"`
	Compress string `flag:"compress" desc:"compress the output: none, zstd, lz4 (default from config)"`
}

func newCommand(stdout io.Writer) *cli.Command {
	var params newParams
	return &cli.Command{
		Name:    "new",
		Summary: "Write the starter layout of a new level",
		Args:    []string{},
		Examples: []cli.Example{
			{Description: "Start a level from scratch", Command: "polyparse new -o blank.layout"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("new", &params)
		},
		Run: func(args []string) error {
			cfg, err := params.Config()
			if err != nil {
				return err
			}
			compression, err := outputCompression(params.Compress, cfg)
			if err != nil {
				return err
			}
			data, err := layout.Encode(layout.NewDefault(), cfg.LayoutCodec())
			if err != nil {
				return err
			}
			return writeOutput(stdout, cfg.OutputPath(params.Output), data, compression)
		},
	}
}
