// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/lib/codec"
	"github.com/bureau-foundation/polyparse/lib/config"
)

// Options holds the flags shared by every command that reads or writes
// a model. Flags left unset keep the configuration file values.
type Options struct {
	ConfigPath string
	Format     string
	Indent     int
	Color      string
	ByteOrder  string
	Verbose    bool
}

// indentUnset marks --indent as not given.
const indentUnset = -1

// AddFlags implements [FlagBinder].
func (o *Options) AddFlags(flagSet *pflag.FlagSet) {
	formats := make([]string, len(codec.Formats))
	for i, format := range codec.Formats {
		formats[i] = string(format)
	}
	flagSet.StringVar(&o.ConfigPath, "config", "",
		"configuration file (default $"+config.EnvironmentVariable+")")
	flagSet.StringVarP(&o.Format, "format", "f", "",
		"output format: "+strings.Join(formats, ", "))
	flagSet.IntVar(&o.Indent, "indent", indentUnset, "spaces per nesting level (0 for compact JSON)")
	flagSet.StringVar(&o.Color, "color", "", "colorize output: auto, always, never")
	flagSet.StringVar(&o.ByteOrder, "byte-order", "", "layout byte order: big, little")
	flagSet.BoolVarP(&o.Verbose, "verbose", "v", false, "log per-section decode progress")
}

// Config loads the configuration file named by --config or
// $POLYPARSE_CONFIG, falling back to the defaults when neither is set,
// and applies the flag overrides on top.
func (o *Options) Config() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case o.ConfigPath != "":
		loaded, err := config.LoadFile(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case os.Getenv(config.EnvironmentVariable) != "":
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.Default()
	}

	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Indent != indentUnset {
		cfg.Output.Indent = o.Indent
	}
	if o.Color != "" {
		cfg.Output.Color = o.Color
	}
	if o.ByteOrder != "" {
		cfg.Layout.ByteOrder = o.ByteOrder
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
