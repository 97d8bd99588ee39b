// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/polyparse/lib/config"
	"github.com/bureau-foundation/polyparse/lib/testutil"
)

func parseOptions(t *testing.T, args ...string) *Options {
	t.Helper()
	var options Options
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	options.AddFlags(flagSet)
	if err := flagSet.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return &options
}

func TestOptionsDefaults(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	cfg, err := parseOptions(t).Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	defaults := config.Default()
	if cfg.Output != defaults.Output {
		t.Errorf("Output = %+v, want %+v", cfg.Output, defaults.Output)
	}
	if cfg.Layout.ByteOrder != "big" {
		t.Errorf("Layout.ByteOrder = %q, want big", cfg.Layout.ByteOrder)
	}
}

func TestOptionsOverrideConfigFile(t *testing.T) {
	path := testutil.WriteFile(t, "polyparse.yaml", []byte(`
layout:
  byte_order: little
output:
  format: yaml
  indent: 4
`))

	cfg, err := parseOptions(t, "--config", path, "--indent", "0", "--color", "never").Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Layout.ByteOrder != "little" {
		t.Errorf("Layout.ByteOrder = %q, want little from the file", cfg.Layout.ByteOrder)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Output.Format = %q, want yaml from the file", cfg.Output.Format)
	}
	if cfg.Output.Indent != 0 {
		t.Errorf("Output.Indent = %d, want 0 from the flag", cfg.Output.Indent)
	}
	if cfg.Output.Color != "never" {
		t.Errorf("Output.Color = %q, want never from the flag", cfg.Output.Color)
	}
}

func TestOptionsEnvironmentConfig(t *testing.T) {
	path := testutil.WriteFile(t, "polyparse.jsonc", []byte("{\n  // comments are allowed\n  \"output\": {\"format\": \"cbor-diag\",},\n}\n"))
	t.Setenv(config.EnvironmentVariable, path)

	cfg, err := parseOptions(t).Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.Output.Format != "cbor-diag" {
		t.Errorf("Output.Format = %q, want cbor-diag", cfg.Output.Format)
	}
}

func TestOptionsRejectInvalidFlags(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "xml"}, "output.format"},
		{"byte order", []string{"--byte-order", "middle"}, "layout.byte_order"},
		{"color", []string{"--color", "sometimes"}, "output.color"},
		{"indent", []string{"--indent", "12"}, "output.indent"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseOptions(t, test.args...).Config()
			if err == nil {
				t.Fatal("Config() = nil error, want validation failure")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want mention of %q", err.Error(), test.want)
			}
		})
	}
}

func TestOptionsMissingConfigFile(t *testing.T) {
	if _, err := parseOptions(t, "--config", "/nonexistent/polyparse.yaml").Config(); err == nil {
		t.Error("Config() = nil error for a missing file")
	}
}
