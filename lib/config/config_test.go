// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Layout.MaxVersion != 80 || cfg.Layout.MaxBridgeVersion != 16 {
		t.Errorf("expected layout 80/16, got %d/%d", cfg.Layout.MaxVersion, cfg.Layout.MaxBridgeVersion)
	}
	if cfg.ByteOrder() != binary.BigEndian {
		t.Errorf("expected big-endian default, got %v", cfg.ByteOrder())
	}
	if cfg.Output.Format != "json" || cfg.Output.Indent != 2 {
		t.Errorf("expected json indented by 2, got %s/%d", cfg.Output.Format, cfg.Output.Indent)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresConfigVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when POLYPARSE_CONFIG not set, got nil")
	}

	expectedMsg := "POLYPARSE_CONFIG environment variable not set"
	if !strings.HasPrefix(err.Error(), expectedMsg) {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithConfigVariable(t *testing.T) {
	path := writeConfig(t, "polyparse.yaml", `
layout:
  byte_order: little
output:
  format: yaml
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ByteOrder() != binary.LittleEndian {
		t.Errorf("expected little-endian, got %v", cfg.ByteOrder())
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("expected format=yaml, got %s", cfg.Output.Format)
	}
	// Keys the file does not mention keep their defaults.
	if cfg.Layout.MaxVersion != 80 {
		t.Errorf("expected max_version=80, got %d", cfg.Layout.MaxVersion)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "polyparse.jsonc", `{
  // Target an older game build.
  "layout": {"max_version": 40, "max_bridge_version": 10, "fill_missing_edge_guids": true},
  "slot": {"max_version": 2,},
  "output": {"compress": "zstd", "indent": 4},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	layoutCodec := cfg.LayoutCodec()
	if layoutCodec.MaxLayoutVersion != 40 || layoutCodec.MaxBridgeVersion != 10 || !layoutCodec.FillMissingEdgeGUIDs {
		t.Errorf("layout codec = %+v", layoutCodec)
	}
	if layoutCodec.NewGUID == nil {
		t.Error("layout codec lost its GUID generator")
	}
	slotCodec := cfg.SlotCodec()
	if slotCodec.MaxSlotVersion != 2 || slotCodec.MaxPhysicsVersion != 1 {
		t.Errorf("slot codec = %+v", slotCodec)
	}
	if slotCodec.Layout.MaxLayoutVersion != 40 {
		t.Errorf("slot codec does not carry the layout settings")
	}
	if cfg.Output.Compress != "zstd" || cfg.Output.Indent != 4 {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeConfig(t, "polyparse.yaml", `
layout:
  max_version: 99
  byte_order: middle
output:
  format: xml
  color: sometimes
`)

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"layout.max_version", "layout.byte_order", "output.format", "output.color"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := writeConfig(t, "polyparse.yaml", "layout: [unterminated")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandVars(t *testing.T) {
	vars := map[string]string{"HOME": "/home/builder"}
	tests := []struct {
		in, want string
	}{
		{"${HOME}/bridges", "/home/builder/bridges"},
		{"${POLYPARSE_TEST_UNSET:-/tmp/out}", "/tmp/out"},
		{"plain/path", "plain/path"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.in, vars); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cfg := Default()
	if got := cfg.OutputPath("out.layout"); got != "out.layout" {
		t.Errorf("without a directory: %q", got)
	}
	cfg.Output.Directory = "/saves"
	tests := []struct {
		in, want string
	}{
		{"out.layout", "/saves/out.layout"},
		{"/abs/out.layout", "/abs/out.layout"},
		{"-", "-"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cfg.OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
