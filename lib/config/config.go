// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for polyparse.
//
// Configuration is loaded from a single file specified by:
//   - POLYPARSE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures deterministic,
// auditable configuration with no hidden overrides.
package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/polyparse/lib/codec"
	"github.com/bureau-foundation/polyparse/lib/compress"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "POLYPARSE_CONFIG"

// Config is the master configuration.
type Config struct {
	// Layout configures the layout and bridge codec.
	Layout LayoutConfig `yaml:"layout"`

	// Slot configures the slot codec.
	Slot SlotConfig `yaml:"slot"`

	// Output configures how decoded models and encoded files are
	// written.
	Output OutputConfig `yaml:"output"`
}

// LayoutConfig configures the layout and bridge codec.
type LayoutConfig struct {
	// MaxVersion is the layout version written by encode and the
	// newest version decode accepts without a diagnostic.
	// Default: 80
	MaxVersion int `yaml:"max_version"`

	// MaxBridgeVersion is the bridge section version written by
	// encode. Default: 16
	MaxBridgeVersion int `yaml:"max_bridge_version"`

	// ByteOrder is "big" or "little". Default: big
	ByteOrder string `yaml:"byte_order"`

	// FillMissingEdgeGUIDs assigns fresh identifiers to edges without
	// one when encoding. Default: false
	FillMissingEdgeGUIDs bool `yaml:"fill_missing_edge_guids"`
}

// SlotConfig configures the slot codec.
type SlotConfig struct {
	// MaxVersion is the slot version written by encode. Default: 3
	MaxVersion int `yaml:"max_version"`

	// MaxPhysicsVersion is the physics version written by encode.
	// Default: 1
	MaxPhysicsVersion int `yaml:"max_physics_version"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	// Format is json, yaml, cbor or cbor-diag. Default: json
	Format string `yaml:"format"`

	// Indent is the number of spaces per nesting level. Default: 2
	Indent int `yaml:"indent"`

	// Color is auto, always or never. Default: auto
	Color string `yaml:"color"`

	// Compress is none, zstd or lz4 for encoded files. Default: none
	Compress string `yaml:"compress"`

	// Directory, when set, is where relative output paths are
	// resolved. ${HOME} and ${VAR:-default} are expanded.
	Directory string `yaml:"directory"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			MaxVersion:       layout.MaxLayoutVersion,
			MaxBridgeVersion: layout.MaxBridgeVersion,
			ByteOrder:        "big",
		},
		Slot: SlotConfig{
			MaxVersion:        slot.MaxSlotVersion,
			MaxPhysicsVersion: slot.MaxPhysicsVersion,
		},
		Output: OutputConfig{
			Format:   string(codec.FormatJSON),
			Indent:   2,
			Color:    "auto",
			Compress: compress.None.String(),
		},
	}
}

// Load loads configuration from the POLYPARSE_CONFIG environment
// variable. There are no fallbacks: if the variable is not set, this
// fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your polyparse.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Files ending
// in .json or .jsonc may contain comments and trailing commas; every
// other file is parsed as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	// JSON is a subset of YAML, so one decoder serves both.
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Output.Directory = expandVars(c.Output.Directory, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Layout.MaxVersion < 1 || c.Layout.MaxVersion > layout.MaxLayoutVersion {
		errs = append(errs, fmt.Errorf("layout.max_version must be between 1 and %d", layout.MaxLayoutVersion))
	}
	if c.Layout.MaxBridgeVersion < 1 || c.Layout.MaxBridgeVersion > layout.MaxBridgeVersion {
		errs = append(errs, fmt.Errorf("layout.max_bridge_version must be between 1 and %d", layout.MaxBridgeVersion))
	}
	byteOrders := []string{"big", "little"}
	if !contains(byteOrders, c.Layout.ByteOrder) {
		errs = append(errs, fmt.Errorf("layout.byte_order must be one of: %v", byteOrders))
	}

	if c.Slot.MaxVersion < 1 {
		errs = append(errs, fmt.Errorf("slot.max_version must be positive"))
	}
	if c.Slot.MaxPhysicsVersion < 1 {
		errs = append(errs, fmt.Errorf("slot.max_physics_version must be positive"))
	}

	if _, err := codec.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		errs = append(errs, fmt.Errorf("output.indent must be between 0 and 8"))
	}
	colorModes := []string{"auto", "always", "never"}
	if !contains(colorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", colorModes))
	}
	if _, err := compress.ParseFormat(c.Output.Compress); err != nil {
		errs = append(errs, fmt.Errorf("output.compress: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// LayoutCodec returns the layout codec configuration.
func (c *Config) LayoutCodec() layout.Config {
	cfg := layout.DefaultConfig()
	cfg.MaxLayoutVersion = c.Layout.MaxVersion
	cfg.MaxBridgeVersion = c.Layout.MaxBridgeVersion
	cfg.ByteOrder = c.ByteOrder()
	cfg.FillMissingEdgeGUIDs = c.Layout.FillMissingEdgeGUIDs
	return cfg
}

// SlotCodec returns the slot codec configuration. The embedded bridge
// uses [Config.LayoutCodec].
func (c *Config) SlotCodec() slot.Config {
	return slot.Config{
		MaxSlotVersion:    c.Slot.MaxVersion,
		MaxPhysicsVersion: c.Slot.MaxPhysicsVersion,
		Layout:            c.LayoutCodec(),
	}
}

// ByteOrder returns the configured layout byte order.
func (c *Config) ByteOrder() binary.ByteOrder {
	if c.Layout.ByteOrder == "little" {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// OutputPath resolves path against Output.Directory when path is
// relative and a directory is configured.
func (c *Config) OutputPath(path string) string {
	if c.Output.Directory == "" || path == "" || path == "-" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Output.Directory, path)
}
