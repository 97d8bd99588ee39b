// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML and JSONC configuration loading for
// polyparse.
//
// Configuration is loaded from a single file specified by either the
// POLYPARSE_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without a file, commands use
// [Default]; command-line flags override either.
//
// Variable expansion is performed on output.directory after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Layout, Slot and Output sections
//   - [Default] -- returns a Config with the codec's newest versions
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.LayoutCodec] and [Config.SlotCodec] -- codec settings
package config
