// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the polyparse CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/polyparse/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Flags are declared as tagged struct fields and bound with
// [FlagsFromParams]. [Options] carries the flags every decoding and
// encoding command shares (--config, --format, --indent, --color,
// --byte-order, --verbose) and resolves them against the configuration
// file into a [config.Config]. [Print] writes a decoded model in the
// configured format, highlighted when the destination is a terminal.
package cli
