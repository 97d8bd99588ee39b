// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui renders styled terminal text for polyparse: the color
// theme and the sectioned key/value [Summary] printed by the info
// command.
//
// Rendering goes through a caller-supplied [lipgloss.Renderer], so the
// color profile follows the destination writer and the --color flag
// rather than the process's stdout.
package tui
