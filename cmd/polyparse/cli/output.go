// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/polyparse/lib/codec"
	"github.com/bureau-foundation/polyparse/lib/config"
)

// Print writes v to w in the configured output format. JSON and YAML
// are syntax highlighted when color applies to w.
func Print(w io.Writer, cfg *config.Config, v any) error {
	format, err := codec.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	lexer := highlightLexer(format)
	if lexer == "" || !UseColor(cfg.Output.Color, w) {
		return codec.Render(w, format, v, cfg.Output.Indent)
	}

	var buffer bytes.Buffer
	if err := codec.Render(&buffer, format, v, cfg.Output.Indent); err != nil {
		return err
	}
	return quick.Highlight(w, buffer.String(), lexer, "terminal256", "monokai")
}

func highlightLexer(format codec.Format) string {
	switch format {
	case codec.FormatJSON:
		return "json"
	case codec.FormatYAML:
		return "yaml"
	default:
		return ""
	}
}

// UseColor resolves a color mode against the destination. In auto mode
// color is used only when w is a terminal and NO_COLOR is unset.
func UseColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(file.Fd()))
}

// ColorProfile returns the terminal color profile for styled text
// written to w under the given color mode.
func ColorProfile(mode string, w io.Writer) termenv.Profile {
	if !UseColor(mode, w) {
		return termenv.Ascii
	}
	return termenv.ANSI256
}
