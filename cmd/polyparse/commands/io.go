// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/polyparse/lib/compress"
)

// stdinPath selects standard input or output in place of a file.
const stdinPath = "-"

// readInput reads a whole file, or stdin for "-", and decompresses it
// when it starts with a zstd or lz4 frame.
func readInput(path string) ([]byte, compress.Format, error) {
	var data []byte
	var err error
	if path == stdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, compress.None, fmt.Errorf("reading input: %w", err)
	}

	decoded, format, err := compress.Decompress(data)
	if err != nil {
		return nil, format, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return decoded, format, nil
}

// writeOutput compresses data and writes it to path, or to stdout when
// path is empty or "-".
func writeOutput(stdout io.Writer, path string, data []byte, format compress.Format) error {
	data, err := compress.Compress(data, format)
	if err != nil {
		return fmt.Errorf("compressing output: %w", err)
	}
	if path == "" || path == stdinPath {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
