// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding for decoded models.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"

	// FormatCBORDiagnostic is CBOR rendered in RFC 8949 diagnostic
	// notation, for reading CBOR output on a terminal.
	FormatCBORDiagnostic Format = "cbor-diag"
)

// Formats lists every output format in the order shown in help text.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR, FormatCBORDiagnostic}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats {
		if string(format) == name {
			return format, nil
		}
	}
	names := make([]string, len(Formats))
	for i, format := range Formats {
		names[i] = string(format)
	}
	return "", fmt.Errorf("unknown output format %q (want %s)", name, strings.Join(names, ", "))
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool {
	return f == FormatCBOR
}

// Render writes v to w in the given format. Indent is the number of
// spaces per nesting level for JSON and YAML; zero produces compact
// JSON (YAML always uses at least two spaces). Text formats end with a
// newline.
//
// JSON and YAML both go through encoding/json, so json struct tags and
// MarshalJSON methods decide field names and order in both. YAML output
// keeps the object key order of the JSON rendering.
func Render(w io.Writer, format Format, v any, indent int) error {
	switch format {
	case FormatJSON:
		data, err := marshalJSON(v, indent)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	case FormatYAML:
		return renderYAML(w, v, indent)
	case FormatCBOR:
		return NewEncoder(w).Encode(v)
	case FormatCBORDiagnostic:
		data, err := Marshal(v)
		if err != nil {
			return err
		}
		notation, err := Diagnose(data)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, notation+"\n")
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func marshalJSON(v any, indent int) ([]byte, error) {
	if indent <= 0 {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
}

// renderYAML converts the JSON rendering of v into a YAML node tree.
// JSON is valid YAML flow syntax, so the parse keeps key order; the
// flow and quoting styles are then cleared so the encoder chooses
// block layout and quotes only where a scalar would be ambiguous.
func renderYAML(w io.Writer, v any, indent int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("converting JSON to YAML: %w", err)
	}
	clearStyle(&document)

	if indent < 2 {
		indent = 2
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(indent)
	if err := encoder.Encode(&document); err != nil {
		return err
	}
	return encoder.Close()
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}

// UnmarshalJSONC decodes JSON that may contain comments and trailing
// commas into v. Unknown fields are rejected so that a misspelled key
// in a hand-edited model is reported instead of silently dropped.
func UnmarshalJSONC(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected data after the top-level value")
	}
	return nil
}
