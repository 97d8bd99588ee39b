// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/polyparse/cmd/polyparse/cli"
	"github.com/bureau-foundation/polyparse/lib/compress"
	"github.com/bureau-foundation/polyparse/lib/config"
	"github.com/bureau-foundation/polyparse/lib/layout"
	"github.com/bureau-foundation/polyparse/lib/slot"
	"github.com/bureau-foundation/polyparse/lib/testutil"
)

// execute runs the command tree with args and returns what it wrote to
// stdout.
func execute(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")
	var stdout bytes.Buffer
	root := Root(&stdout)
	root.HelpOutput = &bytes.Buffer{}
	err := root.Execute(args)
	return stdout.Bytes(), err
}

func mustExecute(t *testing.T, args ...string) []byte {
	t.Helper()
	output, err := execute(t, args...)
	if err != nil {
		t.Fatalf("polyparse %s: %v", strings.Join(args, " "), err)
	}
	return output
}

func sampleBridge() layout.Bridge {
	a, b := testutil.UniqueID("joint"), testutil.UniqueID("joint")
	return layout.Bridge{
		Version: layout.MaxBridgeVersion,
		Joints: []layout.Joint{
			{Pos: layout.Vec3{X: -1.5, Y: 2}, Guid: a},
			{Pos: layout.Vec3{X: 1.5, Y: 2}, Guid: b},
		},
		Edges: []layout.Edge{
			{MaterialType: 2, NodeAGuid: a, NodeBGuid: b, Guid: testutil.UniqueID("edge")},
		},
	}
}

func layoutFile(t *testing.T, l *layout.Layout, codec layout.Config) (string, []byte) {
	t.Helper()
	data, err := layout.Encode(l, codec)
	if err != nil {
		t.Fatalf("layout.Encode: %v", err)
	}
	return testutil.WriteFile(t, "level.layout", data), data
}

func slotFile(t *testing.T) (string, []byte) {
	t.Helper()
	s := &slot.Slot{
		SlotID:       2,
		DisplayName:  "Suspension test",
		SlotFilename: "Slot 2",
		Budget:       25_000,
		Bridge:       sampleBridge(),
		Thumbnail:    []byte{0x89, 'P', 'N', 'G'},
	}
	data, err := slot.Encode(s, slot.DefaultConfig())
	if err != nil {
		t.Fatalf("slot.Encode: %v", err)
	}
	return testutil.WriteFile(t, "bridge.slot", data), data
}

func TestLayoutCommandPrintsModel(t *testing.T) {
	path, _ := layoutFile(t, layout.NewDefault(), layout.DefaultConfig())

	var model map[string]any
	if err := json.Unmarshal(mustExecute(t, "layout", path), &model); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if model["m_Version"] != float64(layout.MaxLayoutVersion) {
		t.Errorf("m_Version = %v, want %d", model["m_Version"], layout.MaxLayoutVersion)
	}
	if model["m_ThemeStubKey"] != "Steampunk" {
		t.Errorf("m_ThemeStubKey = %v, want Steampunk", model["m_ThemeStubKey"])
	}
}

func TestLayoutCommandReadsCompressedInput(t *testing.T) {
	path, data := layoutFile(t, layout.NewDefault(), layout.DefaultConfig())
	plain := mustExecute(t, "layout", path)

	for _, format := range []compress.Format{compress.Zstd, compress.LZ4} {
		t.Run(format.String(), func(t *testing.T) {
			compressed, err := compress.Compress(data, format)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			compressedPath := testutil.WriteFile(t, "level.layout."+format.String(), compressed)
			if got := mustExecute(t, "layout", compressedPath); !bytes.Equal(got, plain) {
				t.Errorf("compressed input decoded differently:\n%s\nwant:\n%s", got, plain)
			}
		})
	}
}

func TestLayoutCommandLittleEndian(t *testing.T) {
	little := config.Default()
	little.Layout.ByteOrder = "little"
	path, _ := layoutFile(t, layout.NewDefault(), little.LayoutCodec())

	output := mustExecute(t, "layout", "--byte-order", "little", "--format", "yaml", path)
	if !strings.Contains(string(output), "m_ThemeStubKey: Steampunk") {
		t.Errorf("YAML output missing theme:\n%s", output)
	}
}

func TestEncodeLayoutReproducesFile(t *testing.T) {
	path, original := layoutFile(t, layout.NewDefault(), layout.DefaultConfig())
	model := testutil.WriteFile(t, "level.json", mustExecute(t, "layout", path))
	output := filepath.Join(t.TempDir(), "encoded.layout")

	mustExecute(t, "encode", "layout", "-o", output, model)
	if encoded := testutil.ReadFile(t, output); !bytes.Equal(encoded, original) {
		t.Errorf("encoded layout differs from the original (%d vs %d bytes)", len(encoded), len(original))
	}
}

func TestEncodeLayoutToStdoutCompressed(t *testing.T) {
	path, original := layoutFile(t, layout.NewDefault(), layout.DefaultConfig())
	model := testutil.WriteFile(t, "level.json", mustExecute(t, "layout", path))

	output := mustExecute(t, "encode", "layout", "--compress", "zstd", model)
	if format := compress.Detect(output); format != compress.Zstd {
		t.Fatalf("output format = %s, want zstd", format)
	}
	decoded, _, err := compress.Decompress(output)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Error("decompressed output differs from the original layout")
	}
}

func TestEncodeRejectsUnknownFields(t *testing.T) {
	model := testutil.WriteFile(t, "level.json", []byte(`{"m_Version": 80, "m_Bogus": 1}`))
	_, err := execute(t, "encode", "layout", model)
	if err == nil || !strings.Contains(err.Error(), "m_Bogus") {
		t.Errorf("error = %v, want unknown field m_Bogus", err)
	}
}

func TestEncodeAcceptsJSONC(t *testing.T) {
	model := testutil.WriteFile(t, "level.jsonc", []byte(`{
  // hand-edited
  "m_Version": 80,
  "m_ThemeStubKey": "Western",
}`))
	output := filepath.Join(t.TempDir(), "edited.layout")
	mustExecute(t, "encode", "layout", "-o", output, model)

	result, err := layout.Decode(testutil.ReadFile(t, output), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Layout.ThemeStubKey != "Western" {
		t.Errorf("ThemeStubKey = %q, want Western", result.Layout.ThemeStubKey)
	}
}

func TestEncodeFillGUIDs(t *testing.T) {
	model := testutil.WriteFile(t, "level.json", []byte(`{"m_Bridge": {"m_Edges": [{"m_MaterialType": 1}]}}`))
	output := filepath.Join(t.TempDir(), "filled.layout")
	mustExecute(t, "encode", "layout", "--fill-guids", "-o", output, model)

	result, err := layout.Decode(testutil.ReadFile(t, output), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if edges := result.Layout.Bridge.Edges; len(edges) != 1 || edges[0].Guid == "" {
		t.Errorf("edges = %+v, want one edge with a generated guid", edges)
	}
}

func TestSlotCommandAndEncodeSlot(t *testing.T) {
	path, original := slotFile(t)
	output := mustExecute(t, "slot", path)

	var document map[string]any
	if err := json.Unmarshal(output, &document); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if document["m_DisplayName"] != "Suspension test" {
		t.Errorf("m_DisplayName = %v", document["m_DisplayName"])
	}
	bridge, ok := document["m_Bridge"].(map[string]any)
	if !ok {
		t.Fatalf("m_Bridge = %T, want the decoded bridge object", document["m_Bridge"])
	}
	if joints, _ := bridge["m_Joints"].([]any); len(joints) != 2 {
		t.Errorf("m_Joints = %v, want 2 joints", bridge["m_Joints"])
	}

	model := testutil.WriteFile(t, "bridge.json", output)
	encodedPath := filepath.Join(t.TempDir(), "encoded.slot")
	mustExecute(t, "encode", "slot", "-o", encodedPath, model)
	if encoded := testutil.ReadFile(t, encodedPath); !bytes.Equal(encoded, original) {
		t.Errorf("encoded slot differs from the original (%d vs %d bytes)", len(encoded), len(original))
	}
}

func TestRoundtripIdentical(t *testing.T) {
	layoutPath, _ := layoutFile(t, layout.NewDefault(), layout.DefaultConfig())
	slotPath, _ := slotFile(t)

	for _, args := range [][]string{
		{"roundtrip", "layout", layoutPath},
		{"roundtrip", "slot", slotPath},
	} {
		t.Run(args[1], func(t *testing.T) {
			output := string(mustExecute(t, args...))
			for _, want := range []string{"input", "re-encoded", "identical"} {
				if !strings.Contains(output, want) {
					t.Errorf("output missing %q:\n%s", want, output)
				}
			}
		})
	}
}

func TestRoundtripOlderVersionDiffers(t *testing.T) {
	older := layout.DefaultConfig()
	older.MaxLayoutVersion = layout.MaxLayoutVersion - 1
	path, _ := layoutFile(t, layout.NewDefault(), older)

	output, err := execute(t, "roundtrip", "layout", path)
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) || exitError.Code != 1 {
		t.Fatalf("error = %v, want ExitError with code 1", err)
	}
	// The big-endian version's low byte is the first to differ.
	if !strings.Contains(string(output), "differ at offset 3") {
		t.Errorf("output = %q, want first difference at offset 3", output)
	}
}

func TestCompareBuffers(t *testing.T) {
	tests := []struct {
		name      string
		a, b      []byte
		wantFirst int
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, -1},
		{"changed", []byte{1, 2, 3}, []byte{1, 9, 3}, 1},
		{"longer", []byte{1, 2}, []byte{1, 2, 3}, 2},
		{"shorter", []byte{1, 2, 3}, []byte{1}, 1},
		{"empty", nil, nil, -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := compareBuffers(test.a, test.b)
			if got.firstDifference != test.wantFirst {
				t.Errorf("firstDifference = %d, want %d", got.firstDifference, test.wantFirst)
			}
			if got.match() != (test.wantFirst < 0) {
				t.Errorf("match() = %v", got.match())
			}
		})
	}
}

func TestInfoLayout(t *testing.T) {
	l := layout.NewDefault()
	l.Bridge = sampleBridge()
	l.Bridge.Edges = append(l.Bridge.Edges, layout.Edge{
		NodeAGuid: testutil.UniqueID("missing"),
		NodeBGuid: l.Bridge.Joints[0].Guid,
		Guid:      testutil.UniqueID("edge"),
	})
	path, _ := layoutFile(t, l, layout.DefaultConfig())

	output := string(mustExecute(t, "info", "layout", "--color", "never", path))
	for _, want := range []string{"level.layout", "Steampunk", "joints", "blake3", "compression"} {
		if !strings.Contains(output, want) {
			t.Errorf("info output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "dangling_reference") {
		t.Errorf("references checked without --check-refs:\n%s", output)
	}

	checked := string(mustExecute(t, "info", "layout", "--check-refs", path))
	if !strings.Contains(checked, "dangling_reference") || !strings.Contains(checked, "unknown joint") {
		t.Errorf("--check-refs output missing the dangling edge:\n%s", checked)
	}
}

func TestInfoSlot(t *testing.T) {
	path, _ := slotFile(t)
	output := string(mustExecute(t, "info", "slot", path))
	for _, want := range []string{"Suspension test", "physics 1", "thumbnail", "4 bytes", "edges"} {
		if !strings.Contains(output, want) {
			t.Errorf("info output missing %q:\n%s", want, output)
		}
	}
}

func TestNewCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "blank.layout")
	mustExecute(t, "new", "-o", output)

	want, err := layout.Encode(layout.NewDefault(), layout.DefaultConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := testutil.ReadFile(t, output); !bytes.Equal(got, want) {
		t.Error("new layout differs from the encoded default layout")
	}
}

func TestVersionCommand(t *testing.T) {
	output := string(mustExecute(t, "version"))
	if !strings.HasPrefix(output, "polyparse ") {
		t.Errorf("version output = %q", output)
	}
	if !strings.Contains(output, "layout 80") {
		t.Errorf("version output = %q, want format versions", output)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "subcommand required"},
		{"unknown command", []string{"layuot"}, `did you mean "layout"`},
		{"missing file", []string{"layout"}, "expected 1 argument(s)"},
		{"missing mode", []string{"roundtrip"}, "subcommand required"},
		{"unknown mode", []string{"encode", "level"}, "unknown command"},
		{"unreadable file", []string{"slot", "/nonexistent/bridge.slot"}, "reading input"},
		{"extra argument", []string{"version", "now"}, "expected 0 argument(s)"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := execute(t, test.args...)
			if err == nil {
				t.Fatalf("polyparse %v succeeded, want error", test.args)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want %q", err.Error(), test.want)
			}
		})
	}
}

func TestDecodeErrorIsReported(t *testing.T) {
	path := testutil.WriteFile(t, "truncated.layout", []byte{0, 0, 0})
	if _, err := execute(t, "layout", path); err == nil {
		t.Error("decoding a truncated layout succeeded")
	}
}
