// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/bureau-foundation/polyparse/lib/cursor"
)

func decodeModData(t *testing.T, data []byte) (ModData, error) {
	t.Helper()
	c := newDecoder(cursor.NewReader(data, binary.BigEndian), DefaultConfig())
	var d ModData
	modDataSection(c, &d)
	return d, c.err()
}

func TestParseMod(t *testing.T) {
	tests := []struct {
		text string
		want Mod
	}{
		{"ptf֍1.2֍a|b", Mod{Name: "ptf", Version: "1.2", Settings: []string{"a", "b"}}},
		{"ptf֍1.2", Mod{Name: "ptf", Version: "1.2", Settings: []string{""}}},
		{"ptf", Mod{Name: "ptf", Settings: []string{""}}},
		{"", Mod{Settings: []string{""}}},
	}
	for _, test := range tests {
		if got := parseMod(test.text); !reflect.DeepEqual(got, test.want) {
			t.Errorf("parseMod(%q) = %+v, want %+v", test.text, got, test.want)
		}
	}
}

func TestModStringRoundTrip(t *testing.T) {
	mod := Mod{Name: "ptf", Version: "1.2", Settings: []string{"a", "b"}}
	if got := parseMod(mod.String()); !reflect.DeepEqual(got, mod) {
		t.Errorf("parseMod(String()) = %+v, want %+v", got, mod)
	}
}

func TestModSaveDataVersionLookup(t *testing.T) {
	w := cursor.NewGrowableWriter(binary.BigEndian)
	w.Int16(1)
	w.String16("ptf֍1.2֍a|b")
	w.Count(3)
	w.String16("ptf") // no version: taken from the mod list
	w.ByteArray([]byte{1, 2})
	w.String16("֍9") // no name: dropped
	w.ByteArray([]byte{3})
	w.String16("other֍2.0")
	w.ByteArray(nil)

	d, err := decodeModData(t, w.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.Mods) != 1 || d.Mods[0].Name != "ptf" {
		t.Fatalf("Mods = %+v", d.Mods)
	}
	if len(d.ModSaveData) != 2 {
		t.Fatalf("ModSaveData = %+v, want two entries", d.ModSaveData)
	}
	first, second := d.ModSaveData[0], d.ModSaveData[1]
	if first.Name != "ptf" || first.Version != "1.2" || !bytes.Equal(first.Data, []byte{1, 2}) {
		t.Errorf("first save = %+v", first)
	}
	if second.Name != "other" || second.Version != "2.0" || len(second.Data) != 0 {
		t.Errorf("second save = %+v", second)
	}
}

func TestModSaveDataMissingVersion(t *testing.T) {
	w := cursor.NewGrowableWriter(binary.BigEndian)
	w.Int16(0)
	w.Count(1)
	w.String16("unknown")
	w.ByteArray([]byte{1})

	if _, err := decodeModData(t, w.Bytes()); !errors.Is(err, ErrModVersionMissing) {
		t.Errorf("decode error = %v, want %v", err, ErrModVersionMissing)
	}
}

func TestModDataZeroSaves(t *testing.T) {
	w := cursor.NewGrowableWriter(binary.BigEndian)
	w.Int16(0)
	w.Count(0)

	d, err := decodeModData(t, w.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.ModSaveData) != 0 {
		t.Errorf("ModSaveData = %+v, want empty", d.ModSaveData)
	}
}

func TestModDataNegativeCount(t *testing.T) {
	w := cursor.NewGrowableWriter(binary.BigEndian)
	w.Int16(-1)
	if _, err := decodeModData(t, w.Bytes()); !errors.Is(err, cursor.ErrInvalidLength) {
		t.Errorf("decode error = %v, want %v", err, cursor.ErrInvalidLength)
	}
}
