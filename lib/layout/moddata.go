// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bureau-foundation/polyparse/lib/cursor"
)

const (
	// modFieldSeparator joins the name, version and settings of a mod
	// into one string on the wire.
	modFieldSeparator = "\u058d"

	// modSettingSeparator joins the individual settings of a mod.
	modSettingSeparator = "|"
)

// ErrModVersionMissing is returned when a save payload names no version
// and no loaded mod with the same name supplies one.
var ErrModVersionMissing = errors.New("mod save data has no version and no matching mod")

// String returns the wire form of m.
func (m Mod) String() string {
	return m.Name + modFieldSeparator + m.Version + modFieldSeparator +
		strings.Join(m.Settings, modSettingSeparator)
}

// parseMod splits the wire form of a mod. Missing parts are empty.
func parseMod(text string) Mod {
	parts := strings.Split(text, modFieldSeparator)
	mod := Mod{Name: parts[0]}
	settings := ""
	if len(parts) >= 2 {
		mod.Version = parts[1]
	}
	if len(parts) >= 3 {
		settings = parts[2]
	}
	mod.Settings = strings.Split(settings, modSettingSeparator)
	return mod
}

// identifier returns the wire form of the name and version of s.
func (s ModSaveData) identifier() string {
	return s.Name + modFieldSeparator + s.Version
}

// modVersion returns the version of the first mod called name.
func (d *ModData) modVersion(name string) (string, bool) {
	for _, mod := range d.Mods {
		if mod.Name == name {
			return mod.Version, true
		}
	}
	return "", false
}

// modDataSection codes the mod list and the mod save payloads. The mod
// count is 16-bit; the save count is 32-bit and a zero ends the section.
func modDataSection(c *codec, d *ModData) {
	if !c.decoding() {
		encodeModData(c, d)
		return
	}

	c.push("mods")
	count := int(c.reader.Int16())
	if c.err() != nil {
		return
	}
	if count < 0 {
		c.fail(fmt.Errorf("%w: mod count %d", cursor.ErrInvalidLength, count))
		return
	}
	mods := make([]Mod, count)
	for i := range mods {
		mods[i] = parseMod(c.reader.String16())
	}
	if c.err() != nil {
		return
	}
	d.Mods = mods
	c.pop()

	c.push("modSaveData")
	saves := c.reader.Count()
	if c.err() != nil {
		return
	}
	d.ModSaveData = make([]ModSaveData, 0, saves)
	for i := range saves {
		c.push(indexSegment(i))
		parts := strings.SplitN(c.reader.String16(), modFieldSeparator, 2)
		data := c.reader.ByteArray()
		if c.err() != nil {
			return
		}
		save := ModSaveData{Name: parts[0], Data: data}
		if save.Name == "" {
			c.pop()
			continue
		}
		if len(parts) == 2 {
			save.Version = parts[1]
		} else {
			version, ok := d.modVersion(save.Name)
			if !ok {
				c.fail(fmt.Errorf("%w: %q", ErrModVersionMissing, save.Name))
				return
			}
			save.Version = version
		}
		d.ModSaveData = append(d.ModSaveData, save)
		c.pop()
	}
	c.pop()
}

func encodeModData(c *codec, d *ModData) {
	if len(d.Mods) > math.MaxInt16 {
		c.fail(fmt.Errorf("%w: %d mods", cursor.ErrInvalidLength, len(d.Mods)))
		return
	}
	c.writer.Int16(int16(len(d.Mods)))
	for _, mod := range d.Mods {
		c.writer.String16(mod.String())
	}
	c.writer.Count(len(d.ModSaveData))
	for _, save := range d.ModSaveData {
		c.writer.String16(save.identifier())
		c.writer.ByteArray(save.Data)
	}
}
