// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package slot

import (
	"log/slog"
	"time"

	"github.com/bureau-foundation/polyparse/lib/layout"
)

const (
	// MaxSlotVersion is the newest slot version this package knows.
	MaxSlotVersion = 3

	// MaxPhysicsVersion is the newest physics version this package
	// knows.
	MaxPhysicsVersion = 1
)

// Config controls a slot decode or encode. Unset fields take the
// values of [DefaultConfig].
type Config struct {
	// MaxSlotVersion and MaxPhysicsVersion are written by Encode.
	// Decoding a newer slot version reports a diagnostic.
	MaxSlotVersion    int
	MaxPhysicsVersion int

	// Layout configures the embedded bridge section.
	Layout layout.Config

	// Logger, when set, receives a warning per diagnostic.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		MaxSlotVersion:    MaxSlotVersion,
		MaxPhysicsVersion: MaxPhysicsVersion,
		Layout:            layout.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxSlotVersion <= 0 {
		c.MaxSlotVersion = MaxSlotVersion
	}
	if c.MaxPhysicsVersion <= 0 {
		c.MaxPhysicsVersion = MaxPhysicsVersion
	}
	return c
}

// Slot is the typed view of a save slot.
type Slot struct {
	// Version and PhysicsVersion are as decoded. Encode writes the
	// configured maximums instead.
	Version        int32 `json:"m_Version"`
	PhysicsVersion int32 `json:"m_PhysicsVersion"`

	SlotID       int32  `json:"m_SlotID"`
	DisplayName  string `json:"m_DisplayName"`
	SlotFilename string `json:"m_SlotFilename"`
	Budget       int32  `json:"m_Budget"`

	// LastWriteTimeTicks counts 100-nanosecond intervals since
	// 0001-01-01 UTC.
	LastWriteTimeTicks int64 `json:"m_LastWriteTimeTicks"`

	Bridge layout.Bridge `json:"m_Bridge"`

	// Thumbnail is the encoded preview image. Nil is written as a
	// named null.
	Thumbnail []byte `json:"m_Thumb"`

	UsingUnlimitedMaterials bool `json:"m_UsingUnlimitedMaterials"`
	UsingUnlimitedBudget    bool `json:"m_UsingUnlimitedBudget"`
}

// ticksAtUnixEpoch is 1970-01-01 expressed in ticks.
const ticksAtUnixEpoch = 621_355_968_000_000_000

// LastWriteTime converts LastWriteTimeTicks to a time in UTC.
func (s *Slot) LastWriteTime() time.Time {
	elapsed := s.LastWriteTimeTicks - ticksAtUnixEpoch
	return time.Unix(elapsed/10_000_000, (elapsed%10_000_000)*100).UTC()
}

// SetLastWriteTime stores t as LastWriteTimeTicks.
func (s *Slot) SetLastWriteTime(t time.Time) {
	s.LastWriteTimeTicks = t.Unix()*10_000_000 + int64(t.Nanosecond()/100) + ticksAtUnixEpoch
}
