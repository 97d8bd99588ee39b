// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package layout

// Versions are the version numbers in scope while a field is coded.
// Field presence depends on nothing else.
type Versions struct {
	// Layout is the absolute layout version, clamped to the maximum
	// the codec supports.
	Layout int

	// Bridge is the bridge version in scope: the bridge section's own
	// version inside that section, and the header copy (0 before
	// layout version 38) everywhere else.
	Bridge int

	// Modded is the sign bit of the encoded layout version.
	Modded bool
}

// Predicate reports whether a version number satisfies a condition.
type Predicate func(version int) bool

// Since matches versions >= n.
func Since(n int) Predicate {
	return func(version int) bool { return version >= n }
}

// After matches versions > n.
func After(n int) Predicate {
	return func(version int) bool { return version > n }
}

// Before matches versions < n.
func Before(n int) Predicate {
	return func(version int) bool { return version < n }
}

// Through matches versions <= n.
func Through(n int) Predicate {
	return func(version int) bool { return version <= n }
}

// Between matches versions in the half-open range [low, high).
func Between(low, high int) Predicate {
	return func(version int) bool { return version >= low && version < high }
}

// Exactly matches a single version.
func Exactly(n int) Predicate {
	return func(version int) bool { return version == n }
}

// Or matches when any of predicates matches.
func Or(predicates ...Predicate) Predicate {
	return func(version int) bool {
		for _, predicate := range predicates {
			if predicate(version) {
				return true
			}
		}
		return false
	}
}

// And matches when all of predicates match.
func And(predicates ...Predicate) Predicate {
	return func(version int) bool {
		for _, predicate := range predicates {
			if !predicate(version) {
				return false
			}
		}
		return true
	}
}

// Not inverts a predicate.
func Not(predicate Predicate) Predicate {
	return func(version int) bool { return !predicate(version) }
}

// Gate decides whether a field is present given the versions in scope.
// A nil Gate means always present.
type Gate func(Versions) bool

// OnLayout applies predicate to the layout version.
func OnLayout(predicate Predicate) Gate {
	return func(v Versions) bool { return predicate(v.Layout) }
}

// OnBridge applies predicate to the bridge version in scope.
func OnBridge(predicate Predicate) Gate {
	return func(v Versions) bool { return predicate(v.Bridge) }
}

// Modded matches layouts whose encoded version was negative.
func Modded(v Versions) bool {
	return v.Modded
}
