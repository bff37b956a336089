// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package leveling computes target levels and experience for imported
// characters.
package leveling

// Level bounds recognized by the experience formula.
const (
	MinLevel = 1
	MaxLevel = 100
)

// ExpForLevel returns the experience total for a character of the given
// level. Levels outside [MinLevel, MaxLevel] yield 0.
//
// The cubic curve approximates the server's progression; a per-class,
// per-level modifier table would be more precise.
func ExpForLevel(level int) int64 {
	if level < MinLevel || level > MaxLevel {
		return 0
	}
	l := int64(level)
	return l * l * l * 1000
}

// Clamp constrains a requested level to the configured maximum.
func Clamp(level, max int) int {
	if level > max {
		return max
	}
	return level
}
