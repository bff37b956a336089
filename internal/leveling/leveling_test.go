// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpForLevel(t *testing.T) {
	tests := []struct {
		name  string
		level int
		want  int64
	}{
		{"level 1", 1, 1000},
		{"level 5", 5, 125000},
		{"level 10", 10, 1000000},
		{"level 55", 55, 166375000},
		{"level 100", 100, 1000000000},
		{"level 0 is out of range", 0, 0},
		{"negative level is out of range", -3, 0},
		{"level 101 is out of range", 101, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpForLevel(tt.level))
		})
	}
}

func TestExpForLevel_Monotonic(t *testing.T) {
	prev := ExpForLevel(MinLevel)
	for l := MinLevel + 1; l <= MaxLevel; l++ {
		cur := ExpForLevel(l)
		assert.Greater(t, cur, prev, "experience must grow with level %d", l)
		prev = cur
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 55, Clamp(60, 55))
	assert.Equal(t, 55, Clamp(55, 55))
	assert.Equal(t, 10, Clamp(10, 55))
	assert.Equal(t, 5, Clamp(10, 5))
}
