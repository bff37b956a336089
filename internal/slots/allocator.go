// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package slots

// Allocator hands out slot ids for a single import run. Each label's pool is
// consumed in fixed order, one id per request; consumption is scoped to the
// allocator, never global.
type Allocator struct {
	used map[string]int
}

// NewAllocator creates an allocator with every pool untouched.
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[string]int)}
}

// Next returns the next unassigned slot id for the given location label.
// It reports false when the label is unknown or its pool is exhausted.
func (a *Allocator) Next(label string) (int32, bool) {
	pool, ok := topology[label]
	if !ok {
		return 0, false
	}
	n := a.used[label]
	if n >= len(pool) {
		return 0, false
	}
	a.used[label] = n + 1
	return pool[n], true
}
