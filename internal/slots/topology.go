// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package slots maps outfile location labels to the numeric slot ids used by
// the game store's inventory table.
package slots

import "fmt"

// Container geometry. Every general, bank, and shared-bank container exposes
// ten numbered sub-slots; the id blocks below must match the existing store
// exactly and are not configurable.
const (
	subSlotsPerBag = 10

	generalCount    = 10
	generalBase     = 23
	generalSlotBase = 251

	bankCount    = 24
	bankBase     = 2000
	bankSlotBase = 2031

	sharedBankCount    = 2
	sharedBankBase     = 2500
	sharedBankSlotBase = 2531
)

// topology maps each outfile Location label to its ordered pool of slot ids.
// Single-slot locations hold one id; paired worn slots (Ear, Wrist, Fingers)
// and bag sub-slot labels hold fixed pools consumed first-come-first-served.
var topology = buildTopology()

func buildTopology() map[string][]int32 {
	t := map[string][]int32{
		"Charm":        {0},
		"Ear":          {1, 4},
		"Head":         {2},
		"Face":         {3},
		"Neck":         {5},
		"Shoulders":    {6},
		"Arms":         {7},
		"Back":         {8},
		"Wrist":        {9, 10},
		"Range":        {11},
		"Hands":        {12},
		"Primary":      {13},
		"Secondary":    {14},
		"Fingers":      {15, 16},
		"Chest":        {17},
		"Legs":         {18},
		"Feet":         {19},
		"Waist":        {20},
		"Power Source": {21},
		"Ammo":         {22},
		"Held":         {33},
	}

	addBags(t, "General", generalCount, generalBase, generalSlotBase)
	addBags(t, "Bank", bankCount, bankBase, bankSlotBase)
	addBags(t, "SharedBank", sharedBankCount, sharedBankBase, sharedBankSlotBase)

	return t
}

// addBags registers n containers named prefix1..prefixN. Each container label
// maps to its base slot; each "prefixN-SlotM" label maps to one sub-slot id.
func addBags(t map[string][]int32, prefix string, n, base, slotBase int) {
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("%s%d", prefix, i+1)
		t[label] = []int32{int32(base + i)}
		for j := 0; j < subSlotsPerBag; j++ {
			t[fmt.Sprintf("%s-Slot%d", label, j+1)] = []int32{int32(slotBase + i*subSlotsPerBag + j)}
		}
	}
}

// Lookup returns the ordered slot id pool for a location label.
func Lookup(label string) ([]int32, bool) {
	pool, ok := topology[label]
	return pool, ok
}
