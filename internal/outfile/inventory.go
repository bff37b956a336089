// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package outfile parses the tab-separated inventory and spellbook exports
// produced by the character outfile generator.
package outfile

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// emptyName marks an unused slot in an inventory outfile.
const emptyName = "Empty"

// inventoryHeader is the exact first row required of an inventory outfile.
var inventoryHeader = []string{"Location", "Name", "ID", "Count", "Slots"}

// InventoryRow is one parsed item line from an inventory outfile.
type InventoryRow struct {
	Location string
	Name     string
	ItemID   int32
	Charges  int32
	Slots    int32
}

// ParseInventory parses inventory outfile text into rows, in file order.
//
// The producer double-escapes apostrophes in item names; the literal sequence
// `\&#039;` is decoded before parsing. A missing or mismatched header row, or
// text that cannot be read as tab-separated values, yields no rows: malformed
// outfiles mean nothing to import, not an error. Rows named "Empty" are
// discarded.
func ParseInventory(text string) []InventoryRow {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, `\&#039;`, "'")

	records := readTSV(text)
	if len(records) == 0 || !equalFields(records[0], inventoryHeader) {
		return nil
	}

	var rows []InventoryRow
	for _, rec := range records[1:] {
		if len(rec) < 3 || rec[0] == "" || rec[1] == "" {
			continue
		}
		if rec[1] == emptyName {
			continue
		}
		row := InventoryRow{
			Location: rec[0],
			Name:     rec[1],
			ItemID:   atoi32(rec[2]),
		}
		if len(rec) > 3 {
			row.Charges = atoi32(rec[3])
		}
		if len(rec) > 4 {
			row.Slots = atoi32(rec[4])
		}
		rows = append(rows, row)
	}
	return rows
}

func readTSV(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil
	}
	return records
}

func equalFields(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// atoi32 mirrors the producer's loose numeric handling: non-numeric text
// becomes 0 rather than an error.
func atoi32(s string) int32 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}
