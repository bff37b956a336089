// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package outfile

// SpellRow is one parsed line from a spellbook outfile: the class-specific
// availability flag and the spell's display name. Spellbook outfiles carry no
// header row.
type SpellRow struct {
	Flag int32
	Name string
}

// ParseSpellbook parses spellbook outfile text into rows, in file order.
// Unparsable text yields no rows.
func ParseSpellbook(text string) []SpellRow {
	if text == "" {
		return nil
	}

	var rows []SpellRow
	for _, rec := range readTSV(text) {
		if len(rec) == 0 {
			continue
		}
		// The name is the last column; extra middle columns are tolerated.
		name := rec[len(rec)-1]
		if name == "" {
			continue
		}
		rows = append(rows, SpellRow{Flag: atoi32(rec[0]), Name: name})
	}
	return rows
}
