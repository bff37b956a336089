// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package importer

import (
	"context"

	"github.com/jwinky/eqemu-char-import/internal/game"
	"github.com/jwinky/eqemu-char-import/internal/outfile"
)

// SpellbookImporter replaces a character's scribed spells from a spellbook
// outfile.
type SpellbookImporter struct {
	spells game.SpellRepository
}

// NewSpellbookImporter creates a spellbook importer over the given
// repository.
func NewSpellbookImporter(spells game.SpellRepository) *SpellbookImporter {
	return &SpellbookImporter{spells: spells}
}

// Import parses the outfile, cross-checks each row against the catalog's
// class availability, clears the spellbook, and scribes the valid spells at
// contiguous slots starting from zero in outfile order. Rows that do not
// resolve are skipped without consuming a slot and without being reported.
// An empty or unparsable outfile imports nothing.
func (imp *SpellbookImporter) Import(ctx context.Context, ch game.Character, text string) error {
	rows := outfile.ParseSpellbook(text)
	if len(rows) == 0 {
		return nil
	}

	refs := make([]game.SpellRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, game.SpellRef{Name: row.Name, Flag: row.Flag})
	}
	valid, err := imp.spells.ValidSpellIDs(ctx, ch.Class, refs)
	if err != nil {
		return err
	}

	if err := imp.spells.ClearSpellbook(ctx, ch.ID); err != nil {
		return err
	}

	slot := int32(0)
	for _, row := range rows {
		spellID, ok := valid[row.Name]
		if !ok || spellID <= 0 {
			continue
		}
		if err := imp.spells.Scribe(ctx, ch.ID, slot, spellID); err != nil {
			return err
		}
		slot++
	}
	return nil
}
