// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package importer applies queued import requests to the game database:
// leveling, inventory replacement, and spellbook replacement.
package importer

import (
	"context"

	"github.com/jwinky/eqemu-char-import/internal/game"
	"github.com/jwinky/eqemu-char-import/internal/outfile"
	"github.com/jwinky/eqemu-char-import/internal/slots"
)

// InventoryImporter replaces a character's inventory and bank contents from
// an inventory outfile.
type InventoryImporter struct {
	items game.ItemRepository
	inv   game.InventoryRepository
}

// NewInventoryImporter creates an inventory importer over the given
// repositories.
func NewInventoryImporter(items game.ItemRepository, inv game.InventoryRepository) *InventoryImporter {
	return &InventoryImporter{items: items, inv: inv}
}

// Import parses the outfile, filters rows through the catalog's usability
// restrictions, clears the character's inventory and bank, and inserts the
// surviving rows at slots resolved through the topology. It returns the
// display names of every rejected row: usability failures in outfile order,
// then rows whose slot pool was unknown or exhausted. Names are not
// deduplicated. An empty or malformed outfile imports nothing and rejects
// nothing.
func (imp *InventoryImporter) Import(ctx context.Context, ch game.Character, text string) ([]string, error) {
	rows := outfile.ParseInventory(text)
	if len(rows) == 0 {
		return nil, nil
	}

	refs := make([]game.ItemRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, game.ItemRef{Name: row.Name, ID: row.ItemID})
	}
	usable, err := imp.items.UsableIDs(ctx, ch, refs)
	if err != nil {
		return nil, err
	}

	var rejected []string
	kept := make([]outfile.InventoryRow, 0, len(rows))
	for _, row := range rows {
		if usable[row.ItemID] {
			kept = append(kept, row)
		} else {
			rejected = append(rejected, row.Name)
		}
	}

	// Full replace: the old inventory goes away even when every row was
	// rejected by the usability filter.
	if err := imp.inv.Clear(ctx, ch.ID); err != nil {
		return nil, err
	}

	alloc := slots.NewAllocator()
	for _, row := range kept {
		slot, ok := alloc.Next(row.Location)
		if !ok {
			rejected = append(rejected, row.Name)
			continue
		}
		if err := imp.inv.Insert(ctx, ch.ID, slot, row.ItemID, row.Charges); err != nil {
			return nil, err
		}
	}
	return rejected, nil
}
