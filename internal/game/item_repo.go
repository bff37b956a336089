// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// ItemRef identifies one candidate item from an outfile by display name and
// catalog id. Both must match a catalog row for the item to qualify.
type ItemRef struct {
	Name string
	ID   int32
}

// ItemRepository answers usability questions against the item catalog.
type ItemRepository interface {
	// UsableIDs returns the ids of the referenced items the character may
	// hold: unrestricted minimum status, and class/deity/race restriction
	// masks that are either open or share a bit with the character's
	// values.
	UsableIDs(ctx context.Context, ch Character, refs []ItemRef) (map[int32]bool, error)
}

// PostgresItemRepository implements ItemRepository using PostgreSQL.
type PostgresItemRepository struct {
	pool poolIface
}

// NewPostgresItemRepository creates a new PostgreSQL item repository.
func NewPostgresItemRepository(pool poolIface) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

// UsableIDs filters the referenced items through the catalog's restriction
// columns. Item names come from outfile content, so every name and id is
// bound as a parameter, never interpolated.
func (r *PostgresItemRepository) UsableIDs(ctx context.Context, ch Character, refs []ItemRef) (map[int32]bool, error) {
	if len(refs) == 0 {
		return map[int32]bool{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id FROM items WHERE minstatus = 0` +
		` AND (classes = 0 OR classes & $1 > 0)` +
		` AND (deity = 0 OR deity & $2 > 0)` +
		` AND (races = 0 OR races & $3 > 0) AND (`)
	args := []any{ch.Class, ch.Deity, ch.Race}
	for i, ref := range refs {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		fmt.Fprintf(&sb, "(name = $%d AND id = $%d)", len(args)+1, len(args)+2)
		args = append(args, ref.Name, ref.ID)
	}
	sb.WriteString(")")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, oops.Code("ITEM_QUERY_FAILED").
			With("operation", "query usable items").
			With("candidates", len(refs)).
			Wrap(err)
	}
	defer rows.Close()

	usable := make(map[int32]bool)
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, oops.Code("ITEM_QUERY_FAILED").With("operation", "scan item id").Wrap(err)
		}
		usable[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ITEM_QUERY_FAILED").With("operation", "iterate item ids").Wrap(err)
	}
	return usable, nil
}

// Compile-time interface check.
var _ ItemRepository = (*PostgresItemRepository)(nil)
