// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/oops"
)

// Player class numbers recognized by the spell catalog's per-class
// availability columns (classes1 through classes16).
const (
	minPlayerClass = 1
	maxPlayerClass = 16
)

// SpellRef identifies one candidate spell from a spellbook outfile by
// display name and the outfile's class-availability flag.
type SpellRef struct {
	Name string
	Flag int32
}

// SpellRepository answers spell validity questions and mutates spellbooks.
type SpellRepository interface {
	// ValidSpellIDs returns a name-to-id mapping for the referenced spells
	// whose catalog availability for the class matches the outfile's flag.
	// The cross-check stops tampered outfiles from scribing spells the
	// class cannot learn. First match wins on duplicate names.
	ValidSpellIDs(ctx context.Context, classNum int, refs []SpellRef) (map[string]int32, error)
	// ClearSpellbook removes every scribed spell for the character.
	ClearSpellbook(ctx context.Context, charID int64) error
	// Scribe inserts one spell at the given spellbook slot.
	Scribe(ctx context.Context, charID int64, slot, spellID int32) error
}

// PostgresSpellRepository implements SpellRepository using PostgreSQL.
type PostgresSpellRepository struct {
	pool poolIface
}

// NewPostgresSpellRepository creates a new PostgreSQL spell repository.
func NewPostgresSpellRepository(pool poolIface) *PostgresSpellRepository {
	return &PostgresSpellRepository{pool: pool}
}

// ValidSpellIDs matches the referenced spells against the catalog's
// class-availability column. The column name is derived from the class
// number, which cannot be bound as a parameter; it is range-checked before
// use. Spell names are outfile content and are always bound.
func (r *PostgresSpellRepository) ValidSpellIDs(ctx context.Context, classNum int, refs []SpellRef) (map[string]int32, error) {
	if classNum < minPlayerClass || classNum > maxPlayerClass {
		return nil, oops.Code("SPELL_CLASS_INVALID").
			With("class", classNum).
			Errorf("class number must be between %d and %d", minPlayerClass, maxPlayerClass)
	}
	if len(refs) == 0 {
		return map[string]int32{}, nil
	}

	column := fmt.Sprintf("classes%d", classNum)

	var sb strings.Builder
	sb.WriteString(`SELECT id, name FROM spells_new WHERE `)
	var args []any
	for i, ref := range refs {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		fmt.Fprintf(&sb, "(name = $%d AND %s = $%d)", len(args)+1, column, len(args)+2)
		args = append(args, ref.Name, ref.Flag)
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, oops.Code("SPELL_QUERY_FAILED").
			With("operation", "query valid spells").
			With("class", classNum).
			Wrap(err)
	}
	defer rows.Close()

	valid := make(map[string]int32)
	for rows.Next() {
		var id int32
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, oops.Code("SPELL_QUERY_FAILED").With("operation", "scan spell row").Wrap(err)
		}
		if _, ok := valid[name]; !ok {
			valid[name] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("SPELL_QUERY_FAILED").With("operation", "iterate spell rows").Wrap(err)
	}
	return valid, nil
}

// ClearSpellbook removes all scribed spells for the character.
func (r *PostgresSpellRepository) ClearSpellbook(ctx context.Context, charID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM character_spells WHERE id = $1`, charID)
	if err != nil {
		return oops.Code("SPELLBOOK_CLEAR_FAILED").
			With("operation", "clear spellbook").
			With("char_id", charID).
			Wrap(err)
	}
	return nil
}

// Scribe inserts one spell into the character's spellbook.
func (r *PostgresSpellRepository) Scribe(ctx context.Context, charID int64, slot, spellID int32) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO character_spells (id, slot_id, spell_id) VALUES ($1, $2, $3)`,
		charID, slot, spellID)
	if err != nil {
		return oops.Code("SPELL_SCRIBE_FAILED").
			With("operation", "scribe spell").
			With("char_id", charID).
			With("slot", slot).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ SpellRepository = (*PostgresSpellRepository)(nil)
