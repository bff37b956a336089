// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package game

import (
	"context"

	"github.com/samber/oops"
)

// CharacterRepository resolves and levels characters.
type CharacterRepository interface {
	// FreshByNames returns the level-1 characters with the given names,
	// keyed by exact name. Only fresh characters qualify for import.
	FreshByNames(ctx context.Context, names []string) (map[string]Character, error)
	// SetLevel writes a character's level and experience.
	SetLevel(ctx context.Context, id int64, level int, exp int64) error
	// RefreshVitals restores current health and mana to the class- and
	// level-appropriate maximums from the base stats table.
	RefreshVitals(ctx context.Context, id int64) error
}

// PostgresCharacterRepository implements CharacterRepository using PostgreSQL.
type PostgresCharacterRepository struct {
	pool poolIface
}

// NewPostgresCharacterRepository creates a new PostgreSQL character repository.
func NewPostgresCharacterRepository(pool poolIface) *PostgresCharacterRepository {
	return &PostgresCharacterRepository{pool: pool}
}

// FreshByNames looks up level-1 characters by exact, case-sensitive name.
func (r *PostgresCharacterRepository) FreshByNames(ctx context.Context, names []string) (map[string]Character, error) {
	if len(names) == 0 {
		return map[string]Character{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, level, gender, race, class, deity
		FROM character_data
		WHERE level = 1 AND name = ANY($1)
	`, names)
	if err != nil {
		return nil, oops.Code("CHARACTER_LOOKUP_FAILED").With("operation", "lookup characters").Wrap(err)
	}
	defer rows.Close()

	chars := make(map[string]Character)
	for rows.Next() {
		var ch Character
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Level, &ch.Gender, &ch.Race, &ch.Class, &ch.Deity); err != nil {
			return nil, oops.Code("CHARACTER_LOOKUP_FAILED").With("operation", "scan character row").Wrap(err)
		}
		chars[ch.Name] = ch
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CHARACTER_LOOKUP_FAILED").With("operation", "iterate characters").Wrap(err)
	}
	return chars, nil
}

// SetLevel writes the character's new level and experience total.
func (r *PostgresCharacterRepository) SetLevel(ctx context.Context, id int64, level int, exp int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE character_data SET level = $1, exp = $2 WHERE id = $3`,
		level, exp, id)
	if err != nil {
		return oops.Code("CHARACTER_UPDATE_FAILED").
			With("operation", "set level").
			With("id", id).
			Wrap(err)
	}
	return nil
}

// RefreshVitals sets current health and mana from the base stats for the
// character's level and class.
func (r *PostgresCharacterRepository) RefreshVitals(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE character_data cd
		SET cur_hp = bd.hp, mana = bd.mana
		FROM base_data bd
		WHERE bd.level = cd.level AND bd.class = cd.class AND cd.id = $1
	`, id)
	if err != nil {
		return oops.Code("CHARACTER_UPDATE_FAILED").
			With("operation", "refresh vitals").
			With("id", id).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ CharacterRepository = (*PostgresCharacterRepository)(nil)
