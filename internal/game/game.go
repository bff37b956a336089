// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package game provides read and write access to the live game character
// store: character records, the item and spell catalogs, inventories, and
// spellbooks. The schema is owned by the game server; this tool only touches
// the rows the import pipeline needs.
package game

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// poolIface is the subset of pgxpool.Pool the repositories need. pgxmock's
// PgxPoolIface satisfies it in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Character is one game character record. Race, Class, and Deity carry the
// store's numeric encodings; the item usability checks combine them
// bitwise with the catalog's restriction masks, and Class additionally
// selects the per-class spell availability column.
type Character struct {
	ID     int64
	Name   string
	Level  int
	Gender int
	Race   int
	Class  int
	Deity  int
}
