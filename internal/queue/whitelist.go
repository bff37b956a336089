// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package queue

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// ErrDuplicateWhitelistItem indicates the item id is already whitelisted.
var ErrDuplicateWhitelistItem = errors.New("item already whitelisted")

// WhitelistedItem is one row of the item whitelist. The table is maintained
// alongside the queue and loaded at the start of every run, but the import
// engines do not consult it yet; the filtering feature was never finished.
type WhitelistedItem struct {
	ItemID int32
	Name   string
}

// WhitelistRepository provides access to the item whitelist.
type WhitelistRepository interface {
	All(ctx context.Context) ([]WhitelistedItem, error)
	Add(ctx context.Context, item WhitelistedItem) error
}

// PostgresWhitelistRepository implements WhitelistRepository using PostgreSQL.
type PostgresWhitelistRepository struct {
	pool poolIface
}

// NewPostgresWhitelistRepository creates a new PostgreSQL whitelist repository.
func NewPostgresWhitelistRepository(pool poolIface) *PostgresWhitelistRepository {
	return &PostgresWhitelistRepository{pool: pool}
}

// All returns every whitelisted item ordered by item id.
func (r *PostgresWhitelistRepository) All(ctx context.Context) ([]WhitelistedItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT item_id, name FROM whitelisted_items ORDER BY item_id`)
	if err != nil {
		return nil, oops.Code("WHITELIST_LOAD_FAILED").With("operation", "load whitelist").Wrap(err)
	}
	defer rows.Close()

	var items []WhitelistedItem
	for rows.Next() {
		var item WhitelistedItem
		if err := rows.Scan(&item.ItemID, &item.Name); err != nil {
			return nil, oops.Code("WHITELIST_LOAD_FAILED").With("operation", "scan whitelist row").Wrap(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WHITELIST_LOAD_FAILED").With("operation", "iterate whitelist").Wrap(err)
	}
	return items, nil
}

// Add inserts a new whitelisted item. Adding an item id that is already
// present returns an error wrapping ErrDuplicateWhitelistItem.
func (r *PostgresWhitelistRepository) Add(ctx context.Context, item WhitelistedItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO whitelisted_items (item_id, name) VALUES ($1, $2)`,
		item.ItemID, item.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("WHITELIST_DUPLICATE").
				With("item_id", item.ItemID).
				Wrap(ErrDuplicateWhitelistItem)
		}
		return oops.Code("WHITELIST_ADD_FAILED").
			With("operation", "insert whitelist item").
			With("item_id", item.ItemID).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ WhitelistRepository = (*PostgresWhitelistRepository)(nil)
