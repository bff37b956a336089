// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package game

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// ErrSlotOccupied indicates an insert targeted a slot that already holds an
// item. The allocator prevents this within a run; hitting it means the
// character's inventory was not cleared first.
var ErrSlotOccupied = errors.New("inventory slot already occupied")

// InventoryRepository mutates character inventories.
type InventoryRepository interface {
	// Clear removes every inventory and bank row for the character.
	Clear(ctx context.Context, charID int64) error
	// Insert places one item into a slot.
	Insert(ctx context.Context, charID int64, slotID, itemID, charges int32) error
}

// PostgresInventoryRepository implements InventoryRepository using PostgreSQL.
type PostgresInventoryRepository struct {
	pool poolIface
}

// NewPostgresInventoryRepository creates a new PostgreSQL inventory repository.
func NewPostgresInventoryRepository(pool poolIface) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{pool: pool}
}

// Clear deletes the character's entire inventory, bank included. Import is a
// full replace, never a merge.
func (r *PostgresInventoryRepository) Clear(ctx context.Context, charID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM inventory WHERE charid = $1`, charID)
	if err != nil {
		return oops.Code("INVENTORY_CLEAR_FAILED").
			With("operation", "clear inventory").
			With("char_id", charID).
			Wrap(err)
	}
	return nil
}

// Insert places one item into the given slot.
func (r *PostgresInventoryRepository) Insert(ctx context.Context, charID int64, slotID, itemID, charges int32) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO inventory (charid, slotid, itemid, charges) VALUES ($1, $2, $3, $4)`,
		charID, slotID, itemID, charges)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("INVENTORY_SLOT_OCCUPIED").
				With("char_id", charID).
				With("slot_id", slotID).
				Wrap(ErrSlotOccupied)
		}
		return oops.Code("INVENTORY_INSERT_FAILED").
			With("operation", "insert inventory item").
			With("char_id", charID).
			With("slot_id", slotID).
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ InventoryRepository = (*PostgresInventoryRepository)(nil)
