// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package queue

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

// poolIface is the subset of pgxpool.Pool the repositories need. pgxmock's
// PgxPoolIface satisfies it in tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRequestRepository implements RequestRepository using PostgreSQL.
type PostgresRequestRepository struct {
	pool poolIface
}

// NewPostgresRequestRepository creates a new PostgreSQL request repository.
func NewPostgresRequestRepository(pool poolIface) *PostgresRequestRepository {
	return &PostgresRequestRepository{pool: pool}
}

// Pending returns all pending requests ordered by creation time, oldest
// first. Processing order is the fairness guarantee of the queue.
func (r *PostgresRequestRepository) Pending(ctx context.Context) ([]Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, char_name, level,
		       COALESCE(inventory_outfile, ''),
		       COALESCE(spellbook_outfile, ''),
		       created_at
		FROM requests
		WHERE status = 'pending'
		ORDER BY created_at
	`)
	if err != nil {
		return nil, oops.Code("REQUEST_LOAD_FAILED").With("operation", "load pending requests").Wrap(err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req := Request{Status: StatusPending}
		if err := rows.Scan(&req.ID, &req.CharName, &req.Level,
			&req.InventoryOutfile, &req.SpellbookOutfile, &req.CreatedAt); err != nil {
			return nil, oops.Code("REQUEST_LOAD_FAILED").With("operation", "scan request row").Wrap(err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REQUEST_LOAD_FAILED").With("operation", "iterate requests").Wrap(err)
	}
	return requests, nil
}

// MarkInvalid rejects all given requests with a single batch update.
func (r *PostgresRequestRepository) MarkInvalid(ctx context.Context, ids []int64, errorMsg, runID string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE requests
		SET processed_at = now(), status = 'invalid', error_msg = $1, run_id = $2
		WHERE id = ANY($3)
	`, errorMsg, runID, ids)
	if err != nil {
		return oops.Code("REQUEST_UPDATE_FAILED").
			With("operation", "mark requests invalid").
			With("count", len(ids)).
			Wrap(err)
	}
	return nil
}

// Complete writes a request's terminal complete state. Rejected inventory
// item names are stored as data, not as an error.
func (r *PostgresRequestRepository) Complete(ctx context.Context, id int64, invalidItems, runID string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE requests
		SET processed_at = now(), status = 'complete', error_msg = NULL,
		    invalid_items = $1, run_id = $2
		WHERE id = $3
	`, invalidItems, runID, id)
	if err != nil {
		return oops.Code("REQUEST_UPDATE_FAILED").
			With("operation", "complete request").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("REQUEST_NOT_FOUND").With("id", id).Wrap(ErrNotFound)
	}
	return nil
}

// Enqueue inserts a new pending request.
func (r *PostgresRequestRepository) Enqueue(ctx context.Context, req *Request) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO requests (char_name, level, inventory_outfile, spellbook_outfile)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, req.CharName, req.Level, req.InventoryOutfile, req.SpellbookOutfile).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return oops.Code("REQUEST_ENQUEUE_FAILED").
			With("operation", "insert request").
			With("char_name", req.CharName).
			Wrap(err)
	}
	req.Status = StatusPending
	return nil
}

// CountByStatus returns the number of requests in each status.
func (r *PostgresRequestRepository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM requests GROUP BY status`)
	if err != nil {
		return nil, oops.Code("REQUEST_COUNT_FAILED").With("operation", "count requests").Wrap(err)
	}
	defer rows.Close()

	counts := make(map[Status]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, oops.Code("REQUEST_COUNT_FAILED").With("operation", "scan count row").Wrap(err)
		}
		counts[Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("REQUEST_COUNT_FAILED").With("operation", "iterate counts").Wrap(err)
	}
	return counts, nil
}

// Compile-time interface check.
var _ RequestRepository = (*PostgresRequestRepository)(nil)
