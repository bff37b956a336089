// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package store provides database connectivity and schema management for the
// request queue and game databases.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// Connect opens a connection pool for the given database URL and verifies it
// with a ping. A failure here means the target is unreachable or the URL is
// bad; the run command maps it to the "cannot connect" exit codes.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping database").Wrap(err)
	}
	return pool, nil
}

// Verify runs a trivial query to prove the handle is usable. A connected
// pool that fails here is mapped to the "handle unexpectedly unusable" exit
// codes.
func Verify(ctx context.Context, pool *pgxpool.Pool) error {
	var one int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return oops.Code("DB_UNUSABLE").With("operation", "verify handle").Wrap(err)
	}
	return nil
}
