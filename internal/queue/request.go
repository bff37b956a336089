// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package queue models the import request queue filled by the external web
// form. Requests are created externally, processed exactly once, and never
// deleted by this tool.
package queue

import (
	"context"
	"errors"
	"time"
)

// Status is the lifecycle state of an import request.
type Status string

// Request statuses. There is no distinct failed state: partial imports are
// reported through the invalid_items field of a complete request.
const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusInvalid  Status = "invalid"
)

// ErrNotFound indicates the request does not exist.
var ErrNotFound = errors.New("request not found")

// Request is one queued character import.
type Request struct {
	ID               int64
	CharName         string
	Level            int
	InventoryOutfile string
	SpellbookOutfile string
	Status           Status
	CreatedAt        time.Time
}

// RequestRepository provides access to the import request queue.
type RequestRepository interface {
	// Pending returns all pending requests, oldest first.
	Pending(ctx context.Context) ([]Request, error)
	// MarkInvalid rejects the given requests in one batch update.
	MarkInvalid(ctx context.Context, ids []int64, errorMsg, runID string) error
	// Complete writes a request's terminal state with the names of the
	// inventory items that could not be imported.
	Complete(ctx context.Context, id int64, invalidItems, runID string) error
	// Enqueue inserts a new pending request and fills in its ID and
	// creation time.
	Enqueue(ctx context.Context, req *Request) error
	// CountByStatus returns the number of requests per status.
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
