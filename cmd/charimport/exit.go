// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import "errors"

// Exit codes documented for the cron wrapper and the web frontend. The
// non-zero values are part of the external contract and must not change.
const (
	exitLockHeld      = 2
	exitConfigMissing = 3
	exitQueueConnect  = 101
	exitQueueUnusable = 102
	exitGameConnect   = 103
	exitGameUnusable  = 104
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps a command error to the process exit status. Errors without
// an explicit code exit 1.
func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
