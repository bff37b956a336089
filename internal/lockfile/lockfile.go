// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

// Package lockfile provides the advisory single-instance lock for import
// runs. Two concurrent runs would corrupt character data, so the run command
// refuses to start while another instance holds the marker.
//
// The lock is advisory only: it prevents overlapping invocations of this
// program, not other programs touching the same rows. A process killed
// before its deferred release leaves the marker behind; recovery is deleting
// the file by hand once the operator has confirmed no instance is running.
package lockfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/samber/oops"
)

// ErrHeld indicates another instance already holds the lock.
var ErrHeld = errors.New("another instance is already running")

// Lock is a held lock marker. Release it on every exit path.
type Lock struct {
	path string
}

// Acquire atomically creates the lock marker at path, writing the holder's
// PID into it. If the marker already exists the returned error wraps ErrHeld
// and nothing else is touched.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, oops.Code("LOCK_DIR_FAILED").With("path", path).Wrap(err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, oops.Code("LOCK_HELD").With("path", path).Wrap(ErrHeld)
		}
		return nil, oops.Code("LOCK_CREATE_FAILED").With("path", path).Wrap(err)
	}

	_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(path)
		if werr == nil {
			werr = cerr
		}
		return nil, oops.Code("LOCK_WRITE_FAILED").With("path", path).Wrap(werr)
	}

	return &Lock{path: path}, nil
}

// Path returns the location of the held marker.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock marker. Releasing an already-removed marker is
// not an error.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return oops.Code("LOCK_RELEASE_FAILED").With("path", l.path).Wrap(err)
	}
	return nil
}
