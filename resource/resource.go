// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package resource implements persistence handles for tabular frames. Each
// variant binds one storage format to a file-system path and exposes the
// same two operations, so callers (the cache package in particular) stay
// format-agnostic.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"

	"github.com/staranto/tabresgo/frame"
)

// ErrUnavailable marks any load failure: missing file, unreadable file, or
// content that cannot be parsed as the expected format. The cache package
// treats exactly this class of error as a miss; everything else propagates.
var ErrUnavailable = errors.New("resource unavailable or unreadable")

// ErrColumnName is returned by the columnar variant before any write when a
// column name is not a bare identifier. Column names become directory
// entries there, so this is never downgraded to a warning.
var ErrColumnName = errors.New("column name is not a bare identifier")

// Resource is a persistence handle over a frame. Implementations are
// immutable after construction; WithPath derives a new handle of the same
// variant and options rather than mutating the receiver.
type Resource interface {
	Path() string
	WithPath(path string) Resource
	Load() (*frame.Frame, error)
	Save(f *frame.Frame) error
}

// unavailable wraps err so that both errors.Is(_, ErrUnavailable) and the
// original error chain hold.
func unavailable(op, path string, err error) error {
	return fmt.Errorf("%s %s: %w", op, path, errors.Join(ErrUnavailable, err))
}

// ensureDir creates the parent directory of path if needed and hands the
// path back for inline use.
func ensureDir(path string) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
			return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	return path, nil
}

// dropIndex strips a named row index before saving through a format that
// cannot represent one. Advisory only; the save proceeds.
func dropIndex(f *frame.Frame, path string) *frame.Frame {
	if f.Index() == nil {
		return f
	}
	log.Warnf("saving frame with non-default index %q to %s: the index will be lost, reset it or use a binary resource", f.Index().Name(), path)
	return f.DropIndex()
}
