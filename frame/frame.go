// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package frame holds the in-memory tabular value that resources load and
// save: an ordered set of named, typed columns plus an optional named row
// index. It imposes no behavior beyond shape; all on-disk encodings live in
// the resource package.
package frame

import (
	"bytes"
	"fmt"
	"math"

	"github.com/paulmach/orb/encoding/wkb"
)

// Frame is a column-ordered table. The zero Frame is empty; build one with
// New. Frames are never mutated in place: operations like WithIndex and
// DropIndex return new frames sharing the underlying columns.
type Frame struct {
	cols  []*Series
	index *Series
}

// New builds a Frame from the given columns. All columns must share the same
// length and carry unique, non-empty names.
func New(cols ...*Series) (*Frame, error) {
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if c.Name() == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if seen[c.Name()] {
			return nil, fmt.Errorf("duplicate column name %q", c.Name())
		}
		seen[c.Name()] = true
		if c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name(), c.Len(), cols[0].Len())
		}
	}
	return &Frame{cols: cols}, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Cols returns the columns in order. The slice is shared; callers must not
// modify it.
func (f *Frame) Cols() []*Series { return f.cols }

// Column returns the named column, or false if it is absent.
func (f *Frame) Column(name string) (*Series, bool) {
	for _, c := range f.cols {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Index returns the row index, or nil when the Frame carries the default
// (positional, unnamed) index.
func (f *Frame) Index() *Series { return f.index }

// WithIndex returns a Frame with s as its named row index.
func (f *Frame) WithIndex(s *Series) (*Frame, error) {
	if s != nil && s.Len() != f.Rows() {
		return nil, fmt.Errorf("index has %d rows, want %d", s.Len(), f.Rows())
	}
	return &Frame{cols: f.cols, index: s}, nil
}

// DropIndex returns a Frame with the default index.
func (f *Frame) DropIndex() *Frame {
	if f.index == nil {
		return f
	}
	return &Frame{cols: f.cols}
}

// Head returns a Frame holding the first n rows (all rows if n exceeds the
// row count). The index, if any, is truncated alongside.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n >= f.Rows() {
		return f
	}
	cols := make([]*Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.head(n)
	}
	out := &Frame{cols: cols}
	if f.index != nil {
		out.index = f.index.head(n)
	}
	return out
}

// Equal reports whether a and b agree in shape, column names and order,
// kinds, index, and element values. Floats compare within tol; geometries
// compare by WKB bytes.
func Equal(a, b *Frame, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Rows() != b.Rows() || a.Width() != b.Width() {
		return false
	}
	for i := range a.cols {
		if !seriesEqual(a.cols[i], b.cols[i], tol) {
			return false
		}
	}
	if (a.index == nil) != (b.index == nil) {
		return false
	}
	if a.index != nil && !seriesEqual(a.index, b.index, tol) {
		return false
	}
	return true
}

func seriesEqual(a, b *Series, tol float64) bool {
	if a.Name() != b.Name() || a.Kind() != b.Kind() || a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		switch a.Kind() {
		case Float64:
			if math.Abs(a.f64[i]-b.f64[i]) > tol {
				return false
			}
		case Int64:
			if a.i64[i] != b.i64[i] {
				return false
			}
		case String:
			if a.str[i] != b.str[i] {
				return false
			}
		case Bool:
			if a.bools[i] != b.bools[i] {
				return false
			}
		case Geometry:
			wa, erra := wkb.Marshal(a.geo[i])
			wb, errb := wkb.Marshal(b.geo[i])
			if erra != nil || errb != nil || !bytes.Equal(wa, wb) {
				return false
			}
		}
	}
	return true
}
