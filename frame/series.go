// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package frame

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// Kind identifies the element type of a Series.
type Kind int

const (
	Float64 Kind = iota
	Int64
	String
	Bool
	Geometry
)

func (k Kind) String() string {
	switch k {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Geometry:
		return "geometry"
	}
	return "unknown"
}

// ParseKind maps the string form back to a Kind. Used when reading schema
// metadata persisted next to column data.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "float64":
		return Float64, nil
	case "int64":
		return Int64, nil
	case "string":
		return String, nil
	case "bool":
		return Bool, nil
	case "geometry":
		return Geometry, nil
	}
	return 0, fmt.Errorf("unknown column kind %q", s)
}

// Series is a single named, typed column. A Series is immutable after
// construction; the constructors copy their input slice.
type Series struct {
	name  string
	kind  Kind
	f64   []float64
	i64   []int64
	str   []string
	bools []bool
	geo   []orb.Geometry
}

// Float64s constructs a float64 column.
func Float64s(name string, values []float64) *Series {
	s := &Series{name: name, kind: Float64, f64: make([]float64, len(values))}
	copy(s.f64, values)
	return s
}

// Int64s constructs an int64 column.
func Int64s(name string, values []int64) *Series {
	s := &Series{name: name, kind: Int64, i64: make([]int64, len(values))}
	copy(s.i64, values)
	return s
}

// Strings constructs a string column.
func Strings(name string, values []string) *Series {
	s := &Series{name: name, kind: String, str: make([]string, len(values))}
	copy(s.str, values)
	return s
}

// Bools constructs a bool column.
func Bools(name string, values []bool) *Series {
	s := &Series{name: name, kind: Bool, bools: make([]bool, len(values))}
	copy(s.bools, values)
	return s
}

// Geometries constructs a geometry column.
func Geometries(name string, values []orb.Geometry) *Series {
	s := &Series{name: name, kind: Geometry, geo: make([]orb.Geometry, len(values))}
	copy(s.geo, values)
	return s
}

func (s *Series) Name() string { return s.name }
func (s *Series) Kind() Kind   { return s.kind }

func (s *Series) Len() int {
	switch s.kind {
	case Float64:
		return len(s.f64)
	case Int64:
		return len(s.i64)
	case String:
		return len(s.str)
	case Bool:
		return len(s.bools)
	case Geometry:
		return len(s.geo)
	}
	return 0
}

// Float64s returns the backing values. Nil if the Series is not Float64.
// The returned slice is shared; callers must not modify it.
func (s *Series) Float64s() []float64 {
	if s.kind != Float64 {
		return nil
	}
	return s.f64
}

// Int64s returns the backing values. Nil if the Series is not Int64.
func (s *Series) Int64s() []int64 {
	if s.kind != Int64 {
		return nil
	}
	return s.i64
}

// Strings returns the backing values. Nil if the Series is not String.
func (s *Series) Strings() []string {
	if s.kind != String {
		return nil
	}
	return s.str
}

// Bools returns the backing values. Nil if the Series is not Bool.
func (s *Series) Bools() []bool {
	if s.kind != Bool {
		return nil
	}
	return s.bools
}

// Geometries returns the backing values. Nil if the Series is not Geometry.
func (s *Series) Geometries() []orb.Geometry {
	if s.kind != Geometry {
		return nil
	}
	return s.geo
}

// Value returns element i as an untyped value.
func (s *Series) Value(i int) any {
	switch s.kind {
	case Float64:
		return s.f64[i]
	case Int64:
		return s.i64[i]
	case String:
		return s.str[i]
	case Bool:
		return s.bools[i]
	case Geometry:
		return s.geo[i]
	}
	return nil
}

// Format renders element i as text. Floats use the shortest representation
// that round-trips, geometries render as WKT.
func (s *Series) Format(i int) string {
	switch s.kind {
	case Float64:
		return strconv.FormatFloat(s.f64[i], 'g', -1, 64)
	case Int64:
		return strconv.FormatInt(s.i64[i], 10)
	case String:
		return s.str[i]
	case Bool:
		return strconv.FormatBool(s.bools[i])
	case Geometry:
		return wkt.MarshalString(s.geo[i])
	}
	return ""
}

// head returns a Series with the first n elements (or fewer).
func (s *Series) head(n int) *Series {
	if n > s.Len() {
		n = s.Len()
	}
	switch s.kind {
	case Float64:
		return Float64s(s.name, s.f64[:n])
	case Int64:
		return Int64s(s.name, s.i64[:n])
	case String:
		return Strings(s.name, s.str[:n])
	case Bool:
		return Bools(s.name, s.bools[:n])
	case Geometry:
		return Geometries(s.name, s.geo[:n])
	}
	return s
}
