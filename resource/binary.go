// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/staranto/tabresgo/frame"
)

// Binary persists a frame as an opaque msgpack blob. It is the only variant
// that round-trips a named row index exactly, at the cost of being readable
// by nothing else.
type Binary struct {
	path string
}

func NewBinary(path string) *Binary {
	return &Binary{path: path}
}

func (r *Binary) Path() string { return r.path }

func (r *Binary) WithPath(path string) Resource {
	return NewBinary(path)
}

// wireSeries is the msgpack shape of a single column. Geometries travel as
// WKB so the interface type survives the round trip.
type wireSeries struct {
	Name  string    `msgpack:"name"`
	Kind  string    `msgpack:"kind"`
	F64   []float64 `msgpack:"f64,omitempty"`
	I64   []int64   `msgpack:"i64,omitempty"`
	Str   []string  `msgpack:"str,omitempty"`
	Bools []bool    `msgpack:"bools,omitempty"`
	Geo   [][]byte  `msgpack:"geo,omitempty"`
}

type wireFrame struct {
	Columns []wireSeries `msgpack:"columns"`
	Index   *wireSeries  `msgpack:"index,omitempty"`
}

func (r *Binary) Load() (*frame.Frame, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}

	var wf wireFrame
	if err := msgpack.Unmarshal(data, &wf); err != nil {
		return nil, unavailable("load", r.path, err)
	}

	cols := make([]*frame.Series, 0, len(wf.Columns))
	for _, ws := range wf.Columns {
		s, err := fromWire(ws)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		cols = append(cols, s)
	}

	f, err := frame.New(cols...)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}

	if wf.Index != nil {
		idx, err := fromWire(*wf.Index)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		if f, err = f.WithIndex(idx); err != nil {
			return nil, unavailable("load", r.path, err)
		}
	}

	return f, nil
}

func (r *Binary) Save(f *frame.Frame) error {
	wf := wireFrame{Columns: make([]wireSeries, 0, f.Width())}
	for _, s := range f.Cols() {
		ws, err := toWire(s)
		if err != nil {
			return fmt.Errorf("save %s: %w", r.path, err)
		}
		wf.Columns = append(wf.Columns, ws)
	}
	if f.Index() != nil {
		ws, err := toWire(f.Index())
		if err != nil {
			return fmt.Errorf("save %s: %w", r.path, err)
		}
		wf.Index = &ws
	}

	data, err := msgpack.Marshal(wf)
	if err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}

	path, err := ensureDir(r.path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}

func toWire(s *frame.Series) (wireSeries, error) {
	ws := wireSeries{Name: s.Name(), Kind: s.Kind().String()}
	switch s.Kind() {
	case frame.Float64:
		ws.F64 = s.Float64s()
	case frame.Int64:
		ws.I64 = s.Int64s()
	case frame.String:
		ws.Str = s.Strings()
	case frame.Bool:
		ws.Bools = s.Bools()
	case frame.Geometry:
		ws.Geo = make([][]byte, 0, s.Len())
		for _, g := range s.Geometries() {
			b, err := wkb.Marshal(g)
			if err != nil {
				return ws, fmt.Errorf("column %q: %w", s.Name(), err)
			}
			ws.Geo = append(ws.Geo, b)
		}
	}
	return ws, nil
}

func fromWire(ws wireSeries) (*frame.Series, error) {
	kind, err := frame.ParseKind(ws.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case frame.Float64:
		return frame.Float64s(ws.Name, ws.F64), nil
	case frame.Int64:
		return frame.Int64s(ws.Name, ws.I64), nil
	case frame.String:
		return frame.Strings(ws.Name, ws.Str), nil
	case frame.Bool:
		return frame.Bools(ws.Name, ws.Bools), nil
	case frame.Geometry:
		geoms := make([]orb.Geometry, 0, len(ws.Geo))
		for _, b := range ws.Geo {
			g, err := wkb.Unmarshal(b)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", ws.Name, err)
			}
			geoms = append(geoms, g)
		}
		return frame.Geometries(ws.Name, geoms), nil
	}
	return nil, fmt.Errorf("unknown column kind %q", ws.Kind)
}
