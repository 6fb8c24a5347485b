// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/ipc"
	"github.com/apache/arrow/go/v15/arrow/memory"
	"gopkg.in/yaml.v3"

	"github.com/staranto/tabresgo/frame"
)

const columnarMetaFile = "meta.yaml"

// identRe matches a bare identifier. Column names become file names inside
// the archive directory, so anything else is rejected before writing.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Columnar persists a frame as a chunked columnar directory: one Arrow IPC
// file per column plus a meta.yaml carrying column order, kinds, and the row
// count. Geometry columns are not supported. A named row index is dropped
// with a warning.
type Columnar struct {
	path string
}

func NewColumnar(path string) *Columnar {
	return &Columnar{path: path}
}

func (r *Columnar) Path() string { return r.path }

func (r *Columnar) WithPath(path string) Resource {
	return NewColumnar(path)
}

type columnarMeta struct {
	Rows    int              `yaml:"rows"`
	Columns []columnarColumn `yaml:"columns"`
}

type columnarColumn struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

func (r *Columnar) Load() (*frame.Frame, error) {
	raw, err := os.ReadFile(filepath.Join(r.path, columnarMetaFile))
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	var meta columnarMeta
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, unavailable("load", r.path, err)
	}

	cols := make([]*frame.Series, 0, len(meta.Columns))
	for _, c := range meta.Columns {
		kind, err := frame.ParseKind(c.Kind)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		s, err := readColumn(filepath.Join(r.path, c.Name+".arrow"), c.Name, kind)
		if err != nil {
			return nil, unavailable("load", r.path, err)
		}
		if s.Len() != meta.Rows {
			return nil, unavailable("load", r.path,
				fmt.Errorf("column %q has %d rows, meta says %d", c.Name, s.Len(), meta.Rows))
		}
		cols = append(cols, s)
	}

	out, err := frame.New(cols...)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	return out, nil
}

func (r *Columnar) Save(f *frame.Frame) error {
	// Validate every column up front so a bad name never leaves a partially
	// written archive behind.
	for _, s := range f.Cols() {
		if !identRe.MatchString(s.Name()) {
			return fmt.Errorf("save %s: %w: %q", r.path, ErrColumnName, s.Name())
		}
		if s.Kind() == frame.Geometry {
			return fmt.Errorf("save %s: geometry column %q is not supported by the columnar format", r.path, s.Name())
		}
	}

	f = dropIndex(f, r.path)

	if err := os.MkdirAll(r.path, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("save %s: %w", r.path, err)
	}

	meta := columnarMeta{Rows: f.Rows()}
	for _, s := range f.Cols() {
		if err := writeColumn(filepath.Join(r.path, s.Name()+".arrow"), s); err != nil {
			return fmt.Errorf("save %s: %w", r.path, err)
		}
		meta.Columns = append(meta.Columns, columnarColumn{Name: s.Name(), Kind: s.Kind().String()})
	}

	raw, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	if err := os.WriteFile(filepath.Join(r.path, columnarMetaFile), raw, 0o644); err != nil { //nolint:mnd
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	return nil
}

func arrowType(k frame.Kind) (arrow.DataType, error) {
	switch k {
	case frame.Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case frame.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case frame.String:
		return arrow.BinaryTypes.String, nil
	case frame.Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	}
	return nil, fmt.Errorf("kind %v has no arrow representation", k)
}

func writeColumn(path string, s *frame.Series) error {
	typ, err := arrowType(s.Kind())
	if err != nil {
		return err
	}
	schema := arrow.NewSchema([]arrow.Field{{Name: s.Name(), Type: typ}}, nil)

	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()
	switch s.Kind() {
	case frame.Float64:
		b.Field(0).(*array.Float64Builder).AppendValues(s.Float64s(), nil)
	case frame.Int64:
		b.Field(0).(*array.Int64Builder).AppendValues(s.Int64s(), nil)
	case frame.String:
		b.Field(0).(*array.StringBuilder).AppendValues(s.Strings(), nil)
	case frame.Bool:
		b.Field(0).(*array.BooleanBuilder).AppendValues(s.Bools(), nil)
	}
	rec := b.NewRecord()
	defer rec.Release()

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w, err := ipc.NewFileWriter(file, ipc.WithSchema(schema))
	if err != nil {
		return err
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func readColumn(path, name string, kind frame.Kind) (*frame.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rdr, err := ipc.NewFileReader(file)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	var (
		f64s  []float64
		i64s  []int64
		strs  []string
		bools []bool
	)
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if rec.NumCols() != 1 {
			return nil, fmt.Errorf("column file %s has %d arrow columns", path, rec.NumCols())
		}
		switch kind {
		case frame.Float64:
			a, ok := rec.Column(0).(*array.Float64)
			if !ok {
				return nil, fmt.Errorf("column %q is not float64", name)
			}
			f64s = append(f64s, a.Float64Values()...)
		case frame.Int64:
			a, ok := rec.Column(0).(*array.Int64)
			if !ok {
				return nil, fmt.Errorf("column %q is not int64", name)
			}
			i64s = append(i64s, a.Int64Values()...)
		case frame.String:
			a, ok := rec.Column(0).(*array.String)
			if !ok {
				return nil, fmt.Errorf("column %q is not string", name)
			}
			for i := 0; i < a.Len(); i++ {
				strs = append(strs, a.Value(i))
			}
		case frame.Bool:
			a, ok := rec.Column(0).(*array.Boolean)
			if !ok {
				return nil, fmt.Errorf("column %q is not bool", name)
			}
			for i := 0; i < a.Len(); i++ {
				bools = append(bools, a.Value(i))
			}
		default:
			return nil, fmt.Errorf("kind %v has no arrow representation", kind)
		}
	}

	switch kind {
	case frame.Float64:
		return frame.Float64s(name, f64s), nil
	case frame.Int64:
		return frame.Int64s(name, i64s), nil
	case frame.String:
		return frame.Strings(name, strs), nil
	default:
		return frame.Bools(name, bools), nil
	}
}
