// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package resource

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/staranto/tabresgo/frame"
)

// CSV persists a frame as delimited text with a header row. Column kinds are
// re-inferred on load (int64, then float64, then bool, falling back to
// string), so type fidelity is best-effort; geometries are written as WKT
// and come back as strings. A named row index is dropped with a warning.
type CSV struct {
	path     string
	delim    rune
	encoding string
}

// CSVOption customizes a CSV resource.
type CSVOption func(*CSV)

// WithDelimiter sets the field delimiter. Defaults to a comma.
func WithDelimiter(d rune) CSVOption {
	return func(r *CSV) { r.delim = d }
}

// WithEncoding sets the character encoding by name (IANA/WHATWG labels, e.g.
// "cp1251", "utf-8"). Defaults to UTF-8.
func WithEncoding(name string) CSVOption {
	return func(r *CSV) { r.encoding = name }
}

func NewCSV(path string, opts ...CSVOption) *CSV {
	r := &CSV{path: path, delim: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CSV) Path() string { return r.path }

func (r *CSV) WithPath(path string) Resource {
	return &CSV{path: path, delim: r.delim, encoding: r.encoding}
}

func (r *CSV) Load() (*frame.Frame, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if r.encoding != "" {
		enc, err := htmlindex.Get(r.encoding)
		if err != nil {
			return nil, fmt.Errorf("load %s: unknown encoding %q: %w", r.path, r.encoding, err)
		}
		reader = transform.NewReader(f, enc.NewDecoder())
	}

	cr := csv.NewReader(reader)
	cr.Comma = r.delim
	records, err := cr.ReadAll()
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	if len(records) == 0 {
		return nil, unavailable("load", r.path, fmt.Errorf("no header row"))
	}

	header := records[0]
	rows := records[1:]
	cols := make([]*frame.Series, 0, len(header))
	for i, name := range header {
		cell := make([]string, 0, len(rows))
		for _, row := range rows {
			cell = append(cell, row[i])
		}
		cols = append(cols, inferSeries(name, cell))
	}

	out, err := frame.New(cols...)
	if err != nil {
		return nil, unavailable("load", r.path, err)
	}
	return out, nil
}

func (r *CSV) Save(f *frame.Frame) error {
	f = dropIndex(f, r.path)

	path, err := ensureDir(r.path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	defer file.Close()

	var w io.Writer = file
	var tw *transform.Writer
	if r.encoding != "" {
		e, err := htmlindex.Get(r.encoding)
		if err != nil {
			return fmt.Errorf("save %s: unknown encoding %q: %w", r.path, r.encoding, err)
		}
		tw = transform.NewWriter(file, e.NewEncoder())
		w = tw
	}

	cw := csv.NewWriter(w)
	cw.Comma = r.delim

	if err := cw.Write(f.Columns()); err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	row := make([]string, f.Width())
	for i := 0; i < f.Rows(); i++ {
		for j, s := range f.Cols() {
			row[j] = cell(s, i)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("save %s: %w", r.path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("save %s: %w", r.path, err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("save %s: %w", r.path, err)
		}
	}
	return nil
}

// cell renders one value for writing. Whole float64 values get a trailing
// ".0" so the column is re-inferred as float64, not int64, on reload.
func cell(s *frame.Series, i int) string {
	v := s.Format(i)
	if s.Kind() == frame.Float64 {
		f := s.Float64s()[i]
		if !math.IsNaN(f) && !math.IsInf(f, 0) && !strings.ContainsAny(v, ".eE") {
			v += ".0"
		}
	}
	return v
}

// inferSeries picks the narrowest kind that parses every cell.
func inferSeries(name string, cells []string) *frame.Series {
	if ints, ok := parseInts(cells); ok {
		return frame.Int64s(name, ints)
	}
	if floats, ok := parseFloats(cells); ok {
		return frame.Float64s(name, floats)
	}
	if bools, ok := parseBools(cells); ok {
		return frame.Bools(name, bools)
	}
	return frame.Strings(name, cells)
}

func parseInts(cells []string) ([]int64, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]int64, 0, len(cells))
	for _, c := range cells {
		v, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func parseFloats(cells []string) ([]float64, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func parseBools(cells []string) ([]bool, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	out := make([]bool, 0, len(cells))
	for _, c := range cells {
		if c != "true" && c != "false" {
			return nil, false
		}
		out = append(out, c == "true")
	}
	return out, true
}
